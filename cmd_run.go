package main

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) startCommand(cmd Command) {
	m.ui.mode = modeCommand
	m.ui.command = CommandInput{cmd: cmd}
}

func (m *model) runCommand() tea.Cmd {
	switch m.ui.command.cmd {
	case CmdJump:
		n, err := strconv.Atoi(strings.TrimSpace(m.ui.command.buf))
		if err != nil {
			return m.startNotice("Invalid row number", noticeWarn, noticeDuration)
		}
		return m.jumpToLine(n)

	case CmdSearch:
		m.ui.searchQuery = m.ui.command.buf
		return m.searchNext(1)
	}
	return nil
}

func (m *model) exitCommandMode() {
	m.ui.command = CommandInput{}
	m.ui.mode = modeView
}

func (m *model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.exitCommandMode()
		m.refreshView("command-cancel", false)
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		cmd := m.runCommand()
		m.exitCommandMode()
		m.refreshView("command-run", false)
		return m, cmd
	}

	switch msg.Type {
	case tea.KeyBackspace:
		if r := []rune(m.ui.command.buf); len(r) > 0 {
			m.ui.command.buf = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.ui.command.buf += " "
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		m.ui.command.buf += string(msg.Runes)
	}
	return m, nil
}
