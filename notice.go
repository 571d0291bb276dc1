package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type clearNoticeMsg struct{ id int }

const noticeDuration = 3 * time.Second

const (
	noticeInfo    = "info"
	noticeSuccess = "success"
	noticeWarn    = "warn"
	noticeError   = "error"
)

func noticeText(msg, kind string) string {
	if msg == "" {
		return ""
	}
	icons := map[string]string{
		noticeInfo:    "ℹ",
		noticeSuccess: "✓",
		noticeWarn:    "!",
		noticeError:   "×",
	}
	if icon, ok := icons[kind]; ok {
		return icon + " " + msg
	}
	return msg
}

// startNotice shows msg in the footer until d passes or a newer notice replaces it.
func (m *model) startNotice(msg, kind string, d time.Duration) tea.Cmd {
	m.ui.noticeMsg = msg
	m.ui.noticeType = kind
	m.ui.noticeSeq++
	id := m.ui.noticeSeq
	return tea.Tick(d, func(time.Time) tea.Msg { return clearNoticeMsg{id: id} })
}

func (m *model) clearNotice(id int) {
	if id == m.ui.noticeSeq {
		m.ui.noticeMsg = ""
		m.ui.noticeType = ""
	}
}
