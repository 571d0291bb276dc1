package dialogs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type HelpClosedMsg struct{}

// Help lists key bindings under a title.
type Help struct {
	title    string
	visible  bool
	bindings []key.Binding
}

func (d Help) Init() tea.Cmd { return nil }

func NewHelpDialog(title string, bindings []key.Binding) *Help {
	return &Help{title: title, visible: true, bindings: bindings}
}

func (d *Help) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter", "esc", "?", "q":
			d.visible = false
			return d, func() tea.Msg { return HelpClosedMsg{} }
		}
	}
	return d, nil
}

func (d Help) View() string {
	if !d.visible {
		return ""
	}

	keyStyle := lipgloss.NewStyle().Bold(true)
	var lines []string
	for _, b := range d.bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		lines = append(lines, fmt.Sprintf("%s %s", keyStyle.Render(fmt.Sprintf("%-10s", h.Key)), h.Desc))
	}

	title := lipgloss.NewStyle().Bold(true).Render(d.title)
	content := fmt.Sprintf("%s\n\n%s\n\n%s", title, strings.Join(lines, "\n"), hint("enter/esc to return"))
	return box().Render(content)
}

func (d *Help) Show() { d.visible = true }
func (d *Help) Hide() { d.visible = false }

func (d *Help) Focus() tea.Cmd { return nil }
func (d *Help) Blur()          {}
func (d Help) IsVisible() bool { return d.visible }
