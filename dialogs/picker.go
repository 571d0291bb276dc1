package dialogs

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type (
	// PickedMsg carries the chosen option back to the caller under its ID.
	PickedMsg struct {
		ID    string
		Value string
	}
	PickCanceledMsg struct{ ID string }
)

// Picker is a single choice list.
type Picker struct {
	id      string
	title   string
	options []string
	cursor  int
	visible bool
}

// NewPickerDialog opens with current selected when it is one of options.
func NewPickerDialog(id, title string, options []string, current string) *Picker {
	return &Picker{
		id:      id,
		title:   title,
		options: options,
		cursor:  max(0, slices.Index(options, current)),
		visible: true,
	}
}

func (d Picker) Init() tea.Cmd { return nil }

func (d *Picker) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	m, ok := msg.(tea.KeyMsg)
	if !ok || !d.visible {
		return d, nil
	}
	switch m.String() {
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(d.options)-1 {
			d.cursor++
		}
	case "enter":
		if len(d.options) == 0 {
			return d, nil
		}
		picked := PickedMsg{ID: d.id, Value: d.options[d.cursor]}
		return d, func() tea.Msg { return picked }
	case "esc", "q":
		id := d.id
		return d, func() tea.Msg { return PickCanceledMsg{ID: id} }
	}
	return d, nil
}

// Selected returns the option under the cursor, "" when there are none.
func (d Picker) Selected() string {
	if len(d.options) == 0 {
		return ""
	}
	return d.options[d.cursor]
}

func (d Picker) View() string {
	if !d.visible {
		return ""
	}
	selected := lipgloss.NewStyle().Bold(true).Reverse(true)
	lines := make([]string, 0, len(d.options))
	for i, opt := range d.options {
		if i == d.cursor {
			lines = append(lines, selected.Render("> "+opt))
			continue
		}
		lines = append(lines, "  "+opt)
	}
	if len(lines) == 0 {
		lines = append(lines, hint("nothing to choose from"))
	}
	title := lipgloss.NewStyle().Bold(true).Render(d.title)
	content := fmt.Sprintf("%s\n\n%s\n\n%s", title, strings.Join(lines, "\n"), hint("j/k to move • enter to pick • esc to cancel"))
	return box().Render(content)
}

func (d *Picker) Show() { d.visible = true }
func (d *Picker) Hide() { d.visible = false }

func (d *Picker) Focus() tea.Cmd { return nil }
func (d *Picker) Blur()          {}
func (d Picker) IsVisible() bool { return d.visible }
