package dialogs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andareed/siftly-obsmap/logging"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type (
	ExportConfirmedMsg struct{ Dir string }
	ExportCanceledMsg  struct{}
)

// Export asks for the directory the chart and CSV bundle is written to.
type Export struct {
	input   textinput.Model
	visible bool
	files   []string
}

func (d Export) Init() tea.Cmd { return d.input.Focus() }

// NewExportDialog prefills defaultDir and lists the files that will be written.
func NewExportDialog(defaultDir string, files []string) *Export {
	ti := textinput.New()
	ti.Placeholder = defaultDir
	ti.Prompt = "Export to: "
	ti.CharLimit = 256
	ti.Width = 44
	if defaultDir != "" {
		ti.SetValue(defaultDir)
	}
	ti.Focus()
	return &Export{input: ti, visible: true, files: files}
}

func (d *Export) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter":
			dir := strings.TrimSpace(d.input.Value())
			if dir == "" {
				dir = d.input.Placeholder
			}
			if dir == "" {
				return d, nil
			}
			dir = expandHome(dir)
			logging.Debugf("ExportDialog: confirmed %s", dir)
			return d, func() tea.Msg { return ExportConfirmedMsg{Dir: dir} }
		case "esc":
			logging.Debug("ExportDialog: canceled")
			return d, func() tea.Msg { return ExportCanceledMsg{} }
		}
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func (d Export) View() string {
	if !d.visible {
		return ""
	}
	files := hint("writes " + strings.Join(d.files, ", "))
	content := fmt.Sprintf("%s\n\n%s\n%s", d.input.View(), files, hint("enter to export • esc to cancel"))
	return box().Render(content)
}

func (d *Export) Show() {
	d.visible = true
	d.input.Focus()
}

func (d *Export) Hide() {
	d.visible = false
	d.input.Blur()
}

func (d *Export) Focus() tea.Cmd { return d.input.Focus() }
func (d *Export) Blur()          { d.input.Blur() }
func (d Export) IsVisible() bool { return d.visible }
