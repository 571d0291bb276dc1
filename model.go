package main

import (
	"context"
	"fmt"
	"time"

	"github.com/andareed/siftly-obsmap/boundary"
	"github.com/andareed/siftly-obsmap/clipboard"
	"github.com/andareed/siftly-obsmap/config"
	"github.com/andareed/siftly-obsmap/dialogs"
	"github.com/andareed/siftly-obsmap/logging"
	"github.com/andareed/siftly-obsmap/watch"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	pickFlagID    = "flag"
	pickContextID = "context"
)

type (
	fileChangedMsg struct{ path string }
	watchErrMsg    struct{ err error }
	exportDoneMsg  struct {
		dir   string
		files []string
		err   error
	}
)

type model struct {
	cfg  *config.Config
	data *dataState
	ui   uiState

	header []ColumnMeta
	rows   []renderedRow

	viewport            viewport.Model
	ready               bool
	cursor              int
	lastVisibleRowCount int
	terminalWidth       int
	terminalHeight      int

	activeDialog dialogs.Dialog
	watcher      *watch.Watcher
	copyText     func(string) (clipboard.Method, error)
}

func newModel(cfg *config.Config, data *dataState, w *watch.Watcher) *model {
	m := &model{
		cfg:      cfg,
		data:     data,
		watcher:  w,
		copyText: clipboard.Copy,
		ui:       uiState{lastExportDir: "obsmap-export"},
	}
	m.resetRows()
	return m
}

func (m *model) Init() tea.Cmd {
	logging.Infof("obsmap: initialised with %s", m.data.path)
	return m.waitForChange()
}

// waitForChange blocks on the file watcher and is re-armed after every event.
func (m *model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events, errs := m.watcher.Events(), m.watcher.Errors()
	return func() tea.Msg {
		select {
		case p, ok := <-events:
			if !ok {
				return nil
			}
			return fileChangedMsg{path: p}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth, m.terminalHeight = msg.Width, msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height)
			m.ready = true
		}
		m.refreshView("resize", true)
		return m, nil

	case clearNoticeMsg:
		m.clearNotice(msg.id)
		return m, nil

	case fileChangedMsg:
		logging.Infof("watch: %s changed", msg.path)
		return m, tea.Batch(m.reload(), m.waitForChange())

	case watchErrMsg:
		return m, tea.Batch(m.startNotice("Watch error: "+msg.err.Error(), noticeWarn, noticeDuration), m.waitForChange())

	case exportDoneMsg:
		if msg.err != nil {
			logging.Errorf("export to %s: %v", msg.dir, msg.err)
			return m, m.startNotice("Export failed: "+msg.err.Error(), noticeError, noticeDuration)
		}
		return m, m.startNotice(fmt.Sprintf("Exported %d files to %s", len(msg.files), msg.dir), noticeSuccess, noticeDuration)

	case dialogs.ExportConfirmedMsg:
		m.closeDialog()
		m.ui.lastExportDir = msg.Dir
		return m, m.exportCmd(msg.Dir)

	case dialogs.PickedMsg:
		m.closeDialog()
		return m, m.applyPick(msg)

	case dialogs.ExportCanceledMsg, dialogs.HelpClosedMsg, dialogs.PickCanceledMsg:
		m.closeDialog()
		return m, nil

	case tea.KeyMsg:
		if m.activeDialog != nil && m.activeDialog.IsVisible() {
			var cmd tea.Cmd
			m.activeDialog, cmd = m.activeDialog.Update(msg)
			return m, cmd
		}
		return m.updateKey(msg)
	}

	if m.activeDialog != nil {
		var cmd tea.Cmd
		m.activeDialog, cmd = m.activeDialog.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ui.mode == modeCommand {
		return m.handleCommandKey(msg)
	}
	return m.handleViewModeKey(msg)
}

func (m *model) handleViewModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.RowDown):
		m.moveCursor(1)
	case key.Matches(msg, Keys.RowUp):
		m.moveCursor(-1)
	case key.Matches(msg, Keys.PageDown):
		m.moveCursor(m.pageSize())
	case key.Matches(msg, Keys.PageUp):
		m.moveCursor(-m.pageSize())
	case key.Matches(msg, Keys.Top):
		m.jumpToStart()
	case key.Matches(msg, Keys.Bottom):
		m.jumpToEnd()
	case key.Matches(msg, Keys.Jump), key.Matches(msg, Keys.Search):
		m.startCommand(CommandFromPrefix(msg.Runes[0]))
	case key.Matches(msg, Keys.NextMatch):
		cmd = m.searchNext(1)
	case key.Matches(msg, Keys.PrevMatch):
		cmd = m.searchNext(-1)
	case key.Matches(msg, Keys.CycleFlag):
		cmd = m.cycleFlag()
	case key.Matches(msg, Keys.CycleContext):
		cmd = m.cycleContext()
	case key.Matches(msg, Keys.PickFlag):
		m.openDialog(dialogs.NewPickerDialog(pickFlagID, "Observation flag column", m.data.flagOptions(), m.data.flag))
	case key.Matches(msg, Keys.PickContext):
		m.openDialog(dialogs.NewPickerDialog(pickContextID, "Context column", m.data.contextOptions(), m.data.context))
	case key.Matches(msg, Keys.Reload):
		cmd = m.reload()
	case key.Matches(msg, Keys.CopyRow):
		cmd = m.copyCurrentRow()
	case key.Matches(msg, Keys.Export):
		m.openDialog(dialogs.NewExportDialog(m.ui.lastExportDir, exportJob{Track: m.data.track}.fileNames()))
	case key.Matches(msg, Keys.OpenHelp):
		m.openDialog(dialogs.NewHelpDialog("System Observation Boundary Map", Keys.Legend()))
	case key.Matches(msg, Keys.ScrollLeft):
		m.viewport.ScrollLeft(4)
	case key.Matches(msg, Keys.ScrollRight):
		m.viewport.ScrollRight(4)
	}

	m.refreshView("key", false)
	return m, cmd
}

func (m *model) openDialog(d dialogs.Dialog) {
	m.activeDialog = d
	d.Show()
}

func (m *model) closeDialog() {
	if m.activeDialog != nil {
		m.activeDialog.Hide()
	}
	m.activeDialog = nil
	m.refreshView("dialog-close", false)
}

// resetRows rebuilds the preview rows after the pipeline ran again.
func (m *model) resetRows() {
	m.header = columnsFor(m.data.preview.Columns)
	m.rows = rowsFromPreview(m.data.preview, m.data.result)
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
	m.refreshView("rows", true)
}

func (m *model) cycleFlag() tea.Cmd {
	if !m.data.cycleFlag() {
		return m.startNotice("No other flag column in this CSV", noticeWarn, noticeDuration)
	}
	m.resetRows()
	return m.columnNotice("Flag column", m.data.flag)
}

func (m *model) cycleContext() tea.Cmd {
	if !m.data.cycleContext() {
		return m.startNotice("No other context column in this CSV", noticeWarn, noticeDuration)
	}
	m.resetRows()
	return m.columnNotice("Context", m.data.context)
}

func (m *model) applyPick(msg dialogs.PickedMsg) tea.Cmd {
	switch msg.ID {
	case pickFlagID:
		m.data.setFlag(msg.Value)
		m.resetRows()
		return m.columnNotice("Flag column", msg.Value)
	case pickContextID:
		m.data.setContext(msg.Value)
		m.resetRows()
		return m.columnNotice("Context", msg.Value)
	}
	return nil
}

func (m *model) columnNotice(what, value string) tea.Cmd {
	if m.data.err != nil {
		return m.startNotice(m.data.err.Error(), noticeError, noticeDuration)
	}
	return m.startNotice(fmt.Sprintf("%s: %s", what, value), noticeInfo, noticeDuration)
}

func (m *model) reload() tea.Cmd {
	if err := m.data.reload(); err != nil {
		logging.Errorf("reload %s: %v", m.data.path, err)
		return m.startNotice("Reload failed: "+err.Error(), noticeError, noticeDuration)
	}
	m.resetRows()
	if m.data.err != nil {
		return m.startNotice(m.data.err.Error(), noticeError, noticeDuration)
	}
	return m.startNotice(fmt.Sprintf("Reloaded %s windows", fmtCount(m.data.result.Summary.Total)), noticeSuccess, noticeDuration)
}

func (m *model) copyCurrentRow() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	method, err := m.copyText(m.rows[m.cursor].String())
	if err != nil {
		return m.startNotice("Copy failed: "+err.Error(), noticeError, noticeDuration)
	}
	return m.startNotice(fmt.Sprintf("Row %d copied (%s)", m.cursor+1, method), noticeSuccess, noticeDuration)
}

func (m *model) exportCmd(dir string) tea.Cmd {
	if m.data.result == nil || len(m.data.result.Rows) == 0 {
		return m.startNotice("Nothing to export", noticeWarn, noticeDuration)
	}
	job := exportJob{
		Dir:    dir,
		Path:   m.data.path,
		Result: m.data.result,
		Track:  m.data.track,
		Chart:  m.cfg.Chart,
	}
	notice := m.startNotice("Exporting to "+dir+"…", noticeInfo, time.Minute)
	run := func() tea.Msg {
		files, err := job.run(context.Background())
		return exportDoneMsg{dir: dir, files: files, err: err}
	}
	return tea.Batch(notice, run)
}

func (m *model) summary() *boundary.Summary {
	if m.data.result == nil {
		return nil
	}
	return &m.data.result.Summary
}
