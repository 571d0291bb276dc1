package main

import (
	"errors"
	"testing"

	"github.com/andareed/siftly-obsmap/boundary"
	"github.com/andareed/siftly-obsmap/clipboard"
	"github.com/andareed/siftly-obsmap/config"
	"github.com/andareed/siftly-obsmap/dialogs"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, d *dataState) *model {
	t.Helper()
	m := newModel(config.DefaultConfig(), d, nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	require.True(t, m.ready)
	return m
}

func press(m *model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestModelViewBeforeResize(t *testing.T) {
	m := newModel(config.DefaultConfig(), testData(t, "", ""), nil)
	assert.Equal(t, "loading...", m.View())
	assert.Nil(t, m.Init())
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, testData(t, "", ""))

	v := m.View()
	assert.Contains(t, v, appTitle)
	assert.Contains(t, v, boundary.ColumnWindowStart)
	assert.Contains(t, v, "chrome")
	assert.Len(t, m.rows, 3)
	assert.True(t, m.rows[0].observed)
	assert.False(t, m.rows[1].observed)
}

func TestModelSchemaErrorView(t *testing.T) {
	m := newTestModel(t, testData(t, boundary.FlagOutside, ""))

	assert.Empty(t, m.rows)
	assert.Nil(t, m.summary())
	v := m.View()
	assert.Contains(t, v, boundary.FlagOutside)
	assert.Contains(t, v, "press o or O")
}

func TestModelCycleFlagRecomputes(t *testing.T) {
	m := newTestModel(t, testData(t, "", ""))
	require.Equal(t, 2, m.summary().Observed)

	press(m, "o")
	assert.Equal(t, boundary.FlagObserved, m.data.flag)
	assert.Equal(t, 1, m.summary().Observed)
	assert.Equal(t, 2, m.summary().Outside)
	assert.Contains(t, m.ui.noticeMsg, boundary.FlagObserved)

	press(m, "o")
	assert.Equal(t, boundary.FlagObservedStrict, m.data.flag)
}

func TestModelCycleContext(t *testing.T) {
	m := newTestModel(t, testData(t, "", ""))

	press(m, "x")
	assert.Equal(t, boundary.ContextTitle, m.data.context)
	press(m, "x")
	assert.Equal(t, boundary.NoContext, m.data.context)
	assert.Nil(t, m.data.track)
	assert.NotPanics(t, func() { _ = m.View() })
}

func TestModelPickContextDialog(t *testing.T) {
	m := newTestModel(t, testData(t, "", ""))

	press(m, "X")
	require.NotNil(t, m.activeDialog)
	assert.Contains(t, m.View(), "Context column")

	press(m, "j")
	cmd := press(m, "enter")
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, dialogs.PickedMsg{}, msg)

	m.Update(msg)
	assert.Nil(t, m.activeDialog)
	assert.Equal(t, boundary.ContextTitle, m.data.context)
	assert.Equal(t, []string{"Inbox", "main.go", "Docs"}, m.data.track.Labels)
}

func TestModelNavigation(t *testing.T) {
	m := newTestModel(t, testData(t, "", ""))

	press(m, "j", "j", "j")
	assert.Equal(t, 2, m.cursor)
	press(m, "g")
	assert.Equal(t, 0, m.cursor)
	press(m, "G")
	assert.Equal(t, 2, m.cursor)
	press(m, "k")
	assert.Equal(t, 1, m.cursor)
}

func TestModelJumpCommand(t *testing.T) {
	m := newTestModel(t, testData(t, "", ""))

	press(m, ":", "3", "enter")
	assert.Equal(t, 2, m.cursor)
	assert.Equal(t, modeView, m.ui.mode)

	press(m, ":", "9", "enter")
	assert.Equal(t, 2, m.cursor)
	assert.Contains(t, m.ui.noticeMsg, "out of bounds")

	press(m, ":", "1", "esc")
	assert.Equal(t, 2, m.cursor)
}

func TestModelSearch(t *testing.T) {
	m := newTestModel(t, testData(t, "", ""))

	press(m, "/", "F", "a", "l", "s", "e", "enter")
	assert.Equal(t, "False", m.ui.searchQuery)
	assert.Equal(t, 1, m.cursor)

	press(m, "/", "1", "0", ":", "0", "0", ":", "0", "9", "enter")
	assert.Equal(t, 2, m.cursor)
	press(m, "n")
	assert.Equal(t, 1, m.cursor)
	press(m, "N")
	assert.Equal(t, 2, m.cursor)

	m.ui.searchQuery = "nowhere"
	m.searchNext(1)
	assert.Equal(t, 2, m.cursor)
	assert.Contains(t, m.ui.noticeMsg, "No match")
}

func TestModelCopyRow(t *testing.T) {
	m := newTestModel(t, testData(t, "", ""))
	var copied string
	m.copyText = func(s string) (clipboard.Method, error) {
		copied = s
		return clipboard.OSC52, nil
	}

	press(m, "j", "y")
	assert.Equal(t, m.rows[1].String(), copied)
	assert.Contains(t, copied, "False")
	assert.Equal(t, "Row 2 copied (osc52)", m.ui.noticeMsg)

	m.copyText = func(string) (clipboard.Method, error) {
		return "", clipboard.ErrUnavailable
	}
	press(m, "y")
	assert.Equal(t, noticeError, m.ui.noticeType)
}

func TestModelNoticeExpires(t *testing.T) {
	m := newTestModel(t, testData(t, "", ""))

	m.startNotice("first", noticeInfo, noticeDuration)
	first := m.ui.noticeSeq
	m.startNotice("second", noticeInfo, noticeDuration)

	m.Update(clearNoticeMsg{id: first})
	assert.Equal(t, "second", m.ui.noticeMsg)
	m.Update(clearNoticeMsg{id: m.ui.noticeSeq})
	assert.Empty(t, m.ui.noticeMsg)
}

func TestModelExportDone(t *testing.T) {
	m := newTestModel(t, testData(t, "", ""))

	m.Update(exportDoneMsg{dir: "out", files: []string{"a", "b"}})
	assert.Equal(t, "Exported 2 files to out", m.ui.noticeMsg)

	m.Update(exportDoneMsg{dir: "out", err: errors.New("disk full")})
	assert.Equal(t, noticeError, m.ui.noticeType)
	assert.Contains(t, m.ui.noticeMsg, "disk full")
}

func TestModelReload(t *testing.T) {
	d := testData(t, "", "")
	d.path = writeWindows(t, windowsCSV+"2026-01-20T10:00:20Z,2026-01-20T10:00:30Z,False,0,code,x,1\n")
	m := newTestModel(t, d)

	press(m, "r")
	assert.Len(t, m.rows, 4)
	assert.Equal(t, "Reloaded 4 windows", m.ui.noticeMsg)
}
