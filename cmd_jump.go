package main

import (
	"fmt"

	"github.com/andareed/siftly-obsmap/logging"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) hasRows() bool {
	return len(m.rows) > 0
}

func (m *model) jumpToStart() {
	logging.Debug("jumpToStart called")
	if !m.hasRows() {
		return
	}
	m.cursor = 0
}

func (m *model) jumpToEnd() {
	logging.Debug("jumpToEnd called")
	if !m.hasRows() {
		return
	}
	m.cursor = len(m.rows) - 1
}

// jumpToLine moves to the 1-based preview row lineNo.
func (m *model) jumpToLine(lineNo int) tea.Cmd {
	logging.Debugf("jumpToLine %d", lineNo)
	if !m.hasRows() {
		return nil
	}
	if lineNo <= 0 || lineNo > len(m.rows) {
		return m.startNotice(fmt.Sprintf("Row %d out of bounds (1-%d)", lineNo, len(m.rows)), noticeWarn, noticeDuration)
	}
	m.cursor = lineNo - 1
	return nil
}

func (m *model) moveCursor(delta int) {
	if !m.hasRows() {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.rows)-1)
}

func (m *model) pageSize() int {
	return max(1, m.lastVisibleRowCount)
}
