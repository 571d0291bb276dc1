package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// searchNext moves the cursor to the next (dir 1) or previous (dir -1) preview
// row containing the search query, wrapping around.
func (m *model) searchNext(dir int) tea.Cmd {
	query := strings.ToLower(strings.TrimSpace(m.ui.searchQuery))
	if query == "" || !m.hasRows() {
		return nil
	}

	n := len(m.rows)
	for step := 1; step <= n; step++ {
		i := ((m.cursor+dir*step)%n + n) % n
		if strings.Contains(strings.ToLower(m.rows[i].String()), query) {
			m.cursor = i
			return nil
		}
	}
	return m.startNotice(fmt.Sprintf("No match for %q", m.ui.searchQuery), noticeWarn, noticeDuration)
}
