package main

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/andareed/siftly-obsmap/dialogs"
	"github.com/andareed/siftly-obsmap/logging"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	appTitle = "System Observation Boundary Map"
	// appstyle margins plus the table border
	horizontalChrome = 2*2 + 2
	footerHeight     = 2
)

func (m *model) contentWidth() int {
	return max(20, m.terminalWidth-4)
}

func (m *model) gutterWidth() int {
	return len(fmt.Sprintf("%d", max(1, len(m.rows)))) + 2
}

// refreshView resizes the preview viewport to what the dashboard above it
// leaves free and re-renders the visible rows.
func (m *model) refreshView(reason string, relayout bool) {
	if !m.ready {
		return
	}
	logging.Debugf("refreshView: %s", reason)

	width := m.terminalWidth - horizontalChrome
	if relayout || m.viewport.Width != width {
		m.header = layoutColumns(columnsFor(m.data.preview.Columns), width-m.gutterWidth())
	}
	top := lipgloss.Height(m.dashboardView(m.contentWidth()))
	// 2 margin lines, the header row, 2 border lines and the footer
	m.ui.chromeHeight = top + 2 + 1 + 2 + footerHeight
	m.viewport.Width = max(10, width)
	m.viewport.Height = max(3, m.terminalHeight-m.ui.chromeHeight)
	m.viewport.SetContent(m.renderViewport())
}

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		return dialogs.Overlay(m.activeDialog, m.terminalWidth, m.terminalHeight)
	}

	width := m.contentWidth()
	parts := []string{m.dashboardView(width)}
	if len(m.rows) > 0 {
		bordered := tableStyle.Render(m.viewport.View())
		width = lipgloss.Width(bordered)
		parts = append(parts, m.headerView(), bordered)
	}
	parts = append(parts, m.footerView(width))
	return appstyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// dashboardView is everything above the preview table.
func (m *model) dashboardView(width int) string {
	parts := []string{titleStyle.Render(appTitle)}

	switch {
	case m.data.err != nil:
		msg := m.data.err.Error()
		if m.data.isSchemaError() {
			msg += "\npress o or O to choose another flag column"
		}
		parts = append(parts, errorPanel.Width(min(width, 80)).Render(msg))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	case len(m.data.result.Rows) == 0:
		parts = append(parts, m.summaryView(), captionStyle.Render("No windows to display"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	parts = append(parts, m.summaryView(), m.observationTrackView(width))
	switch {
	case m.data.contextErr != nil:
		parts = append(parts, errorPanel.Render(m.data.contextErr.Error()))
	case m.data.track != nil:
		parts = append(parts, m.contextTrackView(width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *model) summaryView() string {
	s := m.summary()
	if s == nil {
		return ""
	}
	item := func(label, value string) string {
		return summaryLabel.Render(label+" ") + summaryValue.Render(value)
	}
	items := []string{
		item("Windows", fmtCount(s.Total)),
		item("Observed", fmtCount(s.Observed)),
		item("Outside", fmtCount(s.Outside)),
		item("Flag", m.data.flag),
	}
	if logging.IsDebugMode() {
		items = append(items, item("Dropped", fmtCount(m.data.result.Dropped)))
	}
	return strings.Join(items, summaryLabel.Render("  ·  "))
}

func (m *model) headerView() string {
	var cells []string
	for _, col := range m.header {
		if !col.Visible || col.Width <= 0 {
			continue
		}
		cells = append(cells, cellStyle.Width(col.Width).Render(col.Name))
	}
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	return headerStyle.Render(strings.Repeat(" ", m.gutterWidth()) + headerRow)
}

func (m *model) footerView(width int) string {
	st := FooterState{
		Mode:         CmdNone,
		FileName:     m.data.path,
		FlagLabel:    m.data.flag,
		ContextLabel: m.data.context,
		Row:          m.cursor + 1,
		TotalRows:    len(m.rows),
		Legend:       "(? help · o flag · x context · r reload · y copy · e export)",
	}
	if len(m.rows) == 0 {
		st.Row = 0
	}
	if m.ui.mode == modeCommand {
		st.Mode = m.ui.command.cmd
		st.ModeInput = m.activeCommandLine()
	}
	if m.ui.noticeMsg != "" {
		st.StatusMessage = noticeText(m.ui.noticeMsg, m.ui.noticeType)
	} else if m.watcher != nil {
		st.StatusMessage = "watching for changes"
	}

	if logging.IsDebugMode() {
		st.Legend += fmt.Sprintf(" | dbg term=%dx%d vp=%dx%d cur=%d vis=%d-%d",
			m.terminalWidth, m.terminalHeight, m.viewport.Width, m.viewport.Height,
			m.cursor, m.ui.visibleStart, m.ui.visibleEnd)
	}
	return RenderFooter(width, st, DefaultFooterStyles())
}

func (m *model) renderRowAt(idx int) (string, bool) {
	if idx < 0 || idx >= len(m.rows) {
		return "", false
	}

	selected := idx == m.cursor
	bg := rowStyle
	rowPrefix := bgSeq(lipgloss.Color("")) + fgSeq(lipgloss.Color(rowTextFGColor))
	if selected {
		bg = rowSelectedStyle
		rowPrefix = bgSeq(lipgloss.Color(rowSelectedBGColor)) + fgSeq(lipgloss.Color(rowSelectedTextFGColor))
	}
	rowSuffix := termenv.CSI + "0m"

	row := m.rows[idx]
	marker := outsideMarker
	if row.observed {
		marker = observedMarker
	}
	gutter := marker + bg.Render(fmt.Sprintf("%*d ", m.gutterWidth()-2, idx+1))

	content := row
	if m.ui.searchQuery != "" {
		cols := make([]string, len(row.cols))
		for i, col := range row.cols {
			cols[i] = highlightMatches(col, m.ui.searchQuery)
		}
		content.cols = cols
	}
	line := content.Render(cellStyle, m.header)
	if m.ui.searchQuery != "" {
		line = restoreRowStyleAfterReset(line, rowPrefix)
	}
	return gutter + rowPrefix + line + rowSuffix, true
}

// highlightMatches marks every case-insensitive occurrence of query in text.
// Matching runs on lowered runes so offsets stay valid when lowering changes a
// character's byte length.
func highlightMatches(text string, query string) string {
	q := foldRunes(strings.TrimSpace(query))
	if len(q) == 0 || text == "" {
		return text
	}
	runes := []rune(text)
	folded := foldRunes(text)

	var b strings.Builder
	last := 0
	for i := 0; i+len(q) <= len(runes); {
		if !slices.Equal(folded[i:i+len(q)], q) {
			i++
			continue
		}
		b.WriteString(string(runes[last:i]))
		b.WriteString(searchHighlight.Render(string(runes[i : i+len(q)])))
		i += len(q)
		last = i
	}
	b.WriteString(string(runes[last:]))
	return b.String()
}

// foldRunes lowers s one rune at a time, keeping a rune for rune mapping.
func foldRunes(s string) []rune {
	r := []rune(s)
	for i, c := range r {
		r[i] = unicode.ToLower(c)
	}
	return r
}

func restoreRowStyleAfterReset(s string, rowPrefix string) string {
	reset := termenv.CSI + "0m"
	if rowPrefix == "" || !strings.Contains(s, reset) {
		return s
	}
	return strings.ReplaceAll(s, reset, reset+rowPrefix)
}

func fgSeq(c lipgloss.Color) string {
	return colorSeq(c, false)
}

func bgSeq(c lipgloss.Color) string {
	return colorSeq(c, true)
}

func colorSeq(c lipgloss.Color, bg bool) string {
	value := string(c)
	if value == "" {
		if bg {
			return termenv.CSI + "49m"
		}
		return termenv.CSI + "39m"
	}
	tc := lipgloss.ColorProfile().Color(value)
	if tc == nil {
		return ""
	}
	return termenv.CSI + tc.Sequence(bg) + "m"
}

// renderViewport renders the rows that fit, keeping the cursor roughly centred.
func (m *model) renderViewport() string {
	if !m.hasRows() {
		return ""
	}
	m.cursor = min(max(m.cursor, 0), len(m.rows)-1)

	height := max(1, m.viewport.Height)
	start := max(0, m.cursor-height/2)
	end := min(len(m.rows), start+height)
	start = max(0, end-height)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if line, ok := m.renderRowAt(i); ok {
			lines = append(lines, line)
		}
	}
	m.ui.visibleStart, m.ui.visibleEnd = start, end-1
	m.lastVisibleRowCount = len(lines)
	return strings.Join(lines, "\n")
}
