package main

import (
	"github.com/andareed/siftly-obsmap/palette"
	"github.com/charmbracelet/lipgloss"
)

const (
	rowTextFGColor         = "#c0c0c0"
	rowSelectedTextFGColor = "#e0e0e0"
	rowSelectedBGColor     = "#3a3a3a"
	searchHighlightBGColor = "#f5c542"
	searchHighlightFGColor = "#000000"
	captionFGColor         = "#8a8a8a"
	errorFGColor           = "#ff6b6b"
)

var (
	appstyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0e0e0"))
	captionStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(captionFGColor))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#b0b0b0")).MarginTop(1)
	axisStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#707070"))

	summaryLabel = lipgloss.NewStyle().Foreground(lipgloss.Color(captionFGColor))
	summaryValue = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0e0e0"))

	observedCell = lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Observed))
	outsideCell  = lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Fade(palette.Observed, 0.5)))

	errorPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(errorFGColor)).
			Foreground(lipgloss.Color(errorFGColor)).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().BorderStyle(lipgloss.Border{
		Left:  " ",
		Right: " ",
	}).BorderLeft(true).BorderRight(true).Bold(true)
	rowStyle         = lipgloss.NewStyle()
	rowSelectedStyle = lipgloss.NewStyle().Background(lipgloss.Color(rowSelectedBGColor))

	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
	tableStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))

	// gutter markers: observed rows get a solid pill, outside rows a hatched one
	observedMarker = observedCell.Render("▐")
	outsideMarker  = outsideCell.Render("╱")

	searchHighlight = lipgloss.NewStyle().
			Background(lipgloss.Color(searchHighlightBGColor)).
			Foreground(lipgloss.Color(searchHighlightFGColor))
)

const (
	observedGlyph = "█"
	outsideGlyph  = "╱"
	contextGlyph  = "█"
	legendGlyph   = "■"
	trackHeight   = 2
)
