package main

type mode int

const (
	modeView mode = iota
	modeCommand
)

type uiState struct {
	mode        mode
	command     CommandInput
	noticeMsg   string
	noticeType  string
	noticeSeq   int
	searchQuery string
	// lastExportDir is offered again the next time the export dialog opens.
	lastExportDir string

	visibleStart int
	visibleEnd   int
	chromeHeight int
}
