package tui

const (
	tableVerticalPadding = 4
	splitPanelPadding    = 2
	minNameColumnWidth   = 20
	maxNameColumnWidth   = 120
	borderPadding        = 8

	tagColumnWidth      = 8
	durationColumnWidth = 10
	timeColumnWidth     = 14

	maxBodyDisplayLength = 5000

	// search panel
	searchPanelHeight  = 6
	searchCursorInput  = 0
	searchCursorFilter = 1
	searchCursorRegex  = 2
	searchCursorHidden = 3
	searchCursorCount  = 4

	// marks failed items in the name column
	errorMarker = "✗ "
)
