package tui

// Message types for the TUI

// SearchDoneMsg signals that a search submission finished (success,
// validation error, or transport failure); the controller holds the
// resulting state.
type SearchDoneMsg struct {
	Err error
}

// PageLoadedMsg signals that a page navigation finished. The view
// scrolls back to the top of the grid on receipt.
type PageLoadedMsg struct {
	Err error
}

// DownloadDoneMsg signals that an image download finished
type DownloadDoneMsg struct {
	ID   int
	Path string
	Err  error
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// TickMsg drives the loading spinner
type TickMsg struct{}
