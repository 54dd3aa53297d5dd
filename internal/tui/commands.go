package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pixelfall/galleria/internal/domain"
	"github.com/pixelfall/galleria/internal/service"
)

// fetchTimeout bounds every outbound request so the loading state can
// never hang indefinitely.
const fetchTimeout = 30 * time.Second

// Command factories for async operations

// SubmitSearchCmd validates and runs the pending search for page 1
func SubmitSearchCmd(svc *service.GalleryService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		err := svc.SubmitSearch(ctx)
		return SearchDoneMsg{Err: err}
	}
}

// GoToPageCmd re-runs the current search at page n
func GoToPageCmd(svc *service.GalleryService, n int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		err := svc.GoToPage(ctx, n)
		return PageLoadedMsg{Err: err}
	}
}

// NextPageCmd advances one page
func NextPageCmd(svc *service.GalleryService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		err := svc.NextPage(ctx)
		return PageLoadedMsg{Err: err}
	}
}

// PrevPageCmd goes back one page
func PrevPageCmd(svc *service.GalleryService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		err := svc.PrevPage(ctx)
		return PageLoadedMsg{Err: err}
	}
}

// DownloadCmd downloads an image and records it
func DownloadCmd(svc *service.DownloadsService, img domain.Image) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		path, err := svc.Download(ctx, img)
		return DownloadDoneMsg{ID: img.ID, Path: path, Err: err}
	}
}

// ClearStatusCmd clears the status bar after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// TickCmd drives the loading spinner
func TickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}
