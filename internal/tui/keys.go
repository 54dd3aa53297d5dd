package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Enter key.Binding

	// Pagination
	NextPage key.Binding
	PrevPage key.Binding

	// Actions
	Search        key.Binding
	Filter        key.Binding
	Favorite      key.Binding
	Download      key.Binding
	FavoritesView key.Binding
	DownloadsView key.Binding
	ProfileView   key.Binding
	CycleAvatar   key.Binding
	EditName      key.Binding
	ResetProfile  key.Binding
	Help          key.Binding
	Escape        key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "]"),
			key.WithHelp("n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("b", "["),
			key.WithHelp("b", "prev page"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "filter favorites"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle favorite"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download"),
		),
		FavoritesView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "favorites view"),
		),
		DownloadsView: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "downloads view"),
		),
		ProfileView: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "profile"),
		),
		CycleAvatar: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "change avatar"),
		),
		EditName: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit name"),
		),
		ResetProfile: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset profile"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
