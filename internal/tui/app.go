package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pixelfall/galleria/internal/domain"
	"github.com/pixelfall/galleria/internal/service"
)

// ViewMode selects which screen is rendered
type ViewMode int

const (
	ViewGallery ViewMode = iota
	ViewDownloads
	ViewProfile
	ViewHelp
)

// statusTTL is how long transient status messages stay visible
const statusTTL = 4 * time.Second

// Model is the main Bubble Tea model for the application
type Model struct {
	Keys KeyMap

	// Services
	Gallery   *service.GalleryService
	Downloads *service.DownloadsService
	Profile   *service.ProfileService
	Filter    *service.FilterService

	// Inputs
	searchInput textinput.Model
	filterInput textinput.Model
	nameInput   textinput.Model

	// UI state
	mode        ViewMode
	searching   bool
	filtering   bool
	editingName bool

	cursor      int
	gridColumns int
	avatarIdx   int

	width  int
	height int

	statusMsg    string
	statusIsErr  bool
	spinnerFrame int
}

// NewModel creates a new application model
func NewModel(gallery *service.GalleryService, downloads *service.DownloadsService, profile *service.ProfileService, filter *service.FilterService, gridColumns int) Model {
	if gridColumns < 1 {
		gridColumns = 4
	}

	search := textinput.New()
	search.Placeholder = "search photos..."
	search.CharLimit = 100
	search.SetValue(gallery.State().Query)

	filterIn := textinput.New()
	filterIn.Placeholder = "filter by tag or photographer..."
	filterIn.CharLimit = 60

	name := textinput.New()
	name.Placeholder = "display name"
	name.CharLimit = 60

	return Model{
		Keys:        DefaultKeyMap(),
		Gallery:     gallery,
		Downloads:   downloads,
		Profile:     profile,
		Filter:      filter,
		searchInput: search,
		filterInput: filterIn,
		nameInput:   name,
		gridColumns: gridColumns,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		if m.Gallery.State().Loading {
			m.spinnerFrame++
			return m, TickCmd()
		}
		return m, nil

	case SearchDoneMsg:
		m.cursor = 0
		return m.applyFetchStatus(), ClearStatusCmd(statusTTL)

	case PageLoadedMsg:
		// Scroll back to the top of the grid on every page change
		m.cursor = 0
		return m.applyFetchStatus(), ClearStatusCmd(statusTTL)

	case DownloadDoneMsg:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("download failed: %v", msg.Err)
			m.statusIsErr = true
		} else {
			m.statusMsg = "saved " + msg.Path
			m.statusIsErr = false
		}
		return m, ClearStatusCmd(statusTTL)

	case ClearStatusMsg:
		m.statusMsg = ""
		m.statusIsErr = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes key presses to the focused input or global bindings
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}
	if m.editingName {
		return m.handleNameKey(msg)
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Help):
		if m.mode == ViewHelp {
			m.mode = ViewGallery
		} else {
			m.mode = ViewHelp
		}
		return m, nil

	case key.Matches(msg, m.Keys.Escape):
		if m.Gallery.State().Selected != nil {
			m.Gallery.SelectImage(nil)
			return m, nil
		}
		m.mode = ViewGallery
		return m, nil

	case key.Matches(msg, m.Keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.Gallery.State().Query)
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.Keys.FavoritesView):
		m.mode = ViewGallery
		m.cursor = 0
		showing := m.Gallery.ToggleFavoritesView()
		if showing {
			m.Filter.Reindex(m.Gallery.State().Favorites)
		}
		return m, nil

	case key.Matches(msg, m.Keys.DownloadsView):
		m.mode = ViewDownloads
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.Keys.ProfileView):
		m.mode = ViewProfile
		return m, nil
	}

	switch m.mode {
	case ViewGallery:
		return m.handleGalleryKey(msg)
	case ViewDownloads:
		return m.handleDownloadsKey(msg)
	case ViewProfile:
		return m.handleProfileKey(msg)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.Gallery.SetQuery(m.searchInput.Value())
		return m, tea.Batch(SubmitSearchCmd(m.Gallery), TickCmd())
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		if msg.String() == "esc" {
			m.filterInput.SetValue("")
		}
		m.filtering = false
		m.filterInput.Blur()
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.cursor = 0
	return m, cmd
}

func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editingName = false
		m.nameInput.Blur()
		name := m.nameInput.Value()
		m.Profile.Update(domain.ProfileUpdate{Name: &name})
		m.statusMsg = "profile updated"
		return m, ClearStatusCmd(statusTTL)
	case "esc":
		m.editingName = false
		m.nameInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) handleGalleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.Gallery.State()
	images := m.visibleImages(state)

	switch {
	case key.Matches(msg, m.Keys.Up):
		m.cursor = clamp(m.cursor-m.gridColumns, 0, len(images)-1)
	case key.Matches(msg, m.Keys.Down):
		m.cursor = clamp(m.cursor+m.gridColumns, 0, len(images)-1)
	case key.Matches(msg, m.Keys.Left):
		m.cursor = clamp(m.cursor-1, 0, len(images)-1)
	case key.Matches(msg, m.Keys.Right):
		m.cursor = clamp(m.cursor+1, 0, len(images)-1)

	case key.Matches(msg, m.Keys.Enter):
		if img, ok := m.imageAtCursor(images); ok {
			selected := img
			m.Gallery.SelectImage(&selected)
		}

	case key.Matches(msg, m.Keys.Favorite):
		if img, ok := m.imageAtCursor(images); ok {
			if m.Gallery.ToggleFavorite(img) {
				m.statusMsg = "added to favorites"
			} else {
				m.statusMsg = "removed from favorites"
			}
			if state.ShowFavorites {
				m.Filter.Reindex(m.Gallery.State().Favorites)
				m.cursor = clamp(m.cursor, 0, len(m.Gallery.State().Favorites)-1)
			}
			return m, ClearStatusCmd(statusTTL)
		}

	case key.Matches(msg, m.Keys.Download):
		if img, ok := m.imageAtCursor(images); ok {
			m.statusMsg = fmt.Sprintf("downloading #%d...", img.ID)
			m.statusIsErr = false
			return m, DownloadCmd(m.Downloads, img)
		}

	case key.Matches(msg, m.Keys.Filter):
		if state.ShowFavorites {
			m.filtering = true
			m.filterInput.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, m.Keys.NextPage):
		if !state.ShowFavorites {
			return m, tea.Batch(NextPageCmd(m.Gallery), TickCmd())
		}

	case key.Matches(msg, m.Keys.PrevPage):
		if !state.ShowFavorites {
			return m, tea.Batch(PrevPageCmd(m.Gallery), TickCmd())
		}
	}

	return m, nil
}

func (m Model) handleDownloadsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	records := m.Downloads.List()

	switch {
	case key.Matches(msg, m.Keys.Up):
		m.cursor = clamp(m.cursor-1, 0, len(records)-1)
	case key.Matches(msg, m.Keys.Down):
		m.cursor = clamp(m.cursor+1, 0, len(records)-1)

	case msg.String() == "x":
		if m.cursor < len(records) {
			m.Downloads.Remove(records[m.cursor].ID)
			m.cursor = clamp(m.cursor, 0, len(records)-2)
			m.statusMsg = "download removed"
			return m, ClearStatusCmd(statusTTL)
		}

	case msg.String() == "X":
		m.Downloads.Clear()
		m.cursor = 0
		m.statusMsg = "downloads cleared"
		return m, ClearStatusCmd(statusTTL)
	}

	return m, nil
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.CycleAvatar):
		avatars := m.Profile.Avatars()
		m.avatarIdx = (m.avatarIdx + 1) % len(avatars)
		m.Profile.ChangeAvatar(avatars[m.avatarIdx])
		return m, nil

	case key.Matches(msg, m.Keys.EditName):
		m.editingName = true
		m.nameInput.SetValue(m.Profile.Get().Name)
		m.nameInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.Keys.ResetProfile):
		m.Profile.Reset()
		m.avatarIdx = 0
		m.statusMsg = "profile reset"
		return m, ClearStatusCmd(statusTTL)
	}

	return m, nil
}

// applyFetchStatus derives a status line from the controller state
// after a fetch completes.
func (m Model) applyFetchStatus() Model {
	state := m.Gallery.State()
	if state.Err != nil {
		m.statusMsg = errorMessage(state.Err)
		m.statusIsErr = true
		return m
	}
	m.statusMsg = fmt.Sprintf("%d images · page %d/%d", len(state.Images), state.Page, state.TotalPages)
	m.statusIsErr = false
	return m
}

// visibleImages returns what the gallery grid currently shows: search
// results, the favorites set, or the filtered favorites.
func (m Model) visibleImages(state service.GalleryState) []domain.Image {
	if !state.ShowFavorites {
		return state.Images
	}
	query := m.filterInput.Value()
	if query == "" {
		return state.Favorites
	}
	results := m.Filter.Filter(query)
	images := make([]domain.Image, len(results))
	for i, r := range results {
		images[i] = r.Image
	}
	return images
}

func (m Model) imageAtCursor(images []domain.Image) (domain.Image, bool) {
	if m.cursor < 0 || m.cursor >= len(images) {
		return domain.Image{}, false
	}
	return images[m.cursor], true
}

// errorMessage maps domain errors to user-facing text
func errorMessage(err error) string {
	switch err {
	case domain.ErrQueryTooShort:
		return "enter at least 2 characters"
	case domain.ErrNoResults:
		return "no results found"
	case domain.ErrSearchFailed:
		return "search failed, try again"
	default:
		return err.Error()
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
