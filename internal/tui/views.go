package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pixelfall/galleria/internal/domain"
	"github.com/pixelfall/galleria/internal/service"
	"github.com/pixelfall/galleria/internal/tui/styles"
)

const minCardWidth = 24

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var body string
	switch m.mode {
	case ViewDownloads:
		body = m.viewDownloads()
	case ViewProfile:
		body = m.viewProfile()
	case ViewHelp:
		body = m.viewHelp()
	default:
		body = m.viewGallery()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		body,
		m.viewStatusBar(),
	)
}

func (m Model) viewHeader() string {
	title := styles.TitleStyle.Render("Galleria")
	profile := m.Profile.Get()
	right := styles.SubtitleStyle.Render(fmt.Sprintf("%s %s · %d searches", profile.Avatar, profile.Name, profile.SearchCount))

	var middle string
	if m.searching {
		middle = m.searchInput.View()
		if hint := m.searchSuggestions(); hint != "" {
			middle += "  " + styles.DimStyle.Render(hint)
		}
	} else {
		state := m.Gallery.State()
		if state.Query != "" {
			middle = styles.AccentStyle.Render("“" + state.Query + "”")
		} else {
			middle = styles.DimStyle.Render("press / to search")
		}
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(middle) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		title, "  ", middle, strings.Repeat(" ", gap), right)
}

func (m Model) viewGallery() string {
	state := m.Gallery.State()

	if state.Loading {
		frame := styles.SpinnerFrames[m.spinnerFrame%len(styles.SpinnerFrames)]
		return styles.AccentStyle.Render(fmt.Sprintf("\n  %s searching...\n", frame))
	}

	images := m.visibleImages(state)

	var header string
	if state.ShowFavorites {
		header = styles.FavoriteStyle.Render(fmt.Sprintf("  Favorites (%d)", len(state.Favorites)))
		if m.filtering || m.filterInput.Value() != "" {
			header += "  " + m.filterInput.View()
		}
	} else if state.TotalPages > 0 {
		header = styles.SubtitleStyle.Render(fmt.Sprintf("  Page %d of %d", state.Page, state.TotalPages))
	}

	if len(images) == 0 {
		empty := styles.DimStyle.Render("\n  nothing to show\n")
		if state.Err != nil {
			empty = styles.ErrorStyle.Render("\n  " + errorMessage(state.Err) + "\n")
		}
		return lipgloss.JoinVertical(lipgloss.Left, header, empty)
	}

	grid := m.viewGrid(images)

	if state.Selected != nil {
		return lipgloss.JoinVertical(lipgloss.Left, header, grid, m.viewDetail(*state.Selected))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, grid)
}

func (m Model) viewGrid(images []domain.Image) string {
	columns := m.gridColumns
	if max := m.width / minCardWidth; max < columns {
		columns = max
	}
	if columns < 1 {
		columns = 1
	}
	cardWidth := m.width/columns - 4

	rows := make([]string, 0, len(images)/columns+1)
	for start := 0; start < len(images); start += columns {
		end := start + columns
		if end > len(images) {
			end = len(images)
		}

		cards := make([]string, 0, columns)
		for i := start; i < end; i++ {
			cards = append(cards, m.viewCard(images[i], cardWidth, i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return strings.Join(rows, "\n")
}

func (m Model) viewCard(img domain.Image, width int, selected bool) string {
	marks := ""
	if m.Gallery.IsFavorite(img.ID) {
		marks += " " + styles.FavoriteStyle.Render(styles.FavoriteMark)
	}
	if m.Downloads.IsDownloaded(img.ID) {
		marks += " " + styles.SuccessStyle.Render(styles.DownloadedMark)
	}

	lines := []string{
		styles.TitleStyle.Render(truncate(img.Tags, width-4)) + marks,
		styles.SubtitleStyle.Render(truncate("by "+img.User, width-4)),
		styles.DimStyle.Render(fmt.Sprintf("♥ %d  ↓ %d  👁 %d", img.Likes, img.Downloads, img.Views)),
	}

	style := styles.CardStyle
	if selected {
		style = styles.SelectedCardStyle
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) viewDetail(img domain.Image) string {
	lines := []string{
		styles.TitleStyle.Render(fmt.Sprintf("#%d", img.ID)) + "  " + styles.AccentStyle.Render(img.Tags),
		styles.SubtitleStyle.Render(fmt.Sprintf("by %s · %dx%d", img.User, img.ImageWidth, img.ImageHeight)),
		styles.DimStyle.Render(fmt.Sprintf("♥ %d likes · ↓ %d downloads · %d comments", img.Likes, img.Downloads, img.Comments)),
		styles.DimStyle.Render(img.PageURL),
	}
	return styles.ActiveBorder.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) viewDownloads() string {
	records := m.Downloads.List()

	header := styles.TitleStyle.Render(fmt.Sprintf("  Downloads (%d)", len(records)))
	if len(records) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			styles.DimStyle.Render("\n  no downloads yet\n"))
	}

	lines := make([]string, 0, len(records)+1)
	for i, rec := range records {
		line := fmt.Sprintf("#%-8d %s  %s",
			rec.ID,
			truncate(rec.Tags, 40),
			rec.DownloadedAt.Format("2006-01-02 15:04"))
		if i == m.cursor {
			line = styles.AccentStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	lines = append(lines, styles.DimStyle.Render("\n  x remove · X clear all"))

	return lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(lines, "\n"))
}

func (m Model) viewProfile() string {
	profile := m.Profile.Get()
	state := m.Gallery.State()

	var name string
	if m.editingName {
		name = m.nameInput.View()
	} else {
		name = styles.TitleStyle.Render(profile.Name)
	}

	lines := []string{
		"",
		fmt.Sprintf("  %s  %s", profile.Avatar, name),
		styles.SubtitleStyle.Render("  " + orDash(profile.Email)),
		styles.SubtitleStyle.Render("  " + orDash(profile.Bio)),
		"",
		styles.DimStyle.Render(fmt.Sprintf("  searches: %d · favorites: %d · downloads: %d",
			profile.SearchCount, len(state.Favorites), len(m.Downloads.List()))),
		styles.DimStyle.Render("  member since " + profile.CreatedAt.Format("Jan 2, 2006")),
		"",
		styles.DimStyle.Render("  a change avatar · e edit name · R reset"),
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewHelp() string {
	rows := [][2]string{
		{"/", "search photos"},
		{"enter", "show image details"},
		{"h/j/k/l", "move around the grid"},
		{"n / b", "next / previous page"},
		{"f", "toggle favorite"},
		{"d", "download image"},
		{"v", "toggle favorites view"},
		{"ctrl+f", "filter favorites"},
		{"D", "downloads"},
		{"p", "profile"},
		{"q", "quit"},
	}

	lines := []string{styles.TitleStyle.Render("  Help"), ""}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("  %s  %s",
			styles.AccentStyle.Render(fmt.Sprintf("%-8s", r[0])),
			styles.SubtitleStyle.Render(r[1])))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewStatusBar() string {
	if m.statusMsg == "" {
		return styles.StatusBarStyle.Width(m.width).Render("? help · q quit")
	}
	msg := m.statusMsg
	if m.statusIsErr {
		msg = styles.ErrorStyle.Render(msg)
	}
	return styles.StatusBarStyle.Width(m.width).Render(msg)
}

// searchSuggestions ranks known tags from the current results and the
// favorites set against the partial query.
func (m Model) searchSuggestions() string {
	query := m.searchInput.Value()
	if len(query) < 2 {
		return ""
	}

	state := m.Gallery.State()
	corpus := append(append([]domain.Image{}, state.Images...), state.Favorites...)
	suggestions := service.SuggestTags(query, corpus)
	if len(suggestions) == 0 {
		return ""
	}
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return strings.Join(suggestions, " · ")
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
