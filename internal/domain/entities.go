package domain

import (
	"strings"
	"time"
)

// PageSize is the fixed number of images requested per search call.
const PageSize = 20

// Image represents one searchable photo and its metadata as returned
// by the search provider. Images are immutable once fetched; favorites
// and downloads store copies keyed by ID.
type Image struct {
	ID            int    `json:"id"`
	PageURL       string `json:"pageURL"`
	Type          string `json:"type"`
	Tags          string `json:"tags"`
	PreviewURL    string `json:"previewURL"`
	WebFormatURL  string `json:"webformatURL"`
	LargeImageURL string `json:"largeImageURL"`
	ImageWidth    int    `json:"imageWidth"`
	ImageHeight   int    `json:"imageHeight"`
	Views         int    `json:"views"`
	Downloads     int    `json:"downloads"`
	Likes         int    `json:"likes"`
	Comments      int    `json:"comments"`
	User          string `json:"user"`
	UserImageURL  string `json:"userImageURL"`
}

// TagList splits the comma-separated tag string into individual tags.
func (i Image) TagList() []string {
	parts := strings.Split(i.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// SearchResult is one page of search results plus the server-reported totals.
type SearchResult struct {
	Total     int
	TotalHits int
	Hits      []Image
}

// TotalPages derives the page count from the server-reported hit total.
// Pagination controls render correctly even though only one page of hits
// is ever held in memory.
func TotalPages(totalHits int) int {
	if totalHits <= 0 {
		return 0
	}
	return (totalHits + PageSize - 1) / PageSize
}

// DownloadRecord is a log entry of a downloaded image.
type DownloadRecord struct {
	Image
	DownloadedAt time.Time `json:"downloadedAt"`
}

// MaxDownloads bounds the download log; older records beyond the cap
// are dropped silently.
const MaxDownloads = 100

// Profile holds the per-machine user profile. Exactly one instance exists.
type Profile struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Bio         string    `json:"bio"`
	Avatar      string    `json:"avatar"`
	SearchCount int       `json:"searchesCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DefaultAvatar is the glyph assigned to fresh profiles.
const DefaultAvatar = "👤"

// AvatarPalette is the set of glyphs offered by the avatar picker.
// ChangeAvatar accepts any glyph; the palette is a UI convenience only.
var AvatarPalette = []string{
	"👤", "😊", "🎨", "📸", "🌟", "🎭", "🦄", "🚀",
	"🎯", "💎", "🌈", "⚡", "🔥", "✨", "🌙", "☀️",
}

// NewProfile returns a profile with documented defaults and a fresh
// creation timestamp.
func NewProfile() Profile {
	return Profile{
		Name:      "Guest User",
		Avatar:    DefaultAvatar,
		CreatedAt: time.Now(),
	}
}

// ProfileUpdate is a partial-field patch; nil fields are left untouched.
type ProfileUpdate struct {
	Name  *string
	Email *string
	Bio   *string
}
