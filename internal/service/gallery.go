package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/pixelfall/galleria/internal/domain"
)

// minQueryLen is the shortest trimmed query worth sending to the API.
const minQueryLen = 2

// GalleryState is a snapshot of the controller's view-model.
type GalleryState struct {
	Query         string
	Page          int
	TotalPages    int
	Images        []domain.Image
	Favorites     []domain.Image
	ShowFavorites bool
	Selected      *domain.Image
	Loading       bool
	Err           error
}

// GalleryService orchestrates search submission, pagination, and
// loading/error state, and composes the favorites store into a unified
// view-model. Each page transition re-fetches; no pages are accumulated
// client-side.
//
// Overlapping fetches are fenced with a sequence number: a response is
// discarded when a newer fetch has been issued since, so the newest
// request always wins regardless of arrival order.
type GalleryService struct {
	repo      domain.SearchRepository
	favorites *FavoritesService
	profile   *ProfileService
	logger    *slog.Logger

	mu            sync.Mutex
	query         string
	page          int
	totalPages    int
	images        []domain.Image
	favSnapshot   []domain.Image
	showFavorites bool
	selected      *domain.Image
	loading       bool
	err           error
	seq           uint64
}

// NewGalleryService creates a gallery controller. The last saved search
// is restored as the pending query so the search box prefills on start.
func NewGalleryService(repo domain.SearchRepository, favorites *FavoritesService, profile *ProfileService, logger *slog.Logger) *GalleryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GalleryService{
		repo:        repo,
		favorites:   favorites,
		profile:     profile,
		logger:      logger,
		query:       favorites.LastSearch(),
		favSnapshot: favorites.List(),
	}
}

// State returns a snapshot of the current view-model.
func (s *GalleryService) State() GalleryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return GalleryState{
		Query:         s.query,
		Page:          s.page,
		TotalPages:    s.totalPages,
		Images:        s.images,
		Favorites:     s.favSnapshot,
		ShowFavorites: s.showFavorites,
		Selected:      s.selected,
		Loading:       s.loading,
		Err:           s.err,
	}
}

// SetQuery updates the pending query text without triggering a fetch.
func (s *GalleryService) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
}

// SubmitSearch validates the pending query and fetches page 1. A trimmed
// query under two characters sets ErrQueryTooShort and performs no
// network call.
func (s *GalleryService) SubmitSearch(ctx context.Context) error {
	s.mu.Lock()
	query := strings.TrimSpace(s.query)
	if len([]rune(query)) < minQueryLen {
		s.err = domain.ErrQueryTooShort
		s.mu.Unlock()
		return domain.ErrQueryTooShort
	}
	s.page = 1
	s.showFavorites = false
	s.mu.Unlock()

	return s.fetch(ctx, query, 1, true)
}

// GoToPage re-fetches the current query at page n. Out-of-range pages
// are a no-op: no state change, no fetch.
func (s *GalleryService) GoToPage(ctx context.Context, n int) error {
	s.mu.Lock()
	if n < 1 || n > s.totalPages {
		s.mu.Unlock()
		return nil
	}
	s.page = n
	query := strings.TrimSpace(s.query)
	s.mu.Unlock()

	return s.fetch(ctx, query, n, false)
}

// NextPage advances one page; a no-op at the last page.
func (s *GalleryService) NextPage(ctx context.Context) error {
	s.mu.Lock()
	n := s.page + 1
	s.mu.Unlock()
	return s.GoToPage(ctx, n)
}

// PrevPage goes back one page; a no-op at the first page.
func (s *GalleryService) PrevPage(ctx context.Context) error {
	s.mu.Lock()
	n := s.page - 1
	s.mu.Unlock()
	return s.GoToPage(ctx, n)
}

// ToggleFavorite delegates to the favorites store and refreshes the
// cached favorites snapshot. It reports whether the image is now a
// favorite.
func (s *GalleryService) ToggleFavorite(img domain.Image) bool {
	nowFavorite := s.favorites.Toggle(img)

	s.mu.Lock()
	s.favSnapshot = s.favorites.List()
	s.mu.Unlock()

	return nowFavorite
}

// IsFavorite reports whether an image ID is in the persisted set.
func (s *GalleryService) IsFavorite(id int) bool {
	return s.favorites.IsFavorite(id)
}

// ToggleFavoritesView flips between search results and the favorites
// set, refreshing the snapshot so the view is current.
func (s *GalleryService) ToggleFavoritesView() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showFavorites = !s.showFavorites
	s.favSnapshot = s.favorites.List()
	return s.showFavorites
}

// SelectImage tracks which image is focused for detail display; nil
// clears the selection. Purely in-memory.
func (s *GalleryService) SelectImage(img *domain.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = img
}

// fetch issues the search request and applies the result under the
// sequence fence. Loading always ends for the fetch that owns it.
func (s *GalleryService) fetch(ctx context.Context, query string, page int, countSearch bool) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	result, err := s.repo.Search(ctx, query, page)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		// A newer fetch was issued while this one was in flight;
		// the newer one owns the loading flag and the result slots.
		s.logger.Debug("stale search response discarded", "query", query, "page", page)
		return nil
	}
	s.loading = false

	if err != nil {
		s.images = nil
		s.totalPages = 0
		s.err = domain.ErrSearchFailed
		s.logger.Error("search failed", "query", query, "page", page, "error", err)
		return domain.ErrSearchFailed
	}

	s.images = result.Hits
	s.totalPages = domain.TotalPages(result.TotalHits)
	s.favorites.SaveLastSearch(query)
	if countSearch {
		s.profile.IncrementSearchCount()
	}

	if len(result.Hits) == 0 {
		s.err = domain.ErrNoResults
	}

	s.logger.Debug("search complete", "query", query, "page", page,
		"hits", len(result.Hits), "totalPages", s.totalPages)
	return nil
}
