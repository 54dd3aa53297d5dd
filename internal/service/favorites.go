package service

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/pixelfall/galleria/internal/domain"
	"github.com/pixelfall/galleria/internal/store"
)

// FavoritesService maintains the persisted set of favorited images and
// the last search query. Identity is by image ID only; stale metadata in
// storage is tolerated.
type FavoritesService struct {
	storage domain.Storage
	logger  *slog.Logger
	mu      sync.Mutex
}

// NewFavoritesService creates a new favorites service
func NewFavoritesService(storage domain.Storage, logger *slog.Logger) *FavoritesService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FavoritesService{storage: storage, logger: logger}
}

// List returns the favorites in insertion order.
func (s *FavoritesService) List() []domain.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// IsFavorite reports whether an image ID is in the persisted set.
func (s *FavoritesService) IsFavorite(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, img := range s.load() {
		if img.ID == id {
			return true
		}
	}
	return false
}

// Toggle adds the image if absent and removes it if present. It persists
// before returning, so the reported state ("now a favorite") is durable.
func (s *FavoritesService) Toggle(img domain.Image) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites := s.load()
	for i, fav := range favorites {
		if fav.ID == img.ID {
			favorites = append(favorites[:i], favorites[i+1:]...)
			s.storage.Set(store.KeyFavorites, favorites)
			s.logger.Debug("favorite removed", "id", img.ID)
			return false
		}
	}

	favorites = append(favorites, img)
	s.storage.Set(store.KeyFavorites, favorites)
	s.logger.Debug("favorite added", "id", img.ID)
	return true
}

// LastSearch returns the most recently saved query text, if any.
func (s *FavoritesService) LastSearch() string {
	var query string
	s.storage.Get(store.KeyLastSearch, &query)
	return query
}

// SaveLastSearch remembers the query text across sessions.
func (s *FavoritesService) SaveLastSearch(query string) {
	s.storage.Set(store.KeyLastSearch, strings.TrimSpace(query))
}

// load re-reads the persisted set so external mutations are always
// observed. The storage adapter's overlay cache makes this cheap.
func (s *FavoritesService) load() []domain.Image {
	var favorites []domain.Image
	s.storage.Get(store.KeyFavorites, &favorites)
	return favorites
}
