package service

import (
	"log/slog"
	"sync"

	"github.com/pixelfall/galleria/internal/domain"
	"github.com/pixelfall/galleria/internal/store"
)

// ProfileService maintains the single local user profile. Profile data is
// stored locally and is not tied to any authenticated identity.
type ProfileService struct {
	storage domain.Storage
	logger  *slog.Logger
	mu      sync.Mutex
}

// NewProfileService creates a new profile service
func NewProfileService(storage domain.Storage, logger *slog.Logger) *ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{storage: storage, logger: logger}
}

// Get returns the current profile, initializing defaults on first use.
func (s *ProfileService) Get() domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Update merges the provided fields into the current profile, leaving
// nil fields untouched, and persists the result.
func (s *ProfileService) Update(patch domain.ProfileUpdate) domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := s.load()
	if patch.Name != nil {
		profile.Name = *patch.Name
	}
	if patch.Email != nil {
		profile.Email = *patch.Email
	}
	if patch.Bio != nil {
		profile.Bio = *patch.Bio
	}
	s.storage.Set(store.KeyProfile, profile)
	return profile
}

// IncrementSearchCount bumps the search counter by one.
func (s *ProfileService) IncrementSearchCount() {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := s.load()
	profile.SearchCount++
	s.storage.Set(store.KeyProfile, profile)
}

// ChangeAvatar sets the avatar glyph. Palette membership is not
// enforced; any glyph is accepted.
func (s *ProfileService) ChangeAvatar(glyph string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := s.load()
	profile.Avatar = glyph
	s.storage.Set(store.KeyProfile, profile)
}

// Reset restores all fields to defaults with a fresh creation timestamp.
func (s *ProfileService) Reset() domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := domain.NewProfile()
	s.storage.Set(store.KeyProfile, profile)
	s.logger.Info("profile reset")
	return profile
}

// Avatars returns the glyphs offered by the avatar picker.
func (s *ProfileService) Avatars() []string {
	return domain.AvatarPalette
}

func (s *ProfileService) load() domain.Profile {
	var profile domain.Profile
	if !s.storage.Get(store.KeyProfile, &profile) {
		profile = domain.NewProfile()
		s.storage.Set(store.KeyProfile, profile)
	}
	return profile
}
