package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pixelfall/galleria/internal/domain"
	"github.com/pixelfall/galleria/internal/store"
)

// DownloadsService maintains a bounded, most-recent-first log of
// downloaded images and writes the image files to the downloads directory.
type DownloadsService struct {
	storage domain.Storage
	fetcher domain.ImageFetcher
	dir     string
	logger  *slog.Logger
	mu      sync.Mutex

	now func() time.Time
}

// NewDownloadsService creates a new downloads service. fetcher may be nil
// when only the log is needed (Download then returns an error).
func NewDownloadsService(storage domain.Storage, fetcher domain.ImageFetcher, dir string, logger *slog.Logger) *DownloadsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DownloadsService{
		storage: storage,
		fetcher: fetcher,
		dir:     dir,
		logger:  logger,
		now:     time.Now,
	}
}

// List returns the download log, most recent first.
func (s *DownloadsService) List() []domain.DownloadRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add records a download. Re-downloading an already-present ID is a
// no-op; otherwise the record is prepended and the log truncated to the
// newest MaxDownloads entries.
func (s *DownloadsService) Add(img domain.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	for _, rec := range records {
		if rec.ID == img.ID {
			return
		}
	}

	records = append([]domain.DownloadRecord{{Image: img, DownloadedAt: s.now()}}, records...)
	if len(records) > domain.MaxDownloads {
		records = records[:domain.MaxDownloads]
	}
	s.storage.Set(store.KeyDownloads, records)
	s.logger.Debug("download recorded", "id", img.ID, "count", len(records))
}

// Remove deletes the matching record if present.
func (s *DownloadsService) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	for i, rec := range records {
		if rec.ID == id {
			records = append(records[:i], records[i+1:]...)
			s.storage.Set(store.KeyDownloads, records)
			return
		}
	}
}

// Clear empties the log.
func (s *DownloadsService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storage.Set(store.KeyDownloads, []domain.DownloadRecord{})
}

// IsDownloaded reports whether an image ID is in the log.
func (s *DownloadsService) IsDownloaded(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.load() {
		if rec.ID == id {
			return true
		}
	}
	return false
}

// Download fetches the image bytes, writes them under the downloads
// directory, and records the download. The log is updated even when the
// file was downloaded before under a different session.
func (s *DownloadsService) Download(ctx context.Context, img domain.Image) (string, error) {
	if s.fetcher == nil {
		return "", fmt.Errorf("no image fetcher configured")
	}

	srcURL := img.LargeImageURL
	if srcURL == "" {
		srcURL = img.WebFormatURL
	}
	if srcURL == "" {
		return "", fmt.Errorf("image %d has no downloadable URL", img.ID)
	}

	data, err := s.fetcher.Fetch(ctx, srcURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image %d: %w", img.ID, err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create downloads directory: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("pixabay-%d%s", img.ID, extensionFor(srcURL)))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	s.Add(img)
	s.logger.Info("image downloaded", "id", img.ID, "path", path)
	return path, nil
}

func extensionFor(srcURL string) string {
	ext := filepath.Ext(srcURL)
	if ext == "" || len(ext) > 5 {
		return ".jpg"
	}
	return ext
}

// load re-reads the persisted log.
func (s *DownloadsService) load() []domain.DownloadRecord {
	var records []domain.DownloadRecord
	s.storage.Get(store.KeyDownloads, &records)
	return records
}
