package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketState = []byte("state")

// Keys for the independent state slices. Each is read and written on its
// own; no cross-key transaction exists or is needed.
const (
	KeyFavorites  = "favorites"
	KeyLastSearch = "last_search"
	KeyDownloads  = "downloads"
	KeyProfile    = "profile"
)

// Store is a BoltDB-backed key-value adapter with JSON encoding and an
// in-memory overlay cache. The overlay is written before the database on
// every Set, so a failing disk write still leaves the new value visible
// for the rest of the session.
type Store struct {
	db     *bolt.DB
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string][]byte
}

// Open opens (or creates) the state database under dataDir. An empty
// dataDir yields a memory-only store with no persistence.
func Open(dataDir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dataDir == "" {
		// Memory-only mode (no persistence)
		return &Store{cache: make(map[string][]byte), logger: logger}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "galleria.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte), logger: logger}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get decodes the value at key into dest. Any failure (missing key,
// corrupt value, storage error) reports absence; corruption is logged.
func (s *Store) Get(key string, dest interface{}) bool {
	// Check memory overlay first
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		if err := json.Unmarshal(data, dest); err != nil {
			s.logger.Warn("corrupt cached value", "key", key, "error", err)
			return false
		}
		return true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketState)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("storage read failed", "key", key, "error", err)
		return false
	}
	if data == nil {
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warn("corrupt stored value", "key", key, "error", err)
		return false
	}

	// Promote to memory overlay
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return true
}

// Set stores the JSON encoding of value at key. Failures are logged and
// otherwise swallowed; the memory overlay always reflects the new value.
func (s *Store) Set(key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("storage encode failed", "key", key, "error", err)
		return
	}

	// Update memory overlay first so failed writes still take effect
	// for the rest of the session.
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketState)
		if b == nil {
			return fmt.Errorf("missing bucket %q", bucketState)
		}
		return b.Put([]byte(key), data)
	})
	if err != nil {
		s.logger.Warn("storage write failed", "key", key, "error", err)
	}
}

// Remove deletes the value at key. Failures are logged and swallowed.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketState)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
	if err != nil {
		s.logger.Warn("storage delete failed", "key", key, "error", err)
	}
}
