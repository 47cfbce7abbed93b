package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var bucketResponses = []byte("responses")

// Store caches remote model responses on disk so repeated runs over the
// same code do not spend quota. Entries expire after the configured TTL.
type Store struct {
	db     *bbolt.DB
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

type entry struct {
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// Open opens (or creates) the cache database in dir.
func Open(dir string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := bbolt.Open(filepath.Join(dir, "responses.db"), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketResponses)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache bucket: %w", err)
	}

	return &Store{
		db:     db,
		ttl:    ttl,
		logger: slog.Default().With("component", "cache"),
		now:    time.Now,
	}, nil
}

// Key derives the cache key for an operation over a piece of code.
func Key(op, language, code string) string {
	sum := sha256.Sum256([]byte(op + "|" + language + "|" + code))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached response for key, or "" when absent or expired.
// Cache failures are logged, never surfaced: a broken cache degrades to a
// cache miss.
func (s *Store) Get(key string) string {
	var e entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketResponses).Get([]byte(key))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &e)
	})
	if err != nil {
		s.logger.Warn("cache read failed", "error", err)
		return ""
	}
	if e.Response == "" {
		return ""
	}
	if s.ttl > 0 && s.now().Sub(e.CreatedAt) > s.ttl {
		return ""
	}
	return e.Response
}

// Put stores a response under key.
func (s *Store) Put(key, response string) {
	e := entry{Response: response, CreatedAt: s.now()}
	data, err := json.Marshal(e)
	if err != nil {
		s.logger.Warn("cache encode failed", "error", err)
		return
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketResponses).Put([]byte(key), data)
	})
	if err != nil {
		s.logger.Warn("cache write failed", "error", err)
	}
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
