package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	apperrors "github.com/codexplain/codexplain-go/internal/errors"
	"github.com/codexplain/codexplain-go/internal/models"
)

// SQLiteStore implements HistoryStore on a local SQLite database
type SQLiteStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) the history database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("connect to sqlite: %w", err)
	}

	// WAL for better concurrency between CLI invocations
	db.Exec("PRAGMA journal_mode = WAL")

	store := &SQLiteStore{
		db:     db,
		logger: slog.Default().With("component", "history"),
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS explanations (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL,
		language TEXT NOT NULL,
		model_used TEXT,
		degraded INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_explanations_created_at
		ON explanations(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveEntry records one explanation run
func (s *SQLiteStore) SaveEntry(ctx context.Context, entry *models.HistoryEntry) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO explanations (id, code, language, model_used, degraded, created_at)
		VALUES (:id, :code, :language, :model_used, :degraded, :created_at)`,
		entry)
	if err != nil {
		return apperrors.StorageError(err, "save history entry")
	}
	return nil
}

// GetEntry fetches one entry by id
func (s *SQLiteStore) GetEntry(ctx context.Context, id string) (*models.HistoryEntry, error) {
	var entry models.HistoryEntry
	err := s.db.GetContext(ctx, &entry,
		`SELECT id, code, language, model_used, degraded, created_at
		 FROM explanations WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get history entry: %w", err)
	}
	return &entry, nil
}

// ListEntries returns the most recent entries, newest first
func (s *SQLiteStore) ListEntries(ctx context.Context, limit int) ([]*models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []*models.HistoryEntry
	err := s.db.SelectContext(ctx, &entries,
		`SELECT id, code, language, model_used, degraded, created_at
		 FROM explanations ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list history entries: %w", err)
	}
	return entries, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
