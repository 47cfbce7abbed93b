package storage

import (
	"context"
	"errors"

	"github.com/codexplain/codexplain-go/internal/models"
)

// ErrNotFound is returned when a history entry does not exist
var ErrNotFound = errors.New("not found")

// HistoryStore records past explanation runs
type HistoryStore interface {
	SaveEntry(ctx context.Context, entry *models.HistoryEntry) error
	GetEntry(ctx context.Context, id string) (*models.HistoryEntry, error)
	ListEntries(ctx context.Context, limit int) ([]*models.HistoryEntry, error)
	Close() error
}
