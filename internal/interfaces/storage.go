package interfaces

import (
	"context"

	"github.com/ternarybob/conflux/internal/models"
)

// SnapshotStorage persists convergence snapshots from scheduled watchlist runs
type SnapshotStorage interface {
	// SaveSnapshot stores one snapshot
	SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error

	// ListSnapshots returns snapshots for a ticker, newest first, up to limit
	ListSnapshots(ctx context.Context, ticker string, limit int) ([]models.Snapshot, error)

	// LatestSnapshot returns the most recent snapshot for a ticker
	LatestSnapshot(ctx context.Context, ticker string) (*models.Snapshot, error)
}

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	// KeyValueStorage returns the KeyValue storage interface
	KeyValueStorage() KeyValueStorage

	// SnapshotStorage returns the Snapshot storage interface
	SnapshotStorage() SnapshotStorage

	// Close closes the database connection
	Close() error
}
