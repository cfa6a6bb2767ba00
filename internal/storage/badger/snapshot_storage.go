package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/conflux/internal/interfaces"
	"github.com/ternarybob/conflux/internal/models"
)

// SnapshotStorage implements the SnapshotStorage interface for Badger
type SnapshotStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSnapshotStorage creates a new SnapshotStorage instance
func NewSnapshotStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SnapshotStorage {
	return &SnapshotStorage{
		db:     db,
		logger: logger,
	}
}

// SaveSnapshot stores one snapshot. A snapshot for the same ticker and date
// replaces the earlier one so re-runs stay idempotent.
func (s *SnapshotStorage) SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = snapshot.Ticker + ":" + snapshot.Date
	}

	if err := s.db.Store().Upsert(snapshot.ID, snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.logger.Debug().
		Str("ticker", snapshot.Ticker).
		Str("date", snapshot.Date).
		Msg("Saved convergence snapshot")
	return nil
}

// ListSnapshots returns snapshots for a ticker, newest first, up to limit
func (s *SnapshotStorage) ListSnapshots(ctx context.Context, ticker string, limit int) ([]models.Snapshot, error) {
	var snapshots []models.Snapshot
	query := badgerhold.Where("Ticker").Eq(ticker).SortBy("Date").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := s.db.Store().Find(&snapshots, query); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

// LatestSnapshot returns the most recent snapshot for a ticker
func (s *SnapshotStorage) LatestSnapshot(ctx context.Context, ticker string) (*models.Snapshot, error) {
	snapshots, err := s.ListSnapshots(ctx, ticker, 1)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, badgerhold.ErrNotFound
	}
	return &snapshots[0], nil
}
