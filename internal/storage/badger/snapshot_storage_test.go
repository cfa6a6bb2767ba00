package badger

import (
	"context"
	"testing"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/conflux/internal/models"
)

func TestSnapshotStorageSaveAndList(t *testing.T) {
	db := openTestDB(t)
	storage := NewSnapshotStorage(db, arbor.NewLogger())
	ctx := context.Background()

	dates := []string{"2024-01-02", "2024-01-03", "2024-01-04"}
	for _, date := range dates {
		snapshot := &models.Snapshot{
			Ticker:      "AAPL",
			Date:        date,
			Composite:   3.5,
			Label:       "Moderate Bullish Lean",
			Confidence:  "moderate",
			SignalCount: 6,
			CreatedAt:   time.Now(),
		}
		if err := storage.SaveSnapshot(ctx, snapshot); err != nil {
			t.Fatalf("SaveSnapshot(%s): %v", date, err)
		}
	}

	// Another ticker should not appear in AAPL's list
	other := &models.Snapshot{Ticker: "MSFT", Date: "2024-01-03", CreatedAt: time.Now()}
	if err := storage.SaveSnapshot(ctx, other); err != nil {
		t.Fatalf("SaveSnapshot other: %v", err)
	}

	snapshots, err := storage.ListSnapshots(ctx, "AAPL", 0)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snapshots) != 3 {
		t.Fatalf("ListSnapshots returned %d snapshots, want 3", len(snapshots))
	}
	if snapshots[0].Date != "2024-01-04" {
		t.Errorf("first snapshot date = %s, want newest first", snapshots[0].Date)
	}

	limited, err := storage.ListSnapshots(ctx, "AAPL", 2)
	if err != nil {
		t.Fatalf("ListSnapshots limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited list returned %d snapshots, want 2", len(limited))
	}
}

func TestSnapshotStorageReplacesSameDate(t *testing.T) {
	db := openTestDB(t)
	storage := NewSnapshotStorage(db, arbor.NewLogger())
	ctx := context.Background()

	first := &models.Snapshot{Ticker: "QQQ", Date: "2024-02-01", Composite: 1.0, CreatedAt: time.Now()}
	if err := storage.SaveSnapshot(ctx, first); err != nil {
		t.Fatal(err)
	}
	second := &models.Snapshot{Ticker: "QQQ", Date: "2024-02-01", Composite: 2.5, CreatedAt: time.Now()}
	if err := storage.SaveSnapshot(ctx, second); err != nil {
		t.Fatal(err)
	}

	snapshots, err := storage.ListSnapshots(ctx, "QQQ", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("got %d snapshots for same date, want 1", len(snapshots))
	}
	if snapshots[0].Composite != 2.5 {
		t.Errorf("Composite = %v, want the replacement value 2.5", snapshots[0].Composite)
	}
}

func TestSnapshotStorageLatest(t *testing.T) {
	db := openTestDB(t)
	storage := NewSnapshotStorage(db, arbor.NewLogger())
	ctx := context.Background()

	if _, err := storage.LatestSnapshot(ctx, "AAPL"); err == nil {
		t.Error("expected error for ticker with no snapshots")
	}

	for _, date := range []string{"2024-03-01", "2024-03-04"} {
		snapshot := &models.Snapshot{Ticker: "AAPL", Date: date, CreatedAt: time.Now()}
		if err := storage.SaveSnapshot(ctx, snapshot); err != nil {
			t.Fatal(err)
		}
	}

	latest, err := storage.LatestSnapshot(ctx, "AAPL")
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if latest.Date != "2024-03-04" {
		t.Errorf("LatestSnapshot date = %s, want 2024-03-04", latest.Date)
	}
}
