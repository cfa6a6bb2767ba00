package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/conflux/internal/interfaces"
	"github.com/ternarybob/conflux/internal/models"
)

// fakeAnalyzer returns a canned result, failing for tickers in failFor
type fakeAnalyzer struct {
	calls   []string
	failFor map[string]bool
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, ticker string) (*models.AnalysisResult, error) {
	f.calls = append(f.calls, ticker)
	if f.failFor[ticker] {
		return nil, errors.New("no data")
	}
	return &models.AnalysisResult{
		Ticker: ticker,
		Convergence: models.ConvergenceResult{
			CompositeScore: 2.5,
			Label:          "Moderate Bullish Lean",
			Confidence:     "moderate",
			SignalCount:    5,
		},
	}, nil
}

// memSnapshots collects saved snapshots in memory
type memSnapshots struct {
	saved []models.Snapshot
}

func (m *memSnapshots) SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	m.saved = append(m.saved, *snapshot)
	return nil
}

func (m *memSnapshots) ListSnapshots(ctx context.Context, ticker string, limit int) ([]models.Snapshot, error) {
	return nil, nil
}

func (m *memSnapshots) LatestSnapshot(ctx context.Context, ticker string) (*models.Snapshot, error) {
	return nil, errors.New("not found")
}

// memKV is a map-backed KeyValueStorage
type memKV struct {
	values map[string]string
}

func (m *memKV) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", interfaces.ErrKeyNotFound
	}
	return v, nil
}

func (m *memKV) GetPair(ctx context.Context, key string) (*interfaces.KeyValuePair, error) {
	v, err := m.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return &interfaces.KeyValuePair{Key: key, Value: v}, nil
}

func (m *memKV) Set(ctx context.Context, key, value, description string) error {
	m.values[key] = value
	return nil
}

func (m *memKV) Upsert(ctx context.Context, key, value, description string) (bool, error) {
	_, existed := m.values[key]
	m.values[key] = value
	return !existed, nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func (m *memKV) List(ctx context.Context) ([]interfaces.KeyValuePair, error) { return nil, nil }

func (m *memKV) GetAll(ctx context.Context) (map[string]string, error) { return m.values, nil }

func TestRunSnapshot(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	snapshots := &memSnapshots{}
	kv := &memKV{values: map[string]string{"watchlist": "aapl, MSFT,QQQ"}}
	svc := NewService(analyzer, snapshots, kv, arbor.NewLogger())

	svc.RunSnapshot(context.Background())

	assert.Equal(t, []string{"AAPL", "MSFT", "QQQ"}, analyzer.calls)
	require.Len(t, snapshots.saved, 3)
	assert.Equal(t, "AAPL", snapshots.saved[0].Ticker)
	assert.Equal(t, 2.5, snapshots.saved[0].Composite)
	assert.Equal(t, "Moderate Bullish Lean", snapshots.saved[0].Label)
	assert.NotEmpty(t, snapshots.saved[0].Date)
}

func TestRunSnapshotSkipsFailedTickers(t *testing.T) {
	analyzer := &fakeAnalyzer{failFor: map[string]bool{"MSFT": true}}
	snapshots := &memSnapshots{}
	kv := &memKV{values: map[string]string{"watchlist": "AAPL,MSFT"}}
	svc := NewService(analyzer, snapshots, kv, arbor.NewLogger())

	svc.RunSnapshot(context.Background())

	require.Len(t, snapshots.saved, 1)
	assert.Equal(t, "AAPL", snapshots.saved[0].Ticker)
}

func TestRunSnapshotEmptyWatchlist(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	snapshots := &memSnapshots{}
	kv := &memKV{values: map[string]string{}}
	svc := NewService(analyzer, snapshots, kv, arbor.NewLogger())

	svc.RunSnapshot(context.Background())

	assert.Empty(t, analyzer.calls)
	assert.Empty(t, snapshots.saved)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	svc := NewService(&fakeAnalyzer{}, &memSnapshots{}, &memKV{values: map[string]string{}}, arbor.NewLogger())

	err := svc.Start("every day at noon")
	assert.Error(t, err)
}

func TestStartAndStop(t *testing.T) {
	svc := NewService(&fakeAnalyzer{}, &memSnapshots{}, &memKV{values: map[string]string{}}, arbor.NewLogger())

	require.NoError(t, svc.Start("0 30 16 * * *"))
	assert.Error(t, svc.Start("0 30 16 * * *"), "second Start should fail while running")
	svc.Stop()
}
