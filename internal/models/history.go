package models

// History entry sources.
const (
	// HistorySourceBackfill marks entries reconstructed from price history.
	HistorySourceBackfill = "backfill"
	// HistorySourceLive marks entries logged from a full analysis run.
	HistorySourceLive = "live"
)

// HistoryEntry is one day of logged or backfilled scores for a ticker.
// Backfilled entries carry only the signals computable from prices alone and
// have no convergence label.
type HistoryEntry struct {
	Date        string             `json:"date"` // YYYY-MM-DD
	Scores      map[string]float64 `json:"scores"`
	Composite   float64            `json:"composite"`
	Label       *string            `json:"label"`
	SignalCount int                `json:"signal_count"`
	Source      string             `json:"source"`
}
