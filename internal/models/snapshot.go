package models

import "time"

// Snapshot is a persisted convergence result from a scheduled watchlist run.
type Snapshot struct {
	ID          string    `json:"id" badgerhold:"key"`
	Ticker      string    `json:"ticker" badgerhold:"index"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Composite   float64   `json:"composite"`
	Label       string    `json:"label"`
	Confidence  string    `json:"confidence"`
	SignalCount int       `json:"signal_count"`
	CreatedAt   time.Time `json:"created_at"`
}
