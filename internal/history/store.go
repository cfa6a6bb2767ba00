// Package history persists daily score snapshots per ticker and reconciles
// them with causally backfilled history.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/conflux/internal/models"
)

// maxEntries caps each ticker's log at roughly one trading year.
const maxEntries = 365

// Store is a file-backed score history log, one JSON file per ticker.
// Writes to the same ticker are serialized; different tickers do not contend.
type Store struct {
	dir    string
	logger arbor.ILogger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore creates a history store rooted at dir
func NewStore(dir string, logger arbor.ILogger) *Store {
	return &Store{
		dir:    dir,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *Store) tickerLock(ticker string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[ticker]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[ticker] = lock
	}
	return lock
}

func (s *Store) filePath(ticker string) string {
	return filepath.Join(s.dir, strings.ToUpper(ticker)+".json")
}

// Load reads the logged entries for a ticker. A missing file is an empty
// history, not an error.
func (s *Store) Load(ticker string) ([]models.HistoryEntry, error) {
	lock := s.tickerLock(strings.ToUpper(ticker))
	lock.Lock()
	defer lock.Unlock()

	return s.load(ticker)
}

func (s *Store) load(ticker string) ([]models.HistoryEntry, error) {
	data, err := os.ReadFile(s.filePath(ticker))
	if err != nil {
		if os.IsNotExist(err) {
			return []models.HistoryEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read history for %s: %w", ticker, err)
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history for %s: %w", ticker, err)
	}
	return entries, nil
}

// Append records an entry, replacing any existing entry for the same date.
// Entries stay sorted by date and the oldest are pruned past the cap.
func (s *Store) Append(ticker string, entry models.HistoryEntry) error {
	ticker = strings.ToUpper(ticker)
	lock := s.tickerLock(ticker)
	lock.Lock()
	defer lock.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	entries, err := s.load(ticker)
	if err != nil {
		return err
	}

	replaced := false
	for i := range entries {
		if entries[i].Date == entry.Date {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})

	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history for %s: %w", ticker, err)
	}
	if err := os.WriteFile(s.filePath(ticker), data, 0o644); err != nil {
		return fmt.Errorf("failed to write history for %s: %w", ticker, err)
	}

	s.logger.Debug().
		Str("ticker", ticker).
		Str("date", entry.Date).
		Int("entries", len(entries)).
		Msg("History entry recorded")

	return nil
}

// Merge reconciles backfilled entries with the logged ones. Logged entries win
// on date collisions since they carry full signal coverage; the result is
// sorted by date ascending.
func Merge(backfill, logged []models.HistoryEntry) []models.HistoryEntry {
	byDate := make(map[string]models.HistoryEntry, len(backfill)+len(logged))
	for _, entry := range backfill {
		byDate[entry.Date] = entry
	}
	for _, entry := range logged {
		byDate[entry.Date] = entry
	}

	merged := make([]models.HistoryEntry, 0, len(byDate))
	for _, entry := range byDate {
		merged = append(merged, entry)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date < merged[j].Date
	})
	return merged
}
