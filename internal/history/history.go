// Package history persists a log of embed and extract operations so the
// service can report what it has processed. Entries are keyed by ksuid,
// which sorts chronologically, so a reverse scan yields the most recent
// operations first.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// Entry is one recorded operation.
type Entry struct {
	ID           string    `json:"id"`
	Op           string    `json:"op"` // "embed" or "extract"
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Mode         string    `json:"mode"`
	MessageChars int       `json:"message_chars"`
	Truncated    bool      `json:"truncated"`
	Found        bool      `json:"found"`
	CreatedAt    time.Time `json:"created_at"`
}

// Log is a pebble-backed operation log.
type Log struct {
	db *pebble.DB
}

// Open opens (or creates) the log database at path.
func Open(path string) (*Log, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	return &Log{db: db}, nil
}

// Append assigns the entry an ID and timestamp and persists it. The
// assigned ID is returned.
func (l *Log) Append(e Entry) (string, error) {
	id := ksuid.New()
	e.ID = id.String()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("failed to marshal history entry: %w", err)
	}
	if err := l.db.Set(id.Bytes(), data, pebble.NoSync); err != nil {
		return "", fmt.Errorf("failed to write history entry: %w", err)
	}
	return e.ID, nil
}

// Recent returns up to limit entries, newest first.
func (l *Log) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	iter, err := l.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open history iterator: %w", err)
	}
	defer iter.Close()

	entries := make([]Entry, 0, limit)
	for ok := iter.Last(); ok && len(entries) < limit; ok = iter.Prev() {
		var e Entry
		if err := json.Unmarshal(iter.Value(), &e); err != nil {
			return nil, fmt.Errorf("failed to decode history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("history iteration failed: %w", err)
	}
	return entries, nil
}

// Close releases the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}
