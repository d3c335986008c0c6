// Package ledger implements the local expense store: the full state is
// one JSON document on disk, read and written whole on every operation.
// Volumes are small enough that this stays cheap; the document is
// pretty-printed so it can be inspected by hand.
package ledger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"catatan/internal/core"

	"github.com/shopspring/decimal"
)

// SchemaVersion is written into every persisted document.
const SchemaVersion = 1

// Document is the persisted form of the whole store: user id to date
// key to the transactions of that day, in insertion order.
type Document struct {
	Version int                                       `json:"version"`
	Users   map[string]map[string][]core.Transaction `json:"users"`
}

// Store serializes all read-modify-write cycles behind one mutex, so
// two concurrent writes for the same user cannot clobber each other.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open prepares the store at path. A missing file is bootstrapped with
// an empty document, so first runs and restarts behave the same.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	s := &Store{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.write(emptyDocument()); err != nil {
			return nil, fmt.Errorf("bootstrap ledger file: %w", err)
		}
		slog.Info("Created empty ledger file", "path", path)
	}
	return s, nil
}

func emptyDocument() Document {
	return Document{Version: SchemaVersion, Users: map[string]map[string][]core.Transaction{}}
}

// Record appends a transaction under userID and the date of ts, creating
// intermediate maps as needed, and re-serializes the whole store. A
// storage failure is fatal to the operation and is not retried.
func (s *Store) Record(userID string, amount decimal.Decimal, description string, ts time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}

	day := core.DayKey(ts)
	if doc.Users[userID] == nil {
		doc.Users[userID] = map[string][]core.Transaction{}
	}
	doc.Users[userID][day] = append(doc.Users[userID][day], core.Transaction{
		Amount:      amount,
		Description: description,
		Timestamp:   ts,
	})

	if err := s.write(doc); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}

	slog.Debug("Transaction recorded locally",
		"user_id", userID,
		"date", day,
		"amount", amount.String())
	return nil
}

// ReadAll returns the full current state. A missing backing file yields
// an empty store.
func (s *Store) ReadAll() (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// DailyTotal sums the amounts stored under userID on date; zero if the
// user or the day is absent.
func (s *Store) DailyTotal(userID, date string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return decimal.Zero, fmt.Errorf("read ledger: %w", err)
	}
	total := decimal.Zero
	for _, tx := range doc.Users[userID][date] {
		total = total.Add(tx.Amount)
	}
	return total, nil
}

// EntriesOn returns the transactions stored under userID on date, in
// insertion order. Nil when there are none.
func (s *Store) EntriesOn(userID, date string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	entries := doc.Users[userID][date]
	if len(entries) == 0 {
		return nil, nil
	}
	out := make([]core.Transaction, len(entries))
	copy(out, entries)
	return out, nil
}

// UserDays returns the date keys stored for userID, ascending. Empty
// when the user has no history.
func (s *Store) UserDays(userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	days := make([]string, 0, len(doc.Users[userID]))
	for day := range doc.Users[userID] {
		days = append(days, day)
	}
	sort.Strings(days)
	return days, nil
}

func (s *Store) read() (Document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		doc := emptyDocument()
		if werr := s.write(doc); werr != nil {
			return Document{}, fmt.Errorf("bootstrap ledger file: %w", werr)
		}
		return doc, nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("read ledger file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode ledger file: %w", err)
	}
	if doc.Users == nil {
		doc.Users = map[string]map[string][]core.Transaction{}
	}
	if doc.Version == 0 {
		doc.Version = SchemaVersion
	}
	return doc, nil
}

func (s *Store) write(doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write ledger file: %w", err)
	}
	return nil
}
