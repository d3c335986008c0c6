// Package memory is an in-memory RowStore used by tests and by
// mirror-less development runs. SetFailing simulates an unreachable
// spreadsheet backend.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"catatan/internal/sheets"
)

var errDown = errors.New("row store unavailable")

type sheet struct {
	headers []string
	rows    []map[string]string
}

type Store struct {
	mu      sync.Mutex
	sheets  map[string]*sheet
	failing bool
}

func New() *Store {
	return &Store{sheets: map[string]*sheet{}}
}

var _ sheets.RowStore = (*Store)(nil)

// SetFailing toggles hard failure of every operation.
func (s *Store) SetFailing(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = v
}

func (s *Store) EnsureSheet(_ context.Context, title string, headers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errDown
	}
	if _, ok := s.sheets[title]; ok {
		return nil
	}
	s.sheets[title] = &sheet{headers: append([]string(nil), headers...)}
	return nil
}

func (s *Store) AppendRow(_ context.Context, title string, cells map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errDown
	}
	sh, ok := s.sheets[title]
	if !ok {
		return fmt.Errorf("no such sheet: %s", title)
	}
	sh.rows = append(sh.rows, copyCells(cells))
	return nil
}

func (s *Store) ListRows(_ context.Context, title string) ([]sheets.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return nil, errDown
	}
	sh, ok := s.sheets[title]
	if !ok {
		return nil, fmt.Errorf("no such sheet: %s", title)
	}
	out := make([]sheets.Row, len(sh.rows))
	for i, cells := range sh.rows {
		// Data rows start at spreadsheet row 2, below the header.
		out[i] = sheets.Row{Index: i + 2, Cells: copyCells(cells)}
	}
	return out, nil
}

func (s *Store) UpdateRow(_ context.Context, title string, index int, cells map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errDown
	}
	sh, ok := s.sheets[title]
	if !ok {
		return fmt.Errorf("no such sheet: %s", title)
	}
	pos := index - 2
	if pos < 0 || pos >= len(sh.rows) {
		return fmt.Errorf("row index out of range: %d", index)
	}
	for k, v := range cells {
		sh.rows[pos][k] = v
	}
	return nil
}

func copyCells(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
