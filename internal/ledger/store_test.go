package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "expenses.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestOpenBootstrapsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "expenses.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected backing file to exist: %v", err)
	}
	doc, err := s.ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if doc.Version != SchemaVersion || len(doc.Users) != 0 {
		t.Fatalf("unexpected bootstrap document: %+v", doc)
	}

	// Opening again must be a no-op, not a reset.
	if _, err := Open(path); err != nil {
		t.Fatalf("reopen: %v", err)
	}
}

func TestDailyTotalIsAdditive(t *testing.T) {
	s := newStore(t)
	ts := time.Date(2025, 3, 14, 12, 0, 0, 0, time.Local)

	amounts := []int64{50000, 25000, 12500}
	var want int64
	for _, a := range amounts {
		if err := s.Record("U1", decimal.NewFromInt(a), "item", ts); err != nil {
			t.Fatalf("record %d: %v", a, err)
		}
		want += a
	}

	total, err := s.DailyTotal("U1", "2025-03-14")
	if err != nil {
		t.Fatalf("daily total: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(want)) {
		t.Fatalf("expected %d, got %s", want, total)
	}

	// Other users and other days stay at zero.
	for _, key := range [][2]string{{"U2", "2025-03-14"}, {"U1", "2025-03-15"}} {
		got, err := s.DailyTotal(key[0], key[1])
		if err != nil {
			t.Fatalf("daily total %v: %v", key, err)
		}
		if !got.IsZero() {
			t.Fatalf("expected zero for %v, got %s", key, got)
		}
	}
}

func TestRecordKeysByTimestampDate(t *testing.T) {
	s := newStore(t)
	ts := time.Date(2025, 3, 14, 23, 59, 0, 0, time.Local)
	if err := s.Record("U1", decimal.NewFromInt(100), "larut malam", ts); err != nil {
		t.Fatalf("record: %v", err)
	}
	entries, err := s.EntriesOn("U1", "2025-03-14")
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry under the timestamp's date, got %d", len(entries))
	}
}

func TestRoundTripPreservesOrderAndPrecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	ts := time.Date(2025, 3, 14, 8, 0, 0, 0, time.Local)
	first, _ := decimal.NewFromString("0.10")
	second, _ := decimal.NewFromString("999.99")
	if err := s.Record("U1", first, "pertama", ts); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Record("U1", second, "kedua", ts.Add(time.Hour)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Record("U1", decimal.NewFromInt(5), "besok", ts.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("record: %v", err)
	}

	// A fresh store over the same file must see an identical mapping.
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	doc, err := reopened.ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}

	day := doc.Users["U1"]["2025-03-14"]
	if len(day) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(day))
	}
	if day[0].Description != "pertama" || day[1].Description != "kedua" {
		t.Fatalf("insertion order not preserved: %+v", day)
	}
	if day[0].Amount.String() != "0.10" {
		t.Fatalf("precision lost: got %q", day[0].Amount.String())
	}
	if !day[1].Amount.Equal(second) {
		t.Fatalf("amount changed: got %s", day[1].Amount)
	}
	if len(doc.Users["U1"]["2025-03-15"]) != 1 {
		t.Fatalf("missing next-day entry")
	}

	days, err := reopened.UserDays("U1")
	if err != nil {
		t.Fatalf("user days: %v", err)
	}
	if len(days) != 2 || days[0] != "2025-03-14" || days[1] != "2025-03-15" {
		t.Fatalf("unexpected days: %v", days)
	}
}

func TestDocumentIsPrettyPrintedWithVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Record("U1", decimal.NewFromInt(100), "x", time.Now()); err != nil {
		t.Fatalf("record: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"users\"") {
		t.Fatalf("expected indented document, got: %s", data)
	}
	if !strings.Contains(string(data), "\"version\": 1") {
		t.Fatalf("expected schema version field, got: %s", data)
	}
}

func TestEmptyHistoryIsNotAnError(t *testing.T) {
	s := newStore(t)
	entries, err := s.EntriesOn("nobody", "2025-01-01")
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if entries != nil {
		t.Fatalf("expected nil entries, got %v", entries)
	}
	days, err := s.UserDays("nobody")
	if err != nil {
		t.Fatalf("user days: %v", err)
	}
	if len(days) != 0 {
		t.Fatalf("expected no days, got %v", days)
	}
}
