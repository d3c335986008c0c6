// Package mirror maintains the best-effort remote copy of the ledger on
// a spreadsheet backend: one row per transaction plus one summary row
// per user-day. Every operation here can fail without taking the
// user-facing flow down; the facade converts errors into degraded-mode
// results.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catatan/internal/core"
	"catatan/internal/sheets"

	"github.com/shopspring/decimal"
)

// ErrUnavailable marks mirror degradation: the backend was never
// connected or cannot be reached. Callers must distinguish it from a
// present-but-empty mirror.
var ErrUnavailable = errors.New("mirror unavailable")

type Mirror interface {
	// Available reports whether a live backend is behind this mirror.
	Available() bool

	// SheetURL is the browser link to the backing spreadsheet, empty
	// when absent.
	SheetURL() string

	// AppendTransaction writes one expense row carrying the post-write
	// day total, then brings the user's daily summary row up to date.
	AppendTransaction(ctx context.Context, userID, username string, amount decimal.Decimal, description string) error

	// AppendRemoteRow appends a pre-built row as-is. Used by the export
	// path, which supplies historical timestamps.
	AppendRemoteRow(ctx context.Context, row RemoteRow) error

	// DailyTotal sums the amounts of all expense rows matching the
	// exact (date, userID) pair. Full scan, no index.
	DailyTotal(ctx context.Context, userID, date string) (decimal.Decimal, error)

	// UpdateDailySummary recomputes total and count for (userID, date)
	// and updates the matching summary row in place, appending it if
	// absent. Idempotent under sequential re-invocation.
	UpdateDailySummary(ctx context.Context, userID, username, date string) error

	// QueryRange returns the user's expense rows dated within the last
	// daysBack calendar days (today inclusive), in insertion order. An
	// empty result means "mirror present but no data"; unreachability
	// is reported as an error instead.
	QueryRange(ctx context.Context, userID string, daysBack int) ([]core.TransactionView, error)
}

// Connect establishes the mirror session and makes sure both row
// collections exist with their fixed headers. On failure the caller
// should hold Absent() for the rest of the process lifetime; there is
// no retry loop.
func Connect(ctx context.Context, rows sheets.RowStore, sheetURL string) (Mirror, error) {
	if rows == nil {
		return nil, errors.New("nil row store")
	}
	if err := rows.EnsureSheet(ctx, ExpensesSheet, expenseHeaders); err != nil {
		return nil, fmt.Errorf("ensure %s sheet: %w", ExpensesSheet, err)
	}
	if err := rows.EnsureSheet(ctx, SummarySheet, summaryHeaders); err != nil {
		return nil, fmt.Errorf("ensure %s sheet: %w", SummarySheet, err)
	}
	return &sheetMirror{rows: rows, url: sheetURL, now: time.Now}, nil
}

// Absent returns the mirror value used when no backend is configured or
// Connect failed: every operation reports ErrUnavailable.
func Absent() Mirror {
	return absent{}
}

type absent struct{}

func (absent) Available() bool  { return false }
func (absent) SheetURL() string { return "" }

func (absent) AppendTransaction(context.Context, string, string, decimal.Decimal, string) error {
	return ErrUnavailable
}

func (absent) AppendRemoteRow(context.Context, RemoteRow) error {
	return ErrUnavailable
}

func (absent) DailyTotal(context.Context, string, string) (decimal.Decimal, error) {
	return decimal.Zero, ErrUnavailable
}

func (absent) UpdateDailySummary(context.Context, string, string, string) error {
	return ErrUnavailable
}

func (absent) QueryRange(context.Context, string, int) ([]core.TransactionView, error) {
	return nil, ErrUnavailable
}

type sheetMirror struct {
	rows sheets.RowStore
	url  string
	now  func() time.Time
}

func (m *sheetMirror) Available() bool  { return true }
func (m *sheetMirror) SheetURL() string { return m.url }

func (m *sheetMirror) AppendTransaction(ctx context.Context, userID, username string, amount decimal.Decimal, description string) error {
	now := m.now()
	date := core.DayKey(now)

	preTotal, err := m.DailyTotal(ctx, userID, date)
	if err != nil {
		return fmt.Errorf("pre-write day total: %w", err)
	}

	if username == "" {
		username = "Unknown"
	}
	row := RemoteRow{
		Date:        date,
		Time:        core.ClockTime(now),
		UserID:      userID,
		Username:    username,
		Amount:      amount,
		Description: description,
		DayTotal:    preTotal.Add(amount),
	}
	if err := m.rows.AppendRow(ctx, ExpensesSheet, row.cells()); err != nil {
		return fmt.Errorf("append expense row: %w", err)
	}

	if err := m.UpdateDailySummary(ctx, userID, username, date); err != nil {
		return fmt.Errorf("update daily summary: %w", err)
	}
	return nil
}

func (m *sheetMirror) AppendRemoteRow(ctx context.Context, row RemoteRow) error {
	if err := m.rows.AppendRow(ctx, ExpensesSheet, row.cells()); err != nil {
		return fmt.Errorf("append expense row: %w", err)
	}
	return nil
}

func (m *sheetMirror) DailyTotal(ctx context.Context, userID, date string) (decimal.Decimal, error) {
	rows, err := m.rows.ListRows(ctx, ExpensesSheet)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list expense rows: %w", err)
	}
	total := decimal.Zero
	for _, r := range rows {
		rr, ok := remoteRowFrom(r)
		if !ok {
			continue
		}
		if rr.Date == date && rr.UserID == userID {
			total = total.Add(rr.Amount)
		}
	}
	return total, nil
}

func (m *sheetMirror) UpdateDailySummary(ctx context.Context, userID, username, date string) error {
	expenses, err := m.rows.ListRows(ctx, ExpensesSheet)
	if err != nil {
		return fmt.Errorf("list expense rows: %w", err)
	}
	total := decimal.Zero
	count := 0
	for _, r := range expenses {
		rr, ok := remoteRowFrom(r)
		if !ok {
			continue
		}
		if rr.Date == date && rr.UserID == userID {
			total = total.Add(rr.Amount)
			count++
		}
	}

	summary := DailySummaryRow{
		Date:     date,
		UserID:   userID,
		Username: username,
		Total:    total,
		Count:    count,
	}

	existing, err := m.rows.ListRows(ctx, SummarySheet)
	if err != nil {
		return fmt.Errorf("list summary rows: %w", err)
	}
	for _, r := range existing {
		if r.Get(colDate) == date && r.Get(colUserID) == userID {
			if err := m.rows.UpdateRow(ctx, SummarySheet, r.Index, summary.cells()); err != nil {
				return fmt.Errorf("update summary row: %w", err)
			}
			return nil
		}
	}
	if err := m.rows.AppendRow(ctx, SummarySheet, summary.cells()); err != nil {
		return fmt.Errorf("append summary row: %w", err)
	}
	return nil
}

func (m *sheetMirror) QueryRange(ctx context.Context, userID string, daysBack int) ([]core.TransactionView, error) {
	if daysBack < 1 {
		daysBack = 1
	}
	rows, err := m.rows.ListRows(ctx, ExpensesSheet)
	if err != nil {
		return nil, fmt.Errorf("list expense rows: %w", err)
	}
	// ISO date keys compare lexically, so the window check is a plain
	// string comparison against the cutoff day.
	cutoff := core.DayKey(m.now().AddDate(0, 0, -(daysBack - 1)))
	var out []core.TransactionView
	for _, r := range rows {
		rr, ok := remoteRowFrom(r)
		if !ok || rr.UserID != userID {
			continue
		}
		if rr.Date < cutoff {
			continue
		}
		out = append(out, core.TransactionView{
			Date:        rr.Date,
			Time:        rr.Time,
			Amount:      rr.Amount,
			Description: rr.Description,
		})
	}
	return out, nil
}
