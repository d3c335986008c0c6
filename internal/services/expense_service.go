// Package services wires the local ledger and the remote mirror behind
// the two surfaces the chat layer calls: the expense facade and the
// summary engine.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"catatan/internal/core"
	"catatan/internal/ledger"
	"catatan/internal/mirror"

	"github.com/shopspring/decimal"
)

// ExpenseService is the single write entry point. The local store write
// is unconditional and fatal on failure; the mirror write is
// best-effort and only degrades the result.
type ExpenseService struct {
	store  *ledger.Store
	mirror mirror.Mirror
	now    func() time.Time
}

func NewExpenseService(store *ledger.Store, m mirror.Mirror) *ExpenseService {
	if m == nil {
		m = mirror.Absent()
	}
	return &ExpenseService{store: store, mirror: m, now: time.Now}
}

// AddResult reports where the expense landed and the user's running
// total for the day of the write.
type AddResult struct {
	MirrorSaved bool
	DayTotal    decimal.Decimal
}

// MirrorAvailable reports whether the mirror backend is live.
func (s *ExpenseService) MirrorAvailable() bool {
	return s.mirror.Available()
}

// AddExpense records the transaction locally, then mirrors it. The only
// fatal path is a local storage failure; mirror failures are logged and
// surface as MirrorSaved=false.
func (s *ExpenseService) AddExpense(ctx context.Context, userID, username string, amount decimal.Decimal, description string) (AddResult, error) {
	now := s.now()
	if err := s.store.Record(userID, amount, description, now); err != nil {
		return AddResult{}, fmt.Errorf("record expense: %w", err)
	}

	res := AddResult{}
	if err := s.mirror.AppendTransaction(ctx, userID, username, amount, description); err != nil {
		slog.WarnContext(ctx, "Mirror write failed, expense kept locally",
			"user_id", userID,
			"error", err)
	} else {
		res.MirrorSaved = true
	}

	day := core.DayKey(now)
	if res.MirrorSaved {
		total, err := s.mirror.DailyTotal(ctx, userID, day)
		if err == nil {
			res.DayTotal = total
			return res, nil
		}
		slog.WarnContext(ctx, "Mirror day total failed, using local total",
			"user_id", userID,
			"error", err)
	}
	total, err := s.store.DailyTotal(userID, day)
	if err != nil {
		return res, fmt.Errorf("local day total: %w", err)
	}
	res.DayTotal = total
	return res, nil
}

// ExportAll pushes every locally stored transaction for the user into
// the mirror, oldest day first, keeping original timestamps. Returns
// (false, nil) when there is nothing to export and aborts on the first
// failed row.
//
// Each exported row's Day Total is the single transaction's amount, not
// a running total. This diverges from the live write path and is kept
// as-is to match the historical export format.
func (s *ExpenseService) ExportAll(ctx context.Context, userID string) (bool, error) {
	if !s.mirror.Available() {
		return false, mirror.ErrUnavailable
	}

	days, err := s.store.UserDays(userID)
	if err != nil {
		return false, fmt.Errorf("read ledger: %w", err)
	}
	if len(days) == 0 {
		return false, nil
	}

	exported := 0
	for _, day := range days {
		entries, err := s.store.EntriesOn(userID, day)
		if err != nil {
			return false, fmt.Errorf("read ledger: %w", err)
		}
		for _, tx := range entries {
			row := mirror.RemoteRow{
				Date:        day,
				Time:        core.ClockTime(tx.Timestamp),
				UserID:      userID,
				Username:    "Imported",
				Amount:      tx.Amount,
				Description: tx.Description,
				DayTotal:    tx.Amount,
			}
			if err := s.mirror.AppendRemoteRow(ctx, row); err != nil {
				return false, fmt.Errorf("export row for %s: %w", day, err)
			}
			exported++
		}
	}

	slog.InfoContext(ctx, "Local ledger exported to mirror",
		"user_id", userID,
		"rows", exported)
	return true, nil
}
