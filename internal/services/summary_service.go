package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"catatan/internal/core"
	"catatan/internal/ledger"
	"catatan/internal/mirror"

	"github.com/shopspring/decimal"
)

// Source tells the reply layer which store answered a query.
type Source string

const (
	SourceMirror Source = "mirror"
	SourceLocal  Source = "local"
)

type (
	// DaySummary is one date group inside a week report.
	DaySummary struct {
		Date  string
		Items []core.TransactionView
		Total decimal.Decimal
	}

	TodayReport struct {
		Date   string
		Items  []core.TransactionView
		Total  decimal.Decimal
		Source Source
	}

	// WeekReport groups the last seven days, most recent first.
	WeekReport struct {
		Days   []DaySummary
		Total  decimal.Decimal
		Source Source
	}
)

// SummaryService answers today/week queries, preferring the mirror and
// falling back to the local ledger when it is unavailable.
type SummaryService struct {
	store  *ledger.Store
	mirror mirror.Mirror
	now    func() time.Time
}

func NewSummaryService(store *ledger.Store, m mirror.Mirror) *SummaryService {
	if m == nil {
		m = mirror.Absent()
	}
	return &SummaryService{store: store, mirror: m, now: time.Now}
}

func (s *SummaryService) TodaySummary(ctx context.Context, userID string) (TodayReport, error) {
	today := core.DayKey(s.now())
	report := TodayReport{Date: today, Total: decimal.Zero}

	views, err := s.mirror.QueryRange(ctx, userID, 1)
	if err == nil {
		report.Source = SourceMirror
	} else {
		if !errors.Is(err, mirror.ErrUnavailable) {
			slog.WarnContext(ctx, "Mirror query failed, falling back to local ledger",
				"user_id", userID,
				"error", err)
		}
		views, err = s.localViews(userID, today)
		if err != nil {
			return TodayReport{}, err
		}
		report.Source = SourceLocal
	}

	// The range window is date-granular and can include boundary slop;
	// keep only rows dated exactly today.
	for _, v := range views {
		if v.Date != today {
			continue
		}
		report.Items = append(report.Items, v)
		report.Total = report.Total.Add(v.Amount)
	}
	return report, nil
}

func (s *SummaryService) WeekSummary(ctx context.Context, userID string) (WeekReport, error) {
	report := WeekReport{Total: decimal.Zero}

	views, err := s.mirror.QueryRange(ctx, userID, 7)
	if err == nil {
		report.Source = SourceMirror
	} else {
		if !errors.Is(err, mirror.ErrUnavailable) {
			slog.WarnContext(ctx, "Mirror query failed, falling back to local ledger",
				"user_id", userID,
				"error", err)
		}
		report.Source = SourceLocal
		now := s.now()
		for i := 0; i < 7; i++ {
			day := core.DayKey(now.AddDate(0, 0, -i))
			dayViews, err := s.localViews(userID, day)
			if err != nil {
				return WeekReport{}, err
			}
			views = append(views, dayViews...)
		}
	}

	grouped := map[string]*DaySummary{}
	var dates []string
	for _, v := range views {
		g := grouped[v.Date]
		if g == nil {
			g = &DaySummary{Date: v.Date, Total: decimal.Zero}
			grouped[v.Date] = g
			dates = append(dates, v.Date)
		}
		g.Items = append(g.Items, v)
		g.Total = g.Total.Add(v.Amount)
		report.Total = report.Total.Add(v.Amount)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	for _, d := range dates {
		report.Days = append(report.Days, *grouped[d])
	}
	return report, nil
}

func (s *SummaryService) localViews(userID, date string) ([]core.TransactionView, error) {
	entries, err := s.store.EntriesOn(userID, date)
	if err != nil {
		return nil, fmt.Errorf("read local ledger: %w", err)
	}
	views := make([]core.TransactionView, 0, len(entries))
	for _, tx := range entries {
		views = append(views, tx.View())
	}
	return views, nil
}
