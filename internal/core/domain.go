package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DayLayout is the calendar-date key shared by the local ledger and
	// the mirror. Dates are local to the server clock.
	DayLayout = "2006-01-02"

	// ClockLayout is the wall-clock part shown in mirror rows and replies.
	ClockLayout = "15:04"
)

type (
	// Transaction is one recorded expense. Created once, never mutated,
	// never deleted.
	Transaction struct {
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
		Timestamp   time.Time       `json:"timestamp"`
	}

	// TransactionView is the flattened read model shared by mirror
	// queries and the local fallback path.
	TransactionView struct {
		Date        string
		Time        string
		Amount      decimal.Decimal
		Description string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
)

// DayKey normalizes a timestamp to its calendar date key.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ClockTime returns the HH:MM display form of a timestamp.
func ClockTime(t time.Time) string {
	return t.Format(ClockLayout)
}

func (t Transaction) Validate() error {
	if t.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if t.Timestamp.IsZero() {
		return errors.New("timestamp cannot be zero")
	}
	return nil
}

// View flattens the transaction under its own date key.
func (t Transaction) View() TransactionView {
	return TransactionView{
		Date:        DayKey(t.Timestamp),
		Time:        ClockTime(t.Timestamp),
		Amount:      t.Amount,
		Description: t.Description,
	}
}
