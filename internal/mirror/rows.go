package mirror

import (
	"catatan/internal/sheets"

	"github.com/shopspring/decimal"
)

// Sheet titles and column headers on the mirror spreadsheet. These are
// the collaborator-side protocol; everything else in the package works
// with the typed rows below.
const (
	ExpensesSheet = "Expenses"
	SummarySheet  = "Daily Summary"
)

const (
	colDate        = "Date"
	colTime        = "Time"
	colUserID      = "User ID"
	colUsername    = "Username"
	colAmount      = "Amount"
	colDescription = "Description"
	colDayTotal    = "Day Total"
	colTotalAmount = "Total Amount"
	colTxCount     = "Transaction Count"
)

var (
	expenseHeaders = []string{colDate, colTime, colUserID, colUsername, colAmount, colDescription, colDayTotal}
	summaryHeaders = []string{colDate, colUserID, colUsername, colTotalAmount, colTxCount}
)

// RemoteRow is one appended transaction on the Expenses sheet. DayTotal
// is a snapshot of the user's day total as of this write; it is never
// re-maintained after later same-day writes.
type RemoteRow struct {
	Date        string
	Time        string
	UserID      string
	Username    string
	Amount      decimal.Decimal
	Description string
	DayTotal    decimal.Decimal
}

// DailySummaryRow is the per-(user, date) aggregate. At most one exists
// per pair, and unlike RemoteRow it is kept current on every write.
type DailySummaryRow struct {
	Date     string
	UserID   string
	Username string
	Total    decimal.Decimal
	Count    int
}

func (r RemoteRow) cells() map[string]string {
	return map[string]string{
		colDate:        r.Date,
		colTime:        r.Time,
		colUserID:      r.UserID,
		colUsername:    r.Username,
		colAmount:      r.Amount.String(),
		colDescription: r.Description,
		colDayTotal:    r.DayTotal.String(),
	}
}

func (r DailySummaryRow) cells() map[string]string {
	return map[string]string{
		colDate:        r.Date,
		colUserID:      r.UserID,
		colUsername:    r.Username,
		colTotalAmount: r.Total.String(),
		colTxCount:     decimal.NewFromInt(int64(r.Count)).String(),
	}
}

// remoteRowFrom maps a collaborator row back to the typed record. Rows
// whose amount does not parse (stray manual edits, blank lines) are
// skipped by reporting ok=false.
func remoteRowFrom(row sheets.Row) (RemoteRow, bool) {
	amount, err := decimal.NewFromString(row.Get(colAmount))
	if err != nil {
		return RemoteRow{}, false
	}
	dayTotal, err := decimal.NewFromString(row.Get(colDayTotal))
	if err != nil {
		dayTotal = decimal.Zero
	}
	return RemoteRow{
		Date:        row.Get(colDate),
		Time:        row.Get(colTime),
		UserID:      row.Get(colUserID),
		Username:    row.Get(colUsername),
		Amount:      amount,
		Description: row.Get(colDescription),
		DayTotal:    dayTotal,
	}, true
}
