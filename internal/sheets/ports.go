// Package sheets defines the port for the spreadsheet collaborator.
// The mirror is built on these row-collection semantics and never talks
// to a concrete backend directly.
package sheets

import "context"

type (
	// Row is one spreadsheet row addressed by column header. Index is
	// the backend-side row position used for in-place updates.
	Row struct {
		Index int
		Cells map[string]string
	}

	// RowStore is the collection-of-rows surface the mirror depends on.
	RowStore interface {
		// EnsureSheet creates the named sheet with the given column
		// headers if it does not exist yet. Idempotent.
		EnsureSheet(ctx context.Context, title string, headers []string) error

		// AppendRow appends one row; cells are keyed by column header.
		AppendRow(ctx context.Context, title string, cells map[string]string) error

		// ListRows returns all data rows in insertion order.
		ListRows(ctx context.Context, title string) ([]Row, error)

		// UpdateRow rewrites the row at index with the given cells.
		UpdateRow(ctx context.Context, title string, index int, cells map[string]string) error
	}
)

// Get returns the cell under the given column header, empty if absent.
func (r Row) Get(column string) string {
	return r.Cells[column]
}
