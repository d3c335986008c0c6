// Package google implements the RowStore port on top of the Google
// Sheets v4 API, authenticated with a service account scoped to one
// spreadsheet.
package google

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catatan/internal/sheets"

	goauth "golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Credentials is the service-account identity used to reach the
// spreadsheet: the account email plus its private key.
type Credentials struct {
	Email      string
	PrivateKey string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ sheets.RowStore = (*Client)(nil)

// NewClient builds a Sheets-backed RowStore for one spreadsheet.
func NewClient(ctx context.Context, creds Credentials, spreadsheetID string) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if creds.Email == "" || creds.PrivateKey == "" {
		return nil, errors.New("missing service account credentials")
	}

	// Keys passed through env files often carry literal \n sequences.
	key := strings.ReplaceAll(creds.PrivateKey, `\n`, "\n")

	conf := &jwt.Config{
		Email:      creds.Email,
		PrivateKey: []byte(key),
		Scopes:     []string{gsheet.SpreadsheetsScope},
		TokenURL:   goauth.JWTTokenURL,
	}

	svc, err := gsheet.NewService(ctx, goption.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (c *Client) EnsureSheet(ctx context.Context, title string, headers []string) error {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("load spreadsheet info: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return nil
		}
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add sheet %s: %w", title, err)
	}

	hv := make([]any, len(headers))
	for i, h := range headers {
		hv[i] = h
	}
	vr := &gsheet.ValueRange{Values: [][]any{hv}}
	rng := fmt.Sprintf("%s!A1", title)
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write headers for %s: %w", title, err)
	}
	return nil
}

func (c *Client) AppendRow(ctx context.Context, title string, cells map[string]string) error {
	headers, err := c.headerRow(ctx, title)
	if err != nil {
		return err
	}
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = cells[h]
	}
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	rng := fmt.Sprintf("%s!A:%s", title, columnLetter(len(headers)))
	if _, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do(); err != nil {
		return fmt.Errorf("append row to %s: %w", title, err)
	}
	return nil
}

func (c *Client) ListRows(ctx context.Context, title string) ([]sheets.Row, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, title).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", title, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	headers := toStrings(resp.Values[0])
	rows := make([]sheets.Row, 0, len(resp.Values)-1)
	for i, raw := range resp.Values[1:] {
		cols := toStrings(raw)
		cells := make(map[string]string, len(headers))
		for j, h := range headers {
			if j < len(cols) {
				cells[h] = cols[j]
			}
		}
		rows = append(rows, sheets.Row{Index: i + 2, Cells: cells})
	}
	return rows, nil
}

func (c *Client) UpdateRow(ctx context.Context, title string, index int, cells map[string]string) error {
	headers, err := c.headerRow(ctx, title)
	if err != nil {
		return err
	}
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = cells[h]
	}
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	rng := fmt.Sprintf("%s!A%d:%s%d", title, index, columnLetter(len(headers)), index)
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return fmt.Errorf("update row %d in %s: %w", index, title, err)
	}
	return nil
}

func (c *Client) headerRow(ctx context.Context, title string) ([]string, error) {
	rng := fmt.Sprintf("%s!1:1", title)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read headers of %s: %w", title, err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return nil, fmt.Errorf("sheet %s has no header row", title)
	}
	return toStrings(resp.Values[0]), nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

// columnLetter converts a 1-based column count to its A1-notation letter.
func columnLetter(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}
