// Package tabular abstracts a spreadsheet-like record store: a workbook of
// named worksheets, each an ordered list of string rows whose first row is
// the header. Backends impose no schema.
package tabular

import (
	"context"
	"errors"
	"strings"
)

// ErrWorksheetNotFound is returned when a worksheet title does not exist.
var ErrWorksheetNotFound = errors.New("worksheet not found")

// ErrRowOutOfRange is returned when a cell update addresses a missing row.
var ErrRowOutOfRange = errors.New("row out of range")

// Workbook is a collection of worksheets identified by title.
type Workbook interface {
	Worksheets(ctx context.Context) ([]string, error)
	// Worksheet opens a worksheet by title, matching case-insensitively.
	Worksheet(ctx context.Context, title string) (Worksheet, error)
	AddWorksheet(ctx context.Context, title string) (Worksheet, error)
}

// Worksheet is an ordered sequence of rows. Row 0 is the header.
// Row and column indexes are zero-based.
type Worksheet interface {
	Title() string
	Rows(ctx context.Context) ([][]string, error)
	// Append writes row after the last stored row and returns the index the
	// backend actually wrote it to.
	Append(ctx context.Context, row []string) (int, error)
	UpdateCell(ctx context.Context, row, col int, value string) error
	Replace(ctx context.Context, rows [][]string) error
}

// OpenOrCreate opens title, creating it when missing.
func OpenOrCreate(ctx context.Context, wb Workbook, title string) (Worksheet, error) {
	ws, err := wb.Worksheet(ctx, title)
	if errors.Is(err, ErrWorksheetNotFound) {
		return wb.AddWorksheet(ctx, title)
	}
	return ws, err
}

// MatchTitle returns the first title equal to want ignoring case and surrounding space.
func MatchTitle(titles []string, want string) (string, bool) {
	want = strings.TrimSpace(want)
	for _, title := range titles {
		if strings.EqualFold(strings.TrimSpace(title), want) {
			return title, true
		}
	}
	return "", false
}

// ColumnLetter converts a zero-based column index into A1 notation letters.
func ColumnLetter(col int) string {
	if col < 0 {
		return ""
	}
	var buf []byte
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		buf = append([]byte{byte('A' + (n-1)%26)}, buf...)
	}
	return string(buf)
}

func cloneRow(row []string) []string {
	out := make([]string, len(row))
	copy(out, row)
	return out
}
