package tabular

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const valueInputRaw = "RAW"

// Sheets is a Workbook backed by a Google Sheets spreadsheet.
type Sheets struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheets opens the spreadsheet identified by spreadsheetID. Options carry
// credentials (option.WithCredentialsFile) or test endpoints.
func NewSheets(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Sheets, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet id is required")
	}
	opts = append([]option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	return &Sheets{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (s *Sheets) Worksheets(ctx context.Context) ([]string, error) {
	doc, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: open spreadsheet: %w", err)
	}
	titles := make([]string, 0, len(doc.Sheets))
	for _, sh := range doc.Sheets {
		if sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}
	return titles, nil
}

func (s *Sheets) Worksheet(ctx context.Context, title string) (Worksheet, error) {
	titles, err := s.Worksheets(ctx)
	if err != nil {
		return nil, err
	}
	name, ok := MatchTitle(titles, title)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorksheetNotFound, title)
	}
	return &sheetsWorksheet{book: s, title: name}, nil
}

func (s *Sheets) AddWorksheet(ctx context.Context, title string) (Worksheet, error) {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: title}},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("sheets: add worksheet %s: %w", title, err)
	}
	return &sheetsWorksheet{book: s, title: title}, nil
}

type sheetsWorksheet struct {
	book  *Sheets
	title string
}

func (w *sheetsWorksheet) Title() string { return w.title }

// a1 quotes the worksheet title for use in A1 ranges.
func (w *sheetsWorksheet) a1(cells string) string {
	quoted := "'" + strings.ReplaceAll(w.title, "'", "''") + "'"
	if cells == "" {
		return quoted
	}
	return quoted + "!" + cells
}

func (w *sheetsWorksheet) Rows(ctx context.Context) ([][]string, error) {
	resp, err := w.book.svc.Spreadsheets.Values.Get(w.book.spreadsheetID, w.a1("")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read %s: %w", w.title, err)
	}
	rows := make([][]string, len(resp.Values))
	for i, raw := range resp.Values {
		row := make([]string, len(raw))
		for j, cell := range raw {
			if cell != nil {
				row[j] = fmt.Sprint(cell)
			}
		}
		rows[i] = row
	}
	return rows, nil
}

// Append anchors the write below the last stored row rather than at A1, so
// blank rows inside the sheet never pull the new row upwards. The returned
// index comes from the range Sheets reports as written.
func (w *sheetsWorksheet) Append(ctx context.Context, row []string) (int, error) {
	rows, err := w.Rows(ctx)
	if err != nil {
		return 0, err
	}
	next := len(rows)
	vr := &sheets.ValueRange{Values: [][]interface{}{toCells(row)}}
	resp, err := w.book.svc.Spreadsheets.Values.Append(w.book.spreadsheetID, w.a1(fmt.Sprintf("A%d", next+1)), vr).
		ValueInputOption(valueInputRaw).
		InsertDataOption("OVERWRITE").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: append to %s: %w", w.title, err)
	}
	if resp != nil && resp.Updates != nil {
		if index, ok := RangeStartRow(resp.Updates.UpdatedRange); ok {
			return index, nil
		}
	}
	return next, nil
}

func (w *sheetsWorksheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	if row < 0 || col < 0 {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	cell := fmt.Sprintf("%s%d", ColumnLetter(col), row+1)
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := w.book.svc.Spreadsheets.Values.Update(w.book.spreadsheetID, w.a1(cell), vr).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: update %s!%s: %w", w.title, cell, err)
	}
	return nil
}

func (w *sheetsWorksheet) Replace(ctx context.Context, rows [][]string) error {
	if _, err := w.book.svc.Spreadsheets.Values.Clear(w.book.spreadsheetID, w.a1(""), &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("sheets: clear %s: %w", w.title, err)
	}
	if len(rows) == 0 {
		return nil
	}
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = toCells(row)
	}
	_, err := w.book.svc.Spreadsheets.Values.Update(w.book.spreadsheetID, w.a1("A1"), &sheets.ValueRange{Values: values}).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: rewrite %s: %w", w.title, err)
	}
	return nil
}

// RangeStartRow returns the zero-based row of the first cell of an A1 range
// such as "'Submissions'!A5:H5".
func RangeStartRow(a1 string) (int, bool) {
	if i := strings.LastIndex(a1, "!"); i >= 0 {
		a1 = a1[i+1:]
	}
	if i := strings.Index(a1, ":"); i >= 0 {
		a1 = a1[:i]
	}
	digits := strings.TrimLeftFunc(a1, unicode.IsLetter)
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
