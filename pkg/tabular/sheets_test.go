package tabular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type fakeSheetsAPI struct {
	mu           sync.Mutex
	titles       []string
	values       [][]interface{}
	appended     [][]interface{}
	appendRanges []string
	updates      []string
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	path := r.URL.Path

	switch {
	case r.Method == http.MethodGet && !strings.Contains(path, "/values/"):
		sheets := make([]map[string]interface{}, 0, len(f.titles))
		for _, title := range f.titles {
			sheets = append(sheets, map[string]interface{}{"properties": map[string]string{"title": title}})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"sheets": sheets})
	case r.Method == http.MethodGet:
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"values": f.values})
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":append"):
		var body struct {
			Values [][]interface{} `json:"values"`
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		f.appended = append(f.appended, body.Values...)
		target := strings.TrimSuffix(path[strings.LastIndex(path, "/")+1:], ":append")
		f.appendRanges = append(f.appendRanges, target)
		// Writes land on the anchor row, like an append below the last stored row.
		row, _ := RangeStartRow(target)
		for len(f.values) < row {
			f.values = append(f.values, []interface{}{})
		}
		f.values = append(f.values[:row], body.Values...)
		sheet := target[:strings.Index(target, "!")]
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"updates": map[string]interface{}{"updatedRange": fmt.Sprintf("%s!A%d:H%d", sheet, row+1, row+1)},
		})
	case r.Method == http.MethodPut:
		f.updates = append(f.updates, path[strings.LastIndex(path, "/")+1:])
		_, _ = w.Write([]byte(`{}`))
	default:
		http.Error(w, `{"error":{"code":400,"message":"unexpected"}}`, http.StatusBadRequest)
	}
}

func newFakeSheets(t *testing.T, api *fakeSheetsAPI) *Sheets {
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	wb, err := NewSheets(context.Background(), "sheet-1",
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return wb
}

func TestSheetsReadsRowsAsStrings(t *testing.T) {
	api := &fakeSheetsAPI{
		titles: []string{"Submissions", "WeeklyPrompt"},
		values: [][]interface{}{{"name", "poem"}, {"Amy", "first light"}},
	}
	wb := newFakeSheets(t, api)

	ws, err := wb.Worksheet(context.Background(), "SUBMISSIONS")
	require.NoError(t, err)
	assert.Equal(t, "Submissions", ws.Title())

	rows, err := ws.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"name", "poem"}, {"Amy", "first light"}}, rows)
}

func TestSheetsMissingWorksheet(t *testing.T) {
	wb := newFakeSheets(t, &fakeSheetsAPI{titles: []string{"Sheet1"}})
	_, err := wb.Worksheet(context.Background(), "Submissions")
	assert.True(t, errors.Is(err, ErrWorksheetNotFound))
}

func TestSheetsAppendAndUpdateCell(t *testing.T) {
	api := &fakeSheetsAPI{titles: []string{"Submissions"}}
	wb := newFakeSheets(t, api)
	ws, err := wb.Worksheet(context.Background(), "Submissions")
	require.NoError(t, err)

	index, err := ws.Append(context.Background(), []string{"Amy", "first light"})
	require.NoError(t, err)
	assert.Equal(t, 0, index)
	require.NoError(t, ws.UpdateCell(context.Background(), 2, 7, "9"))

	require.Len(t, api.appended, 1)
	assert.Equal(t, []interface{}{"Amy", "first light"}, api.appended[0])
	require.Len(t, api.updates, 1)
	assert.Equal(t, "'Submissions'!H3", api.updates[0])
}

func TestSheetsAppendLandsBelowInteriorBlankRows(t *testing.T) {
	api := &fakeSheetsAPI{
		titles: []string{"Submissions"},
		values: [][]interface{}{{"author", "poem"}, {"Amy", "first light"}, {}, {"Bo", "reeds"}},
	}
	wb := newFakeSheets(t, api)
	ws, err := wb.Worksheet(context.Background(), "Submissions")
	require.NoError(t, err)

	index, err := ws.Append(context.Background(), []string{"Cy", "new"})
	require.NoError(t, err)
	assert.Equal(t, 4, index)
	assert.Equal(t, []string{"'Submissions'!A5"}, api.appendRanges)

	rows, err := ws.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Bo", "reeds"}, rows[3])
	assert.Equal(t, []string{"Cy", "new"}, rows[4])
}

func TestRangeStartRow(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"'Submissions'!A5:H5", 4, true},
		{"Sheet1!B12", 11, true},
		{"A1", 0, true},
		{"'It''s'!AA3:AB3", 2, true},
		{"", 0, false},
		{"Sheet1!A0", 0, false},
	}
	for _, tc := range cases {
		got, ok := RangeStartRow(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
