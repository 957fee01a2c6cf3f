package repository

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("record not found")

// Observer receives timings for record store operations.
type Observer interface {
	ObserveStoreOperation(op string, duration time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveStoreOperation(string, time.Duration, error) {}

// header resolves canonical column names to positions in a worksheet header.
type header map[string]int

// parseHeader maps each header cell to its canonical column via aliases.
// The first occurrence of a column wins.
func parseHeader(cells []string, canonical []string, aliases map[string]string) header {
	h := make(header, len(cells))
	for i, cell := range cells {
		key := resolveColumn(cell, canonical, aliases)
		if key == "" {
			continue
		}
		if _, seen := h[key]; !seen {
			h[key] = i
		}
	}
	return h
}

// resolveColumn returns the canonical column a header cell names, or "".
func resolveColumn(cell string, canonical []string, aliases map[string]string) string {
	key := normaliseColumn(cell)
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	for _, col := range canonical {
		if col == key {
			return col
		}
	}
	return ""
}

// cell returns the value of col in row, or "" when the column or cell is missing.
func (h header) cell(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// isCanonical reports whether cells start with the canonical columns in order.
// Trailing columns are allowed.
func isCanonical(cells []string, canonical []string) bool {
	if len(cells) < len(canonical) {
		return false
	}
	for i, col := range canonical {
		if normaliseColumn(cells[i]) != col {
			return false
		}
	}
	return true
}

func normaliseColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", " ")
	return strings.Join(strings.Fields(name), " ")
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006",
}

func parseTimestamp(raw string) time.Time {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "yes", "y", "x", "✓":
		return true
	}
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

func parseOptionalInt(raw string) *int {
	if raw == "" {
		return nil
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return &v
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		v := int(f)
		return &v
	}
	return nil
}

func parseInt(raw string) int {
	if v := parseOptionalInt(raw); v != nil {
		return *v
	}
	return 0
}
