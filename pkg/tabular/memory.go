package tabular

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Workbook used for development and tests.
type Memory struct {
	mu     sync.Mutex
	order  []string
	sheets map[string]*memorySheet
}

// NewMemory builds an empty workbook.
func NewMemory() *Memory {
	return &Memory{sheets: make(map[string]*memorySheet)}
}

// Seed replaces the rows of title, creating the worksheet if needed.
func (m *Memory) Seed(title string, rows ...[]string) *Memory {
	ws, _ := m.AddWorksheet(context.Background(), title)
	_ = ws.Replace(context.Background(), rows)
	return m
}

func (m *Memory) Worksheets(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out, nil
}

func (m *Memory) Worksheet(ctx context.Context, title string) (Worksheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, ok := MatchTitle(m.order, title)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorksheetNotFound, title)
	}
	return m.sheets[name], nil
}

func (m *Memory) AddWorksheet(ctx context.Context, title string) (Worksheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if name, ok := MatchTitle(m.order, title); ok {
		return m.sheets[name], nil
	}
	ws := &memorySheet{title: title}
	m.order = append(m.order, title)
	m.sheets[title] = ws
	return ws, nil
}

type memorySheet struct {
	mu    sync.Mutex
	title string
	rows  [][]string
}

func (s *memorySheet) Title() string { return s.title }

func (s *memorySheet) Rows(ctx context.Context) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.rows))
	for i, row := range s.rows {
		out[i] = cloneRow(row)
	}
	return out, nil
}

func (s *memorySheet) Append(ctx context.Context, row []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, cloneRow(row))
	return len(s.rows) - 1, nil
}

func (s *memorySheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row < 0 || row >= len(s.rows) || col < 0 {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	for len(s.rows[row]) <= col {
		s.rows[row] = append(s.rows[row], "")
	}
	s.rows[row][col] = value
	return nil
}

func (s *memorySheet) Replace(ctx context.Context, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = make([][]string, len(rows))
	for i, row := range rows {
		s.rows[i] = cloneRow(row)
	}
	return nil
}
