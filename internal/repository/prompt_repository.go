package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/noah-isme/reflective-room/internal/models"
	"github.com/noah-isme/reflective-room/pkg/tabular"
)

// PromptColumns is the weekly prompt worksheet layout.
var PromptColumns = []string{"week", "title", "description", "posteddate"}

var promptHeader = []string{"week", "title", "description", "postedDate"}

var promptAliases = map[string]string{
	"posted date": "posteddate",
	"posted":      "posteddate",
	"date":        "posteddate",
	"week number": "week",
	"prompt":      "title",
}

// PromptRepository stores weekly prompts, append-only.
type PromptRepository struct {
	book     tabular.Workbook
	title    string
	observer Observer
}

// NewPromptRepository constructs the repository for worksheet title.
func NewPromptRepository(book tabular.Workbook, title string, observer Observer) *PromptRepository {
	if observer == nil {
		observer = nopObserver{}
	}
	return &PromptRepository{book: book, title: title, observer: observer}
}

// ReadAll returns prompts in insertion order. A missing worksheet yields none.
func (r *PromptRepository) ReadAll(ctx context.Context) (result []models.WeeklyPrompt, err error) {
	start := time.Now()
	defer func() { r.observer.ObserveStoreOperation("prompts.read_all", time.Since(start), err) }()

	ws, err := r.book.Worksheet(ctx, r.title)
	if err != nil {
		if errors.Is(err, tabular.ErrWorksheetNotFound) {
			return []models.WeeklyPrompt{}, nil
		}
		return nil, fmt.Errorf("open prompts worksheet: %w", err)
	}
	rows, err := ws.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read prompts: %w", err)
	}
	result = []models.WeeklyPrompt{}
	if len(rows) == 0 {
		return result, nil
	}
	h := parseHeader(rows[0], PromptColumns, promptAliases)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		result = append(result, models.WeeklyPrompt{
			Week:        parseInt(h.cell(row, "week")),
			Title:       h.cell(row, "title"),
			Description: h.cell(row, "description"),
			PostedDate:  parseTimestamp(h.cell(row, "posteddate")),
		})
	}
	return result, nil
}

// Append adds a prompt row, writing the header on an empty worksheet.
func (r *PromptRepository) Append(ctx context.Context, prompt models.WeeklyPrompt) (err error) {
	start := time.Now()
	defer func() { r.observer.ObserveStoreOperation("prompts.append", time.Since(start), err) }()

	ws, err := tabular.OpenOrCreate(ctx, r.book, r.title)
	if err != nil {
		return fmt.Errorf("open prompts worksheet: %w", err)
	}
	rows, err := ws.Rows(ctx)
	if err != nil {
		return fmt.Errorf("read prompts: %w", err)
	}
	if len(rows) == 0 {
		if _, err := ws.Append(ctx, promptHeader); err != nil {
			return fmt.Errorf("write prompts header: %w", err)
		}
	}
	row := []string{
		strconv.Itoa(prompt.Week),
		prompt.Title,
		prompt.Description,
		prompt.PostedDate.UTC().Format("2006-01-02"),
	}
	if _, err := ws.Append(ctx, row); err != nil {
		return fmt.Errorf("append prompt: %w", err)
	}
	return nil
}
