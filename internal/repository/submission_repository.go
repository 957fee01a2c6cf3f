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

// SubmissionSchemaVersion identifies the canonical column layout below.
// Version 1 sheets hold only [name, poem].
const SubmissionSchemaVersion = 2

// Canonical submission columns in sheet order.
const (
	ColAuthor    = "author"
	ColHandle    = "handle"
	ColTitle     = "title"
	ColPoem      = "poem"
	ColTheme     = "theme"
	ColTimestamp = "timestamp"
	ColFeatured  = "featured"
	ColScore     = "score"
)

// SubmissionColumns is the canonical row layout.
var SubmissionColumns = []string{ColAuthor, ColHandle, ColTitle, ColPoem, ColTheme, ColTimestamp, ColFeatured, ColScore}

var submissionAliases = map[string]string{
	"name":             ColAuthor,
	"your name":        ColAuthor,
	"author name":      ColAuthor,
	"poet":             ColAuthor,
	"poet name":        ColAuthor,
	"full name":        ColAuthor,
	"instagram":        ColHandle,
	"instagram handle": ColHandle,
	"ig":               ColHandle,
	"poem title":       ColTitle,
	"your poem":        ColPoem,
	"poem text":        ColPoem,
	"poem body":        ColPoem,
	"body":             ColPoem,
	"text":             ColPoem,
	"tag":              ColTheme,
	"prompt":           ColTheme,
	"submitted at":     ColTimestamp,
	"submitted":        ColTimestamp,
	"date":             ColTimestamp,
	"time":             ColTimestamp,
	"is featured":      ColFeatured,
	"rating":           ColScore,
	"reflection score": ColScore,
}

func columnIndex(col string) int {
	for i, c := range SubmissionColumns {
		if c == col {
			return i
		}
	}
	return -1
}

// SubmissionRepository reads and appends submissions on a worksheet.
type SubmissionRepository struct {
	book     tabular.Workbook
	title    string
	observer Observer
}

// NewSubmissionRepository constructs the repository for worksheet title.
func NewSubmissionRepository(book tabular.Workbook, title string, observer Observer) *SubmissionRepository {
	if observer == nil {
		observer = nopObserver{}
	}
	return &SubmissionRepository{book: book, title: title, observer: observer}
}

// ReadAll returns every non-blank submission in insertion order, mapping
// whatever header the sheet carries onto the canonical fields.
func (r *SubmissionRepository) ReadAll(ctx context.Context) (result []models.Submission, err error) {
	defer r.observe("submissions.read_all", time.Now(), &err)

	ws, err := r.book.Worksheet(ctx, r.title)
	if err != nil {
		if errors.Is(err, tabular.ErrWorksheetNotFound) {
			return []models.Submission{}, nil
		}
		return nil, fmt.Errorf("open submissions worksheet: %w", err)
	}
	rows, err := ws.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read submissions: %w", err)
	}
	subs, err := decodeSubmissions(rows)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ws.Title(), err)
	}
	return subs, nil
}

// Get returns the submission stored on data row (1-based).
func (r *SubmissionRepository) Get(ctx context.Context, row int) (*models.Submission, error) {
	all, err := r.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Row == row {
			return &all[i], nil
		}
	}
	return nil, ErrNotFound
}

// Append writes sub as a canonical row and returns its data row number.
func (r *SubmissionRepository) Append(ctx context.Context, sub *models.Submission) (row int, err error) {
	defer r.observe("submissions.append", time.Now(), &err)

	ws, rows, err := r.canonicalSheet(ctx)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("append submission: worksheet %s has no header", ws.Title())
	}
	index, err := ws.Append(ctx, encodeSubmission(sub))
	if err != nil {
		return 0, fmt.Errorf("append submission: %w", err)
	}
	sub.Row = index
	return sub.Row, nil
}

// SetFeatured updates the featured flag of a data row.
func (r *SubmissionRepository) SetFeatured(ctx context.Context, row int, featured bool) (err error) {
	defer r.observe("submissions.set_featured", time.Now(), &err)
	return r.updateCell(ctx, row, ColFeatured, strconv.FormatBool(featured))
}

// SetScore backfills the reflection score of a data row.
func (r *SubmissionRepository) SetScore(ctx context.Context, row int, score int) (err error) {
	defer r.observe("submissions.set_score", time.Now(), &err)
	return r.updateCell(ctx, row, ColScore, strconv.Itoa(score))
}

// Migrate rewrites a non-canonical worksheet into the canonical layout,
// preserving row positions. It reports whether anything was rewritten.
func (r *SubmissionRepository) Migrate(ctx context.Context) (migrated bool, err error) {
	defer r.observe("submissions.migrate", time.Now(), &err)

	ws, err := tabular.OpenOrCreate(ctx, r.book, r.title)
	if err != nil {
		return false, fmt.Errorf("open submissions worksheet: %w", err)
	}
	_, migrated, err = r.migrateSheet(ctx, ws)
	return migrated, err
}

func (r *SubmissionRepository) updateCell(ctx context.Context, row int, col, value string) error {
	if row < 1 {
		return ErrNotFound
	}
	ws, rows, err := r.canonicalSheet(ctx)
	if err != nil {
		return err
	}
	if row >= len(rows) || isBlankRow(rows[row]) {
		return ErrNotFound
	}
	if err := ws.UpdateCell(ctx, row, columnIndex(col), value); err != nil {
		if errors.Is(err, tabular.ErrRowOutOfRange) {
			return ErrNotFound
		}
		return fmt.Errorf("update submission %s: %w", col, err)
	}
	return nil
}

// canonicalSheet opens the worksheet and guarantees a canonical header,
// migrating legacy layouts first. It returns the rows including header.
func (r *SubmissionRepository) canonicalSheet(ctx context.Context) (tabular.Worksheet, [][]string, error) {
	ws, err := tabular.OpenOrCreate(ctx, r.book, r.title)
	if err != nil {
		return nil, nil, fmt.Errorf("open submissions worksheet: %w", err)
	}
	rows, _, err := r.migrateSheet(ctx, ws)
	if err != nil {
		return nil, nil, err
	}
	return ws, rows, nil
}

// migrateSheet brings ws to the canonical layout and returns the rows as
// stored afterwards. Recognised headers are remapped in place and headerless
// [author, poem] sheets get a header row inserted above their data. Anything
// else is refused with ErrUnrecognisedLayout and left untouched.
func (r *SubmissionRepository) migrateSheet(ctx context.Context, ws tabular.Worksheet) ([][]string, bool, error) {
	rows, err := ws.Rows(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("read submissions: %w", err)
	}
	layout, err := detectSubmissionLayout(rows)
	if err != nil {
		return nil, false, fmt.Errorf("migrate %s: %w", ws.Title(), err)
	}

	switch layout.kind {
	case layoutCanonical:
		return rows, false, nil
	case layoutEmpty:
		header := append([]string(nil), SubmissionColumns...)
		if _, err := ws.Append(ctx, header); err != nil {
			return nil, false, fmt.Errorf("write submissions header: %w", err)
		}
		return [][]string{header}, true, nil
	}

	rewritten := layout.rewrite(rows)
	if err := ws.Replace(ctx, rewritten); err != nil {
		return nil, false, fmt.Errorf("migrate submissions: %w", err)
	}
	return rewritten, true, nil
}

func (r *SubmissionRepository) observe(op string, start time.Time, err *error) {
	r.observer.ObserveStoreOperation(op, time.Since(start), *err)
}

func decodeSubmissions(rows [][]string) ([]models.Submission, error) {
	layout, err := detectSubmissionLayout(rows)
	if err != nil {
		return nil, err
	}
	result := make([]models.Submission, 0, len(rows))
	for i := layout.first; i < len(rows); i++ {
		if isBlankRow(rows[i]) {
			continue
		}
		result = append(result, decodeSubmission(layout.header, rows[i], i+layout.shift))
	}
	return result, nil
}

func decodeSubmission(h header, row []string, index int) models.Submission {
	return models.Submission{
		Row:       index,
		Author:    rawCell(h, row, ColAuthor),
		Handle:    h.cell(row, ColHandle),
		Title:     h.cell(row, ColTitle),
		Poem:      rawCell(h, row, ColPoem),
		Theme:     h.cell(row, ColTheme),
		Timestamp: parseTimestamp(h.cell(row, ColTimestamp)),
		Featured:  parseBool(h.cell(row, ColFeatured)),
		Score:     parseOptionalInt(h.cell(row, ColScore)),
	}
}

// rawCell returns the cell untouched; author names and poem bodies are never normalised.
func rawCell(h header, row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func encodeSubmission(sub *models.Submission) []string {
	score := ""
	if sub.Score != nil {
		score = strconv.Itoa(*sub.Score)
	}
	return []string{
		sub.Author,
		sub.Handle,
		sub.Title,
		sub.Poem,
		sub.Theme,
		formatTimestamp(sub.Timestamp),
		strconv.FormatBool(sub.Featured),
		score,
	}
}
