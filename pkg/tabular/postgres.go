package tabular

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresSchema creates the tables used by the Postgres workbook.
const PostgresSchema = `CREATE TABLE IF NOT EXISTS worksheets (
    id SERIAL PRIMARY KEY,
    title TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS worksheet_rows (
    worksheet_id INTEGER NOT NULL REFERENCES worksheets(id) ON DELETE CASCADE,
    row_index INTEGER NOT NULL,
    cells TEXT[] NOT NULL DEFAULT '{}',
    PRIMARY KEY (worksheet_id, row_index)
);`

// Postgres is a Workbook persisted as rows of text arrays, so it stays as
// schema-free as a spreadsheet.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres wraps db. Call EnsureSchema once before use.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the backing tables when missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, PostgresSchema); err != nil {
		return fmt.Errorf("ensure worksheet schema: %w", err)
	}
	return nil
}

func (p *Postgres) Worksheets(ctx context.Context) ([]string, error) {
	var titles []string
	if err := p.db.SelectContext(ctx, &titles, `SELECT title FROM worksheets ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("list worksheets: %w", err)
	}
	return titles, nil
}

func (p *Postgres) Worksheet(ctx context.Context, title string) (Worksheet, error) {
	var ws pgWorksheet
	err := p.db.GetContext(ctx, &ws, `SELECT id, title FROM worksheets WHERE lower(title) = lower($1) ORDER BY id ASC LIMIT 1`, title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrWorksheetNotFound, title)
		}
		return nil, fmt.Errorf("open worksheet %s: %w", title, err)
	}
	ws.db = p.db
	return &ws, nil
}

func (p *Postgres) AddWorksheet(ctx context.Context, title string) (Worksheet, error) {
	ws := pgWorksheet{db: p.db, Name: title}
	const query = `INSERT INTO worksheets (title) VALUES ($1)
ON CONFLICT (title) DO UPDATE SET title = EXCLUDED.title
RETURNING id`
	if err := p.db.GetContext(ctx, &ws.ID, query, title); err != nil {
		return nil, fmt.Errorf("add worksheet %s: %w", title, err)
	}
	return &ws, nil
}

type pgWorksheet struct {
	db   *sqlx.DB
	ID   int64  `db:"id"`
	Name string `db:"title"`
}

func (w *pgWorksheet) Title() string { return w.Name }

func (w *pgWorksheet) Rows(ctx context.Context) ([][]string, error) {
	rows, err := w.db.QueryContext(ctx, `SELECT cells FROM worksheet_rows WHERE worksheet_id = $1 ORDER BY row_index ASC`, w.ID)
	if err != nil {
		return nil, fmt.Errorf("read worksheet %s: %w", w.Name, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var cells pq.StringArray
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("scan worksheet row: %w", err)
		}
		out = append(out, []string(cells))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate worksheet %s: %w", w.Name, err)
	}
	return out, nil
}

// Append allocates the next row index inside the insert. Concurrent appends
// that pick the same index fail on the primary key instead of sharing it.
func (w *pgWorksheet) Append(ctx context.Context, row []string) (int, error) {
	const query = `INSERT INTO worksheet_rows (worksheet_id, row_index, cells)
SELECT $1, COALESCE(MAX(row_index) + 1, 0), $2 FROM worksheet_rows WHERE worksheet_id = $1
RETURNING row_index`
	var index int
	if err := w.db.GetContext(ctx, &index, query, w.ID, pq.StringArray(row)); err != nil {
		return 0, fmt.Errorf("append to worksheet %s: %w", w.Name, err)
	}
	return index, nil
}

func (w *pgWorksheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	if row < 0 || col < 0 {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	tx, err := w.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cell update: %w", err)
	}

	var cells pq.StringArray
	err = tx.QueryRowxContext(ctx, `SELECT cells FROM worksheet_rows WHERE worksheet_id = $1 AND row_index = $2 FOR UPDATE`, w.ID, row).Scan(&cells)
	if err != nil {
		_ = tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
		}
		return fmt.Errorf("lock worksheet row: %w", err)
	}
	for len(cells) <= col {
		cells = append(cells, "")
	}
	cells[col] = value

	if _, err := tx.ExecContext(ctx, `UPDATE worksheet_rows SET cells = $3 WHERE worksheet_id = $1 AND row_index = $2`, w.ID, row, cells); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("update worksheet cell: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cell update: %w", err)
	}
	return nil
}

func (w *pgWorksheet) Replace(ctx context.Context, rows [][]string) error {
	tx, err := w.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin worksheet rewrite: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM worksheet_rows WHERE worksheet_id = $1`, w.ID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear worksheet %s: %w", w.Name, err)
	}
	for i, row := range rows {
		if _, err := tx.ExecContext(ctx, `INSERT INTO worksheet_rows (worksheet_id, row_index, cells) VALUES ($1, $2, $3)`, w.ID, i, pq.StringArray(row)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("rewrite worksheet row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit worksheet rewrite: %w", err)
	}
	return nil
}
