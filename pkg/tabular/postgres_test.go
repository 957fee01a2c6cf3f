package tabular

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresMock(t *testing.T) (*Postgres, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return NewPostgres(sqlxDB), mock, func() {
		sqlxDB.Close()
	}
}

func TestPostgresWorksheetNotFound(t *testing.T) {
	wb, mock, cleanup := newPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, title FROM worksheets").
		WithArgs("WeeklyPrompt").
		WillReturnError(sql.ErrNoRows)

	_, err := wb.Worksheet(context.Background(), "WeeklyPrompt")
	assert.True(t, errors.Is(err, ErrWorksheetNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRowsDecodesArrays(t *testing.T) {
	wb, mock, cleanup := newPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, title FROM worksheets").
		WithArgs("submissions").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(3, "Submissions"))
	mock.ExpectQuery("SELECT cells FROM worksheet_rows").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"cells"}).
			AddRow(`{name,poem}`).
			AddRow(`{Amy,"first light"}`))

	ws, err := wb.Worksheet(context.Background(), "submissions")
	require.NoError(t, err)
	assert.Equal(t, "Submissions", ws.Title())

	rows, err := ws.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"name", "poem"}, {"Amy", "first light"}}, rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAppendAndUpdateCell(t *testing.T) {
	wb, mock, cleanup := newPostgresMock(t)
	defer cleanup()
	ws := &pgWorksheet{db: wb.db, ID: 3, Name: "Submissions"}

	mock.ExpectQuery("RETURNING row_index").
		WithArgs(int64(3), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"row_index"}).AddRow(1))
	index, err := ws.Append(context.Background(), []string{"Amy", "first light"})
	require.NoError(t, err)
	assert.Equal(t, 1, index)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT cells FROM worksheet_rows").
		WithArgs(int64(3), 1).
		WillReturnRows(sqlmock.NewRows([]string{"cells"}).AddRow(`{Amy,"first light"}`))
	mock.ExpectExec("UPDATE worksheet_rows SET cells").
		WithArgs(int64(3), 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	require.NoError(t, ws.UpdateCell(context.Background(), 1, 7, "8"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateCellMissingRow(t *testing.T) {
	wb, mock, cleanup := newPostgresMock(t)
	defer cleanup()
	ws := &pgWorksheet{db: wb.db, ID: 3, Name: "Submissions"}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT cells FROM worksheet_rows").
		WithArgs(int64(3), 9).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := ws.UpdateCell(context.Background(), 9, 0, "x")
	assert.True(t, errors.Is(err, ErrRowOutOfRange))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresReplaceRewritesRows(t *testing.T) {
	wb, mock, cleanup := newPostgresMock(t)
	defer cleanup()
	ws := &pgWorksheet{db: wb.db, ID: 3, Name: "Submissions"}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM worksheet_rows").WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO worksheet_rows").WithArgs(int64(3), 0, sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO worksheet_rows").WithArgs(int64(3), 1, sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := ws.Replace(context.Background(), [][]string{{"author", "poem"}, {"Amy", "first light"}})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
