package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/redlinehq/redline/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

func TestMapErrorNil(t *testing.T) {
	got := repository.MapError(nil, errNotFound, errDuplicate)
	if got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
}

func TestMapErrorNotFound(t *testing.T) {
	got := repository.MapError(sql.ErrNoRows, errNotFound, errDuplicate)
	if !errors.Is(got, errNotFound) {
		t.Errorf("MapError(ErrNoRows) = %v, want %v", got, errNotFound)
	}
}

func TestMapErrorDuplicate(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	got := repository.MapError(pgErr, errNotFound, errDuplicate)
	if !errors.Is(got, errDuplicate) {
		t.Errorf("MapError(PgError 23505) = %v, want %v", got, errDuplicate)
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	original := errors.New("some other error")
	got := repository.MapError(original, errNotFound, errDuplicate)
	if got != original {
		t.Errorf("MapError(other) = %v, want %v", got, original)
	}
}

func TestMapErrorPgNonDuplicate(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503"}
	got := repository.MapError(pgErr, errNotFound, errDuplicate)
	if got != pgErr {
		t.Errorf("MapError(PgError 23503) should pass through, got %v", got)
	}
}

func TestExecExpectOne(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open stub database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	t.Run("one row affected", func(t *testing.T) {
		mock.ExpectExec("UPDATE items").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repository.ExecExpectOne(ctx, db, "UPDATE items SET x = 1")
		assert.NoError(t, err)
	})

	t.Run("zero rows affected returns ErrNoRows", func(t *testing.T) {
		mock.ExpectExec("UPDATE items").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repository.ExecExpectOne(ctx, db, "UPDATE items SET x = 1")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecIgnoresRowCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open stub database: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM items").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repository.Exec(context.Background(), db, "DELETE FROM items WHERE id = $1", "missing")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("failed to open stub database: %v", err)
		}
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		got, err := repository.WithTx(context.Background(), db, func(tx *sql.Tx) (int, error) {
			return 42, nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("failed to open stub database: %v", err)
		}
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		_, err = repository.WithTx(context.Background(), db, func(tx *sql.Tx) (int, error) {
			return 0, boom
		})

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQueryMany(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open stub database: %v", err)
	}
	defer db.Close()

	scan := func(s repository.Scanner) (string, error) {
		var v string
		err := s.Scan(&v)
		return v, err
	}

	t.Run("returns all rows", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"name"}).AddRow("a").AddRow("b")
		mock.ExpectQuery("SELECT name FROM items").WillReturnRows(rows)

		got, err := repository.QueryMany(context.Background(), db, "SELECT name FROM items", nil, scan)
		assert.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("empty result is empty slice", func(t *testing.T) {
		mock.ExpectQuery("SELECT name FROM items").
			WillReturnRows(sqlmock.NewRows([]string{"name"}))

		got, err := repository.QueryMany(context.Background(), db, "SELECT name FROM items", nil, scan)
		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
