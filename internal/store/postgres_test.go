package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupPostgresMock(t *testing.T) (*Postgres, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	st := NewPostgresWithDB(db)
	cleanup := func() { db.Close() }
	return st, mock, cleanup
}

func TestPostgresGet_Found(t *testing.T) {
	st, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM records WHERE key = $1`)).
		WithArgs("rec-1").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"graceGiven":false}`))

	v, err := st.Get(context.Background(), "rec-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != `{"graceGiven":false}` {
		t.Errorf("value = %q", v)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresGet_NotFound(t *testing.T) {
	st, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM records WHERE key = $1`)).
		WithArgs("rec-2").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := st.Get(context.Background(), "rec-2")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v; want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresPut_Upserts(t *testing.T) {
	st, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO records (key, value) VALUES ($1, $2)`)).
		WithArgs("rec-1", "v").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := st.Put(context.Background(), "rec-1", "v"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresDelete(t *testing.T) {
	st, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM records WHERE key = $1`)).
		WithArgs("rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := st.Delete(context.Background(), "rec-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresList(t *testing.T) {
	st, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key FROM records WHERE key LIKE $1 || '%'`)).
		WithArgs("rec-").
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("rec-1").AddRow("rec-2"))

	keys, err := st.List(context.Background(), "rec-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 2 || keys[0] != "rec-1" || keys[1] != "rec-2" {
		t.Errorf("keys = %v", keys)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresGet_QueryError(t *testing.T) {
	st, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM records WHERE key = $1`)).
		WithArgs("rec-3").
		WillReturnError(errors.New("connection lost"))

	_, err := st.Get(context.Background(), "rec-3")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v; want a wrapped query error", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
