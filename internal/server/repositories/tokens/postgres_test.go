package tokens

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/akarpov87/custauth/internal/server/auth"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	putQuery    = `(?s)^\s*INSERT\s+INTO\s+tokens\s*\(customer_email,\s*kind,\s*token\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*ON\s+CONFLICT\s*\(customer_email,\s*kind\)\s*DO\s+UPDATE\s+SET\s+token\s*=\s*EXCLUDED\.token\s*$`
	deleteQuery = `(?s)^\s*DELETE\s+FROM\s+tokens\s+WHERE\s+customer_email\s*=\s*\$1\s+AND\s+kind\s*=\s*\$2\s*$`
)

func TestPut_Insert(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(putQuery).
		WithArgs("a@x.com", "session", "tok-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Put(context.Background(), "a@x.com", auth.KindSession, "tok-1"); err != nil {
		t.Fatalf("Put error: %v", err)
	}
}

func TestPut_OverwritesSameKind(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(putQuery).
		WithArgs("a@x.com", "session", "tok-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(putQuery).
		WithArgs("a@x.com", "session", "tok-2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Put(context.Background(), "a@x.com", auth.KindSession, "tok-1"); err != nil {
		t.Fatalf("first Put error: %v", err)
	}
	if err := repo.Put(context.Background(), "a@x.com", auth.KindSession, "tok-2"); err != nil {
		t.Fatalf("second Put error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPut_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(putQuery).
		WithArgs("a@x.com", "reset", "tok-1").
		WillReturnError(errors.New("db down"))

	err := repo.Put(context.Background(), "a@x.com", auth.KindReset, "tok-1")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// Zero rows affected is still success.
	mock.ExpectExec(deleteQuery).
		WithArgs("a@x.com", "session").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "a@x.com", auth.KindSession); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQuery).
		WithArgs("a@x.com", "reset").
		WillReturnError(errors.New("db err"))

	err := repo.Delete(context.Background(), "a@x.com", auth.KindReset)
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
