package customers

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/akarpov87/custauth/internal/common"
	"github.com/akarpov87/custauth/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
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
	createQuery = `(?s)^\s*INSERT\s+INTO\s+customers\s*\(email,\s*password_digest,\s*profile\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+created_at\s*$`
	getQuery    = `(?s)^\s*SELECT\s+email,\s*password_digest,\s*profile,\s*created_at\s+FROM\s+customers\s+WHERE\s+email\s*=\s*\$1\s*$`
	updateQuery = `(?s)^\s*UPDATE\s+customers\s+SET\s+password_digest\s*=\s*\$2\s+WHERE\s+email\s*=\s*\$1\s*$`
)

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(created)
	mock.ExpectQuery(createQuery).
		WithArgs("a@x.com", "$argon2id$...", []byte(`{"name":"Alice"}`)).
		WillReturnRows(rows)

	c := &models.Customer{
		Email:          "a@x.com",
		PasswordDigest: "$argon2id$...",
		Profile:        map[string]string{"name": "Alice"},
	}
	got, err := repo.Create(context.Background(), c)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Email != "a@x.com" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected customer: %+v", got)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(createQuery).
		WithArgs("a@x.com", "digest", []byte(`null`)).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	_, err := repo.Create(context.Background(), &models.Customer{Email: "a@x.com", PasswordDigest: "digest"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(createQuery).
		WithArgs("a@x.com", "digest", []byte(`null`)).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Customer{Email: "a@x.com", PasswordDigest: "digest"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"email", "password_digest", "profile", "created_at"}).
		AddRow("a@x.com", "digest", []byte(`{"name":"Alice"}`), created)
	mock.ExpectQuery(getQuery).
		WithArgs("a@x.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.Email != "a@x.com" || got.PasswordDigest != "digest" || got.Profile["name"] != "Alice" {
		t.Fatalf("unexpected customer: %+v", got)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQuery).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByEmail_CaseSensitive(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// The lookup passes the email through verbatim; no normalization.
	mock.ExpectQuery(getQuery).
		WithArgs("A@X.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "A@X.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdatePassword_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQuery).
		WithArgs("a@x.com", "new-digest").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePassword(context.Background(), "a@x.com", "new-digest"); err != nil {
		t.Fatalf("UpdatePassword error: %v", err)
	}
}

func TestUpdatePassword_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQuery).
		WithArgs("ghost@x.com", "new-digest").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), "ghost@x.com", "new-digest")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdatePassword_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQuery).
		WithArgs("a@x.com", "new-digest").
		WillReturnError(errors.New("db err"))

	err := repo.UpdatePassword(context.Background(), "a@x.com", "new-digest")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
