package repository

import (
	"regexp"
	"testing"

	"shop/internal/app/ds"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
)

// newMockRepository - репозиторий поверх sqlmock с postgres диалектом
func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := open(postgres.New(postgres.Config{Conn: db}))
	require.NoError(t, err)

	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })
	return repo, mock
}

func TestMigrateLoginIndex(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_login_lower ON users (lower(login))`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, migrateLoginIndex(repo.db))
}

func TestCreateUserDuplicateLogin(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"idx_users_login_lower\""})
	mock.ExpectRollback()

	err := repo.CreateUser(t.Context(), &ds.User{Login: "alice", Password: "hash", Roles: "ROLE_USER"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestGetUserByLoginIgnoresCase(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE LOWER(login) = LOWER($1)`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "login", "password", "roles"}).
			AddRow(1, "alice", "hash", "ROLE_USER"))

	user, err := repo.GetUserByLogin(t.Context(), "ALICE")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Login)
}

func TestGetUserByLoginNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "login", "password", "roles"}))

	_, err := repo.GetUserByLogin(t.Context(), "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}
