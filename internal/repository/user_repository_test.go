package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "email", "password_hash", "is_active", "is_superuser", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestUserRepositoryInsert(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("a@x.com", "digest").
		WillReturnRows(pgxmock.NewRows([]string{"id", "is_active", "is_superuser", "created_at", "updated_at"}).
			AddRow("3f0e0c5e-7c1a-4c38-9a55-0b7a3d1f2c11", true, false, now, now))

	user, err := repo.Insert(context.Background(), "a@x.com", "digest")
	require.NoError(t, err)
	assert.Equal(t, "3f0e0c5e-7c1a-4c38-9a55-0b7a3d1f2c11", user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "digest", user.PasswordHash)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsSuperuser)
	assert.Equal(t, now, user.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryInsertConflict(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("a@x.com", "digest").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Insert(context.Background(), "a@x.com", "digest")
	require.ErrorIs(t, err, ErrConflict)
}

func TestUserRepositoryInsertOtherError(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	boom := errors.New("connection reset")

	mock.ExpectQuery("INSERT INTO users").WithArgs("a@x.com", "digest").WillReturnError(boom)

	_, err := repo.Insert(context.Background(), "a@x.com", "digest")
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrConflict)
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("a@x.com").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow("u-1", "a@x.com", "digest", false, true, now, now))

	user, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.False(t, user.IsActive)
	assert.True(t, user.IsSuperuser)
}

func TestUserRepositoryFindByEmailMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("nobody@x.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryFindByID(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs("u-1").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow("u-1", "a@x.com", "digest", true, false, now, now))

	user, err := repo.FindByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestUserRepositorySetActive(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec("UPDATE users SET is_active").
		WithArgs(false, "u-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repo.SetActive(context.Background(), "u-1", false))

	mock.ExpectExec("UPDATE users SET is_active").
		WithArgs(false, "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, repo.SetActive(context.Background(), "missing", false), ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
