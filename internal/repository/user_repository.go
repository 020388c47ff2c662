package repository

import (
	"context"

	"github.com/spec-kit/modular-api/internal/domain"
)

// UserRepository defines persistence access for credential records.
type UserRepository interface {
	Insert(ctx context.Context, email, passwordHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type userRepository struct {
	db DBTX
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

// Insert relies on the unique email constraint, so concurrent registrations
// of one address produce exactly one row.
func (r *userRepository) Insert(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	const query = `
        INSERT INTO users (email, password_hash, is_active, is_superuser)
        VALUES ($1, $2, TRUE, FALSE)
        RETURNING id, is_active, is_superuser, created_at, updated_at`

	user := domain.User{Email: email, PasswordHash: passwordHash}
	err := r.db.QueryRow(ctx, query, email, passwordHash).Scan(
		&user.ID,
		&user.IsActive,
		&user.IsSuperuser,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, email, password_hash, is_active, is_superuser, created_at, updated_at
        FROM users WHERE email=$1`

	return r.scanOne(ctx, query, email)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, email, password_hash, is_active, is_superuser, created_at, updated_at
        FROM users WHERE id=$1`

	return r.scanOne(ctx, query, id)
}

func (r *userRepository) SetActive(ctx context.Context, id string, active bool) error {
	const query = `
        UPDATE users SET is_active=$1, updated_at=NOW()
        WHERE id=$2`

	cmd, err := r.db.Exec(ctx, query, active, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) scanOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.IsSuperuser,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, mapNoRows(err)
	}
	return &user, nil
}
