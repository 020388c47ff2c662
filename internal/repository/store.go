package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when an insert violates a unique constraint.
	ErrConflict = errors.New("record already exists")
)

const uniqueViolation = "23505"

// DBTX is the query surface shared by pgx pools, pooled connections and transactions.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Scope is a store handle bound to one acquired connection. Callers must
// Release it on every exit path.
type Scope interface {
	Users() UserRepository
	Items() ItemRepository
	Release()
}

// Store hands out request-scoped repository handles.
type Store interface {
	Acquire(ctx context.Context) (Scope, error)
}

// AcquireFunc obtains a connection and the function that gives it back.
type AcquireFunc func(ctx context.Context) (DBTX, func(), error)

type store struct {
	acquire AcquireFunc
}

// NewStore builds a Store on top of an arbitrary acquire function.
func NewStore(acquire AcquireFunc) Store {
	return &store{acquire: acquire}
}

// NewPostgresStore returns a Store that checks connections out of a pgx pool.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return NewStore(func(ctx context.Context) (DBTX, func(), error) {
		conn, err := pool.Acquire(ctx)
		if err != nil {
			return nil, nil, err
		}
		return conn, conn.Release, nil
	})
}

func (s *store) Acquire(ctx context.Context) (Scope, error) {
	db, release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	if release == nil {
		release = func() {}
	}
	return &scope{db: db, release: release}, nil
}

type scope struct {
	db      DBTX
	release func()
	once    sync.Once
}

func (s *scope) Users() UserRepository {
	return NewUserRepository(s.db)
}

func (s *scope) Items() ItemRepository {
	return NewItemRepository(s.db)
}

func (s *scope) Release() {
	s.once.Do(s.release)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
