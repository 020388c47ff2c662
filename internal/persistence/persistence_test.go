package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/modular-api/internal/config"
)

func TestEmbeddedMigrationsPresent(t *testing.T) {
	entries, err := migrationFS.ReadDir(migrationsDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "00001_create_users.sql", entries[0].Name())

	users, err := migrationFS.ReadFile("migrations/00001_create_users.sql")
	require.NoError(t, err)
	assert.Contains(t, string(users), "email TEXT NOT NULL UNIQUE")
}

func TestApplyMigrations(t *testing.T) {
	original := gooseUp
	t.Cleanup(func() { gooseUp = original })

	var gotDir string
	gooseUp = func(_ context.Context, _ *sql.DB, dir string) error {
		gotDir = dir
		return nil
	}
	require.NoError(t, applyMigrations(context.Background(), nil, zap.NewNop()))
	assert.Equal(t, migrationsDir, gotDir)

	gooseUp = func(context.Context, *sql.DB, string) error { return errors.New("boom") }
	require.Error(t, applyMigrations(context.Background(), nil, zap.NewNop()))
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	require.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestNewPostgresRequiresDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.Error(t, err)

	var p *Postgres
	require.Error(t, p.Ping(context.Background()))
	assert.Nil(t, p.PoolHandle())
	p.Close()
}

func TestRedisPing(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	r := NewRedis(config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	defer r.Close()
	require.NoError(t, r.Ping(context.Background()))

	var missing *Redis
	require.Error(t, missing.Ping(context.Background()))
}

func TestRedisFailsFastWhenUnreachable(t *testing.T) {
	cfg := config.RedisConfig{Addr: "127.0.0.1:1", TimeoutMillis: 100}
	opts := redisOptions(cfg)
	assert.Equal(t, -1, opts.MaxRetries)
	assert.Equal(t, 100*time.Millisecond, opts.DialTimeout)
	assert.Equal(t, 100*time.Millisecond, opts.WriteTimeout)

	r := NewRedis(cfg, zap.NewNop())
	defer r.Close()

	started := time.Now()
	require.Error(t, r.Ping(context.Background()))
	assert.Less(t, time.Since(started), time.Second)
}
