package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingDatabaseURL is returned when neither DATABASE_URL nor DEV_DATABASE_URL is set.
var ErrMissingDatabaseURL = errors.New("no database URL configured: set DATABASE_URL or DEV_DATABASE_URL")

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Events   EventsConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr          string
	Password      string
	DB            int
	TimeoutMillis int
}

// Timeout bounds dialing, reads and writes against Redis.
func (r RedisConfig) Timeout() time.Duration {
	if r.TimeoutMillis <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(r.TimeoutMillis) * time.Millisecond
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
	File  string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	JWTAlgorithm          string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// EventsConfig controls where audit events are streamed.
type EventsConfig struct {
	StreamKey    string
	StreamMaxLen int64
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	dsn := getEnv("DATABASE_URL", os.Getenv("DEV_DATABASE_URL"))
	if dsn == "" {
		return nil, ErrMissingDatabaseURL
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "modular-api"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("HOST", "0.0.0.0"),
			Port:                  getEnv("PORT", "8000"),
			Version:               getEnv("APP_VERSION", "0.1.0"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            dsn,
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:          getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:      os.Getenv("REDIS_PASSWORD"),
			DB:            redisDB,
			TimeoutMillis: getEnvAsInt("REDIS_TIMEOUT_MS", 500),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  os.Getenv("LOG_FILE"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("JWT_SECRET_KEY", "your_secret_key_here"),
			JWTAlgorithm:          getEnv("JWT_ALGORITHM", "HS256"),
			AccessTokenTTLMinutes: getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Events: EventsConfig{
			StreamKey:    getEnv("EVENTS_STREAM", "auth:events"),
			StreamMaxLen: int64(getEnvAsInt("EVENTS_STREAM_MAXLEN", 10000)),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the lifetime of issued access tokens.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	if a.AccessTokenTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
