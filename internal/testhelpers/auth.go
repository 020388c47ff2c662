package testhelpers

import (
	"strings"
	"time"

	"github.com/spec-kit/modular-api/internal/auth"
	"github.com/spec-kit/modular-api/internal/config"
)

// HasherStub provides deterministic, fast hashing for tests.
type HasherStub struct {
	HashFn func(string) (string, error)
}

// Hash returns a predictable digest for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Verify matches digests produced by Hash.
func (h HasherStub) Verify(password, digest string) bool {
	return strings.HasPrefix(digest, "hash:") && digest == "hash:"+password
}

// AuthConfig returns auth settings suitable for tests.
func AuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:             "test-secret",
		JWTAlgorithm:          "HS256",
		AccessTokenTTLMinutes: 30,
		BcryptCost:            4,
	}
}

// NewTokenCodec builds a codec with test settings and an optional clock.
func NewTokenCodec(now func() time.Time) *auth.TokenCodec {
	opts := []auth.CodecOption{}
	if now != nil {
		opts = append(opts, auth.WithClock(now))
	}
	codec, err := auth.NewTokenCodec(AuthConfig(), opts...)
	if err != nil {
		panic(err)
	}
	return codec
}
