package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/modular-api/internal/config"
)

// ErrInvalidToken covers every reason a bearer token is refused.
var ErrInvalidToken = errors.New("invalid token")

var signingMethods = map[string]*jwt.SigningMethodHMAC{
	jwt.SigningMethodHS256.Alg(): jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Alg(): jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Alg(): jwt.SigningMethodHS512,
}

// Claims describes JWT payload. Subject carries the user's email.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies signed access tokens. The algorithm is fixed
// at construction; the token header never selects it.
type TokenCodec struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	now    func() time.Time
}

// CodecOption customizes a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock replaces the wall clock used for issuing and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

// NewTokenCodec builds a codec from auth configuration.
func NewTokenCodec(cfg config.AuthConfig, opts ...CodecOption) (*TokenCodec, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	method, ok := signingMethods[cfg.JWTAlgorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", cfg.JWTAlgorithm)
	}

	codec := &TokenCodec{
		secret: []byte(cfg.JWTSecret),
		method: method,
		ttl:    cfg.AccessTokenTTL(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(codec)
	}
	return codec, nil
}

// TTL returns the default token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// IssueDefault signs a token for subject with the configured lifetime.
func (c *TokenCodec) IssueDefault(subject string) (string, time.Time, error) {
	return c.Issue(subject, c.ttl)
}

// Issue signs a token for subject that expires ttl from now.
func (c *TokenCodec) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	now := c.now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(c.method, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates signature, encoding and expiry and returns the claims.
func (c *TokenCodec) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}
