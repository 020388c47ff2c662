package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasherCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.MaxCost, NewBcryptHasher(bcrypt.MaxCost+5).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).cost)
}

func TestBcryptHasherHashAndVerify(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("secret123")
	require.NoError(t, err)
	second, err := hasher.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "salt must differ per call")
	assert.NotContains(t, first, "secret123")
	assert.True(t, hasher.Verify("secret123", first))
	assert.True(t, hasher.Verify("secret123", second))
	assert.False(t, hasher.Verify("secret124", first))
}

func TestBcryptHasherVerifyAcrossCosts(t *testing.T) {
	digest, err := NewBcryptHasher(bcrypt.MinCost).Hash("secret123")
	require.NoError(t, err)

	assert.True(t, NewBcryptHasher(bcrypt.MinCost+2).Verify("secret123", digest))
}

func TestBcryptHasherVerifyMalformedDigest(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	assert.False(t, hasher.Verify("secret123", ""))
	assert.False(t, hasher.Verify("secret123", "not-a-bcrypt-digest"))
	assert.False(t, hasher.Verify("secret123", "$2a$10$short"))
}
