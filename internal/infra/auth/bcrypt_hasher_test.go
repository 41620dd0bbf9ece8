package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"usergate/config"
)

func newTestHasher() *bcryptHasher {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}}

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("Secr3t!")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "Secr3t!", hash)

	assert.True(t, hasher.Check("Secr3t!", hash))
	assert.False(t, hasher.Check("wrong", hash))
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	hasher := newTestHasher()

	first, err := hasher.Hash("Secr3t!")
	require.NoError(t, err)
	second, err := hasher.Hash("Secr3t!")
	require.NoError(t, err)

	// Random salt: same input, different digests, both verifiable.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("Secr3t!", first))
	assert.True(t, hasher.Check("Secr3t!", second))
}

func TestBcryptHasher_CheckMalformedHash(t *testing.T) {
	hasher := newTestHasher()

	// A malformed stored hash fails the comparison, it never panics or errors out.
	assert.False(t, hasher.Check("Secr3t!", ""))
	assert.False(t, hasher.Check("Secr3t!", "not-a-bcrypt-hash"))
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	hasher := NewBcryptHasher(nil).(*bcryptHasher)

	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}
