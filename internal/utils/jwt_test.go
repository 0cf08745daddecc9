package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func TestNewAccessTokenRoundTrip(t *testing.T) {
	signed, exp, err := NewAccessToken(testSecret, 42, "alice", "manager", 15)
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := ParseToken(signed, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "manager", claims.Role)
}

func TestNewRefreshTokenOmitsRole(t *testing.T) {
	signed, _, err := NewRefreshToken("refresh-secret", 7, "bob", 7)
	assert.NoError(t, err)

	claims, err := ParseToken(signed, "refresh-secret")
	assert.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Empty(t, claims.Role)
}

func TestParseTokenExpired(t *testing.T) {
	// A negative TTL produces a token that is already expired.
	signed, _, err := NewAccessToken(testSecret, 1, "alice", "user", -1)
	assert.NoError(t, err)

	_, err = ParseToken(signed, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseTokenInvalid(t *testing.T) {
	signed, _, err := NewAccessToken(testSecret, 1, "alice", "user", 15)
	assert.NoError(t, err)

	// Wrong secret and garbage both fail as invalid, not expired.
	_, err = ParseToken(signed, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ParseToken("not.a.jwt", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSecretsAreNotInterchangeable(t *testing.T) {
	access, _, err := NewAccessToken("access-secret", 1, "alice", "user", 15)
	assert.NoError(t, err)

	_, err = ParseToken(access, "refresh-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
