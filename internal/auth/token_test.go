package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, secret, name, subject string, expiry time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
		Name: name,
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyReturnsNameClaim(t *testing.T) {
	v := NewVerifier("secret")

	actor, err := v.Verify(mintToken(t, "secret", "Alice", "alice@example.org", time.Now().Add(time.Hour)))

	require.NoError(t, err)
	assert.Equal(t, "Alice", actor)
}

func TestVerifyFallsBackToSubject(t *testing.T) {
	v := NewVerifier("secret")

	actor, err := v.Verify(mintToken(t, "secret", "", "alice@example.org", time.Now().Add(time.Hour)))

	require.NoError(t, err)
	assert.Equal(t, "alice@example.org", actor)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	v := NewVerifier("secret")

	_, err := v.Verify(mintToken(t, "other", "Alice", "", time.Now().Add(time.Hour)))

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	v := NewVerifier("secret")

	_, err := v.Verify(mintToken(t, "secret", "Alice", "", time.Now().Add(-time.Hour)))

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	v := NewVerifier("secret")

	_, err := v.Verify("not-a-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}
