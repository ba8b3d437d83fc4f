package auth

import (
	"errors"
	"testing"
	"time"

	"yamdb/internal/microservices/http-api/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(secret, time.Hour)
	user := &models.User{ID: "7a1c5f7e-55d4-4b59-9b0e-7f8f7c4c1a11", Username: "alice"}

	token, err := issuer.Issue(user)
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID())
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenIssuer_Expired(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := start
	issuer := NewTokenIssuer(secret, time.Hour).WithClock(func() time.Time { return now })

	token, err := issuer.Issue(&models.User{ID: "u-1", Username: "alice"})
	require.NoError(t, err)

	now = start.Add(2 * time.Hour)
	_, err = issuer.Verify(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	token, err := NewTokenIssuer(secret, time.Hour).Issue(&models.User{ID: "u-1"})
	require.NoError(t, err)

	_, err = NewTokenIssuer("another-secret-another-secret-xx", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		TokenType: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "yamdb",
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewTokenIssuer(secret, time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Garbage(t *testing.T) {
	_, err := NewTokenIssuer(secret, time.Hour).Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
