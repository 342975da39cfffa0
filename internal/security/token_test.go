package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestTokenManager(t *testing.T) {
	m := NewTokenManager(secret, time.Minute, time.Hour)

	t.Run("Access token round trip", func(t *testing.T) {
		tok, err := m.GenerateAccessToken(3, 1, "admin", true)
		require.NoError(t, err)

		claims, err := m.ValidateToken(tok)
		require.NoError(t, err)
		assert.Equal(t, int32(3), claims.UserID)
		assert.Equal(t, int32(1), claims.OrgID)
		assert.Equal(t, "admin", claims.Username)
		assert.True(t, claims.IsAdmin)
		assert.Equal(t, TokenTypeAccess, claims.Type)
	})

	t.Run("Refresh token type", func(t *testing.T) {
		tok, err := m.GenerateRefreshToken(3, 1, "admin", true)
		require.NoError(t, err)
		claims, err := m.ValidateToken(tok)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.Type)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other := NewTokenManager("ffffffffffffffffffffffffffffffff", time.Minute, time.Hour)
		tok, err := other.GenerateAccessToken(3, 1, "admin", false)
		require.NoError(t, err)
		_, err = m.ValidateToken(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		claims := UserClaims{
			UserID: 3,
			OrgID:  1,
			Type:   TokenTypeAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		_, err = m.ValidateToken(tok)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Missing organization", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, UserClaims{UserID: 3, Type: TokenTypeAccess}).SignedString([]byte(secret))
		require.NoError(t, err)
		_, err = m.ValidateToken(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
