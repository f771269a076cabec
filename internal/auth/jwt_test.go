package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coparent/internal/config"
)

const userID = "7d9f1c3e-2b4a-4f6e-9c8d-1a2b3c4d5e6f"

func TestNewVerifier_RequiresSecret(t *testing.T) {
	_, err := NewVerifier(config.AuthConfig{})
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestVerify(t *testing.T) {
	v, err := NewVerifier(config.AuthConfig{SecretKey: "s3cret", Issuer: "calndr"})
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		tok, err := Sign("s3cret", "calndr", userID, time.Hour)
		require.NoError(t, err)
		got, err := v.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{"wrong secret", func(t *testing.T) string {
			tok, err := Sign("other", "calndr", userID, time.Hour)
			require.NoError(t, err)
			return tok
		}},
		{"expired", func(t *testing.T) string {
			tok, err := Sign("s3cret", "calndr", userID, -time.Hour)
			require.NoError(t, err)
			return tok
		}},
		{"wrong issuer", func(t *testing.T) string {
			tok, err := Sign("s3cret", "someone-else", userID, time.Hour)
			require.NoError(t, err)
			return tok
		}},
		{"subject not a uuid", func(t *testing.T) string {
			tok, err := Sign("s3cret", "calndr", "alex@example.com", time.Hour)
			require.NoError(t, err)
			return tok
		}},
		{"no expiry", func(t *testing.T) string {
			tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: userID, Issuer: "calndr"}).SignedString([]byte("s3cret"))
			require.NoError(t, err)
			return tok
		}},
		{"garbage", func(t *testing.T) string { return "not-a-jwt" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token(t))
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
