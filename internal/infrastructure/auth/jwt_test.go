package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketry/backend/internal/infrastructure/config"
)

func newTestJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-at-least-32-bytes!!",
		Issuer:          "marketry-test",
		TokenExpiration: expiration,
	})
}

func TestJWTService(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)
		userID := uuid.New()

		token, expiresAt, err := svc.GenerateToken(userID, RoleInfluencer)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, RoleInfluencer, claims.Role)
		assert.Equal(t, "marketry-test", claims.Issuer)

		parsed, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("expired token", func(t *testing.T) {
		svc := newTestJWTService(-time.Minute)

		token, _, err := svc.GenerateToken(uuid.New(), RoleClient)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)
		other := NewJWTService(config.JWTConfig{
			Secret:          "a-completely-different-signing-key!!",
			Issuer:          "marketry-test",
			TokenExpiration: time.Hour,
		})

		token, _, err := svc.GenerateToken(uuid.New(), RoleClient)
		require.NoError(t, err)

		_, err = other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)

		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
