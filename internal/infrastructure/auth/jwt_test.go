package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "storefront-test",
	})
}

func TestGenerateTokenPair(t *testing.T) {
	svc := testJWTService()
	input := TokenInput{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Email:    "jane@example.com",
		IsStaff:  true,
	}

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
}

func TestValidateAccessToken(t *testing.T) {
	svc := testJWTService()
	input := TokenInput{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Email:    "jane@example.com",
		IsStaff:  true,
	}
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	t.Run("valid access token round-trips claims", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)

		assert.Equal(t, input.TenantID.String(), claims.TenantID)
		assert.Equal(t, input.UserID.String(), claims.UserID)
		assert.Equal(t, "jane@example.com", claims.Email)
		assert.True(t, claims.IsStaff)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)

		tenantID, err := claims.GetTenantUUID()
		require.NoError(t, err)
		assert.Equal(t, input.TenantID, tenantID)
	})

	t.Run("refresh token is rejected as access token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})

	t.Run("access token is rejected as refresh token", func(t *testing.T) {
		_, err := svc.ValidateRefreshToken(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "a-completely-different-secret-key",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 7 * 24 * time.Hour,
			Issuer:                 "storefront-test",
		})
		_, err := other.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "storefront-test",
	})

	pair, err := svc.GenerateTokenPair(TokenInput{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Email:    "jane@example.com",
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestClaimsRemainingTTL(t *testing.T) {
	svc := testJWTService()
	pair, err := svc.GenerateTokenPair(TokenInput{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Email:    "jane@example.com",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 10*time.Minute)
	assert.LessOrEqual(t, ttl, 15*time.Minute)
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	bl := NewInMemoryTokenBlacklist()

	t.Run("unknown jti is not revoked", func(t *testing.T) {
		revoked, err := bl.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("revoked jti is reported", func(t *testing.T) {
		require.NoError(t, bl.Revoke(ctx, "jti-1", time.Minute))

		revoked, err := bl.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("expired entries fall out", func(t *testing.T) {
		require.NoError(t, bl.Revoke(ctx, "jti-2", time.Nanosecond))
		time.Sleep(time.Millisecond)

		revoked, err := bl.IsRevoked(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("non-positive ttl is a no-op", func(t *testing.T) {
		require.NoError(t, bl.Revoke(ctx, "jti-3", 0))

		revoked, err := bl.IsRevoked(ctx, "jti-3")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
