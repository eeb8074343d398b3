package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anmol/campushire/internal/app/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       7,
		Email:    "jane@example.com",
		RoleType: models.RoleTeacher,
	}
}

func TestGenerateTokenPair(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, 3600, expiresIn)
	assert.Equal(t, 86400, refreshExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "TEACHER", claims.RoleType)
	assert.Equal(t, "test", claims.Issuer)
}

func TestValidateToken(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})

	t.Run("rejects empty token", func(t *testing.T) {
		_, err := svc.ValidateAndExtractClaims("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		_, err := svc.ValidateAndExtractClaims("not.a.token")
		assert.Error(t, err)
	})

	t.Run("rejects token signed with another key", func(t *testing.T) {
		other := NewJWTService(JWTConfig{
			SecretKey:       "different-secret",
			AccessTokenExp:  time.Hour,
			RefreshTokenExp: 24 * time.Hour,
			TokenIssuer:     "test",
		})
		accessToken, _, _, _, err := other.GenerateTokenPair(testUser())
		require.NoError(t, err)

		_, err = svc.ValidateAndExtractClaims(accessToken)
		assert.Error(t, err)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewJWTService(JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenExp:  -time.Minute,
			RefreshTokenExp: 24 * time.Hour,
			TokenIssuer:     "test",
		})
		accessToken, _, _, _, err := expired.GenerateTokenPair(testUser())
		require.NoError(t, err)

		_, err = svc.ValidateAndExtractClaims(accessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestGenerateTokenPairUniqueRefreshTokens(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})

	_, first, _, _, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)
	_, second, _, _, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	// Raw tokens without the Bearer prefix pass through unchanged
	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}
