package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentregistry/internal/app/models"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "studentregistry.test",
		TokenAudience:   "studentregistry.clients",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Email:    "user@registry.local",
		RoleType: models.RoleAdmin,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(time.Hour)

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	assert.Equal(t, 3600, expiresIn)
	assert.Equal(t, 86400, refreshExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@registry.local", claims.Email)
	assert.Equal(t, "Admin", claims.RoleType)
	assert.Equal(t, "studentregistry.test", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService(-time.Minute)

	accessToken, _, _, _, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(accessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	other := NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "someone-else",
		TokenAudience:   "studentregistry.clients",
	})

	accessToken, _, _, _, err := other.GenerateTokenPair(testUser())
	require.NoError(t, err)

	svc := newTestService(time.Hour)
	_, err = svc.ValidateToken(accessToken)
	assert.Error(t, err)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	other := NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "studentregistry.test",
		TokenAudience:   "another-audience",
	})

	accessToken, _, _, _, err := other.GenerateTokenPair(testUser())
	require.NoError(t, err)

	svc := newTestService(time.Hour)
	_, err = svc.ValidateToken(accessToken)
	assert.Error(t, err)
}

func TestValidateToken_WrongKey(t *testing.T) {
	other := NewJWTService(JWTConfig{
		SecretKey:       "a-different-key",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "studentregistry.test",
		TokenAudience:   "studentregistry.clients",
	})

	accessToken, _, _, _, err := other.GenerateTokenPair(testUser())
	require.NoError(t, err)

	svc := newTestService(time.Hour)
	_, err = svc.ValidateToken(accessToken)
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("abc.def.ghi")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
