package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabibi/patient-api/internal/model"
)

func testProfile() *model.Profile {
	return &model.Profile{
		ID:    uuid.New(),
		Email: "user@example.com",
		Role:  model.UserRolePatient,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		Secret:             "access-secret",
		RefreshSecret:      "refresh-secret",
		ExpiryHours:        1,
		RefreshExpiryHours: 24,
	})
	profile := testProfile()

	token, err := svc.GenerateAccessToken(profile)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, claims.UserID)
	assert.Equal(t, profile.Email, claims.Email)
	assert.Equal(t, model.UserRolePatient, claims.Role)
}

func TestRefreshTokenUsesSeparateSecret(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		Secret:             "access-secret",
		RefreshSecret:      "refresh-secret",
		ExpiryHours:        1,
		RefreshExpiryHours: 24,
	})
	profile := testProfile()

	refresh, err := svc.GenerateRefreshToken(profile)
	require.NoError(t, err)

	_, err = svc.ValidateToken(refresh)
	assert.Error(t, err, "refresh tokens must not validate as access tokens")

	claims, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, claims.UserID)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		Secret:      "access-secret",
		ExpiryHours: -1,
	})

	token, err := svc.GenerateAccessToken(testProfile())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "access-secret", ExpiryHours: 1})
	other := NewJWTService(JWTConfig{Secret: "different-secret", ExpiryHours: 1})

	token, err := other.GenerateAccessToken(testProfile())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
