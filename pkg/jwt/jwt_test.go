package jwt

import (
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kliniki/clinic-api/config"
)

func newService(expiry time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{Secret: "test-secret", Expiry: expiry})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newService(time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "annap", []string{"patient"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "annap", claims.Username)
	assert.Equal(t, []string{"patient"}, claims.Roles)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newService(-time.Minute)

	token, err := svc.GenerateToken(uuid.New(), "annap", []string{"patient"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwtlib.ErrTokenExpired))
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newService(time.Hour)
	token, err := svc.GenerateToken(uuid.New(), "annap", []string{"patient"})
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "different-secret", Expiry: time.Hour})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Malformed(t *testing.T) {
	svc := newService(time.Hour)
	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwtlib.ErrTokenMalformed))
}
