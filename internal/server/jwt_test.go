package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kedhareswer/interviewai-navigator/internal/config"
	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

func testJWTService(secret string) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          secret,
		ExpirationHours: 1,
	})
}

func TestJWT_RoundTrip(t *testing.T) {
	svc := testJWTService("test-secret-at-least-32-characters-long")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, types.RoleHR)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
	assert.Equal(t, "hr", claims.GetRole())
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	token, err := testJWTService("test-secret-at-least-32-characters-long").GenerateToken(uuid.New(), types.RoleCandidate)
	require.NoError(t, err)

	_, err = testJWTService("another-secret-also-32-characters-xx").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_RejectsEmptyToken(t *testing.T) {
	_, err := testJWTService("test-secret-at-least-32-characters-long").ValidateToken("")
	assert.Error(t, err)
}

func TestJWT_RejectsExpiredToken(t *testing.T) {
	secret := "test-secret-at-least-32-characters-long"
	claims := &Claims{
		UserID: uuid.New(),
		Role:   "candidate",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = testJWTService(secret).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_RejectsUnsignedToken(t *testing.T) {
	claims := &Claims{UserID: uuid.New(), Role: "hr"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = testJWTService("test-secret-at-least-32-characters-long").ValidateToken(token)
	assert.Error(t, err)
}
