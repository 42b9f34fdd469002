package util

import (
	"testing"
	"time"

	"classhub_backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests-only-123"

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{
		Email: "student@example.com",
		Role:  model.Student,
	}
	user.ID = 42

	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
	assert.Equal(t, "student@example.com", claims.Email)
}

func TestParseJWTWrongSecret(t *testing.T) {
	user := &model.User{Email: "a@b.com", Role: model.Teacher}
	user.ID = 1

	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "another-secret-entirely-different-000")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	user := &model.User{Email: "a@b.com", Role: model.Student}
	user.ID = 1

	token, err := GenerateJWT(user, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestParseJWTWrongIssuer(t *testing.T) {
	claims := &Claims{
		UserID: 1,
		Role:   model.Student,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.Error(t, err)
}

func TestGenerateJWTSetsIssuer(t *testing.T) {
	user := &model.User{Email: "a@b.com", Role: model.Student}
	user.ID = 5

	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "classhub", claims.Issuer)
	assert.Equal(t, "5", claims.Subject)
}
