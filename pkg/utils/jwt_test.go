package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundtrip(t *testing.T) {
	SetSecret("test-secret")

	token, err := GenerateJWT("u1", "ana@test.dev", "Ana", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims["sub"])
	assert.Equal(t, "ana@test.dev", claims["email"])
	assert.Equal(t, "Ana", claims["name"])
	assert.Equal(t, "admin", claims["role"])
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	SetSecret("test-secret")

	token, err := GenerateJWT("u1", "ana@test.dev", "Ana", "user", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	SetSecret("secret-a")
	token, err := GenerateJWT("u1", "ana@test.dev", "Ana", "user", time.Hour)
	require.NoError(t, err)

	SetSecret("secret-b")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestExtractClaims(t *testing.T) {
	SetSecret("test-secret")
	token, err := GenerateJWT("u1", "ana@test.dev", "Ana", "user", time.Hour)
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		claims, err := ExtractClaims(r)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("cookie fallback", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "accessToken", Value: token})

		claims, err := ExtractClaims(r)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
	})

	t.Run("missing token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := ExtractClaims(r)
		assert.Error(t, err)
	})
}
