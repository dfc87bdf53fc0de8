package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString, err := GenerateJWT("user-123", "admin")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims["userId"])
	assert.Equal(t, "admin", claims["role"])
	assert.NotNil(t, claims["exp"])
}
