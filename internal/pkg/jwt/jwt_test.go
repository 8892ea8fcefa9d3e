package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	SetSecret("test-secret")

	token, err := SignWithOptions("user-1", time.Hour, SignOptions{SessionID: "sess-1"})
	require.NoError(t, err)

	claims, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestParseExpired(t *testing.T) {
	SetSecret("test-secret")

	token, err := Sign("user-1", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token)
	assert.ErrorIs(t, err, jwtlib.ErrTokenExpired)
}

func TestParseWrongSecret(t *testing.T) {
	SetSecret("first-secret")
	token, err := Sign("user-1", time.Hour)
	require.NoError(t, err)

	SetSecret("second-secret")
	_, err = Parse(token)
	assert.Error(t, err)
}

func TestSignRequiresUser(t *testing.T) {
	_, err := Sign("", time.Hour)
	assert.Error(t, err)
}
