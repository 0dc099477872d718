package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenRoundTrip(t *testing.T) {
	j := NewJWTToken(&Config{SigningKey: "test-signing-key"})

	token, err := j.CreateToken(TokenObject{UserID: "8d1f", Email: "ada@example.com", Role: RoleAdmin}, time.Hour)
	require.NoError(t, err)

	user, err := j.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "8d1f", user.UserID)
	assert.True(t, user.IsAdmin())
}

func TestJWTTokenRejectsForeignKey(t *testing.T) {
	token, err := NewJWTToken(&Config{SigningKey: "one"}).CreateToken(TokenObject{UserID: "x"}, time.Hour)
	require.NoError(t, err)

	_, err = NewJWTToken(&Config{SigningKey: "two"}).VerifyToken(token)
	assert.Error(t, err)
}

func TestJWTTokenRejectsExpired(t *testing.T) {
	j := NewJWTToken(&Config{SigningKey: "k"})
	token, err := j.CreateToken(TokenObject{UserID: "x"}, -time.Minute)
	require.NoError(t, err)

	_, err = j.VerifyToken(token)
	assert.Error(t, err)
}
