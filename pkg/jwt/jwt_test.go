package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.GenerateAccessToken("u-1", "admin@toolsail.dev", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "admin@toolsail.dev", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a").GenerateAccessToken("u-1", "", "user", time.Hour)
	require.NoError(t, err)

	_, err = NewManager("secret-b").ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsExpired(t *testing.T) {
	m := NewManager("test-secret")
	token, err := m.GenerateAccessToken("u-1", "", "user", -time.Minute)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}
