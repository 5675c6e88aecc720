package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolsail-backend/pkg/jwt"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTokenCmd_MintsVerifiableToken(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "cli-test-secret")

	out, err := runCLI(t, "token", "--user", "admin-1", "--email", "ops@toolsail.dev", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := jwt.NewManager("cli-test-secret").ValidateAccessToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, "ops@toolsail.dev", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenCmd_RejectsUnknownRole(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	_, err := runCLI(t, "token", "--user", "u1", "--role", "superuser")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role must be")
}

func TestTokenCmd_RequiresUser(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	_, err := runCLI(t, "token")
	require.Error(t, err)
}
