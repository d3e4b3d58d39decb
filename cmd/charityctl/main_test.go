package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"charitybridge/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jwt:\n  secret: ctl-secret\n  ttl: 5\n"), 0o600))
	return path
}

func TestTokenCommand_IssuesParsableToken(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--config", writeConfig(t),
		"token",
		"--user", "0b7f2c1e-4f43-4a6a-9a51-8c9b7c5d2e10",
		"--role", "charity",
		"--email", "food@bank.org",
	})

	require.NoError(t, cmd.Execute())

	claims, err := auth.ParseToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "0b7f2c1e-4f43-4a6a-9a51-8c9b7c5d2e10", claims.UserID)
	assert.Equal(t, "charity", claims.Role)
	assert.Equal(t, "food@bank.org", claims.Email)
}

func TestTokenCommand_RejectsBadInput(t *testing.T) {
	for _, args := range [][]string{
		{"token", "--role", "volunteer"},
		{"token", "--user", "not-a-uuid"},
	} {
		cmd := newRootCommand()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs(append([]string{"--config", writeConfig(t)}, args...))
		assert.Error(t, cmd.Execute(), args)
	}
}
