package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		body, err := fs.ReadFile(migrations, f)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", f)
		assert.Contains(t, string(body), "-- +goose Down", f)
	}
}

func TestInitMigrationDeclaresClaimInvariants(t *testing.T) {
	body, err := fs.ReadFile(migrations, "migrations/00001_init.sql")
	require.NoError(t, err)

	sql := string(body)
	assert.True(t, strings.Contains(sql, "uq_claims_active_per_charity"))
	assert.True(t, strings.Contains(sql, "WHERE status IN ('pending', 'approved')"))
	assert.True(t, strings.Contains(sql, "uq_claims_one_approved"))
	assert.True(t, strings.Contains(sql, "REFERENCES claims (id) ON DELETE CASCADE"))
}

func TestMessageOrderComesFromDatabase(t *testing.T) {
	body, err := fs.ReadFile(migrations, "migrations/00002_message_order.sql")
	require.NoError(t, err)

	sql := string(body)
	assert.Contains(t, sql, "seq bigint GENERATED ALWAYS AS IDENTITY")
	assert.Contains(t, sql, "ON messages (claim_id, seq)")
}
