package repositories

import (
	"strings"
	"testing"

	"charitybridge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// recordingDB builds statements without a server and keeps their SQL.
func recordingDB(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=127.0.0.1 user=test dbname=test sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	var statements []string
	record := func(tx *gorm.DB) { statements = append(statements, tx.Statement.SQL.String()) }
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:record_query", record))
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:record_create", record))
	return db, &statements
}

func TestMessageRepository_ListThreadOrdersBySequence(t *testing.T) {
	db, statements := recordingDB(t)

	_, err := NewMessageRepository().ListThread(db, "c0000000-0000-0000-0000-000000000001")
	require.NoError(t, err)

	require.NotEmpty(t, *statements)
	assert.Contains(t, (*statements)[0], "ORDER BY seq ASC")
	assert.NotContains(t, (*statements)[0], "created_at")
}

func TestMessageRepository_CreateLeavesOrderingToDatabase(t *testing.T) {
	db, statements := recordingDB(t)

	err := NewMessageRepository().Create(db, &models.Message{
		ClaimID:  "c0000000-0000-0000-0000-000000000001",
		SenderID: "11111111-1111-1111-1111-111111111111",
		Content:  "hello",
	})
	require.NoError(t, err)
	require.Len(t, *statements, 1)

	insert := (*statements)[0]
	columns, returning, _ := strings.Cut(insert, "VALUES")
	assert.NotContains(t, columns, `"seq"`)
	assert.NotContains(t, columns, `"created_at"`)
	assert.Contains(t, returning, `RETURNING`)
	assert.Contains(t, returning, `"created_at"`)
}
