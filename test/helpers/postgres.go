//go:build integration

package helpers

import (
	"context"
	"fmt"
	"log"

	"charitybridge/database"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// TestDB wraps a throwaway Postgres container with the schema applied.
type TestDB struct {
	Container *tcpostgres.PostgresContainer
	DSN       string
	DB        *gorm.DB
}

// StartPostgres поднимает контейнер и прогоняет миграции
func StartPostgres(ctx context.Context) (*TestDB, error) {
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("charitybridge_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, fmt.Errorf("postgres connection string: %w", err)
	}

	db, err := database.Connect(ctx, dsn, database.Options{MaxOpenConns: 20, MaxIdleConns: 5})
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		database.Close(db)
		_ = testcontainers.TerminateContainer(container)
		return nil, err
	}

	log.Printf("✅ [Helper] Postgres container ready (%s)", dsn)
	return &TestDB{Container: container, DSN: dsn, DB: db}, nil
}

func (d *TestDB) Close() {
	database.Close(d.DB)
	if err := testcontainers.TerminateContainer(d.Container); err != nil {
		log.Printf("failed to terminate postgres container: %v", err)
	}
}
