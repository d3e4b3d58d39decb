package contextkeys

import (
	"context"

	"gorm.io/gorm"
)

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey is where the request-scoped *gorm.DB lives, both in the
// request context and under its string form in gin.Context.
const DBContextKey = contextKey("db")

// WithDB pins db (usually a transaction) to ctx. DBMiddleware prefers it over
// the pool, which lets a caller run a whole request inside one transaction.
func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, DBContextKey, db)
}

func DBFrom(ctx context.Context) (*gorm.DB, bool) {
	db, ok := ctx.Value(DBContextKey).(*gorm.DB)
	return db, ok && db != nil
}
