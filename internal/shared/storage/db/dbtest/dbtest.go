// Package dbtest opens migrated in-memory SQLite databases for repository tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"resume-o-matic/internal/shared/storage/db"
)

// NewSQLite returns a migrated in-memory SQLite database closed at test cleanup.
func NewSQLite(t testing.TB) *sql.DB {
	t.Helper()
	ctx := context.Background()
	sqlDB, err := db.Connect(ctx, db.DialectSQLite, ":memory:", db.DefaultSQLiteOptions())
	if err != nil {
		t.Fatalf("connect sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.RunMigrations(ctx, sqlDB, db.DialectSQLite); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return sqlDB
}
