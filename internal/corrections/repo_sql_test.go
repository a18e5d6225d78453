package corrections

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"resume-o-matic/internal/shared/storage/db"
)

func TestSQLRepoCreateUsesPostgresPlaceholders(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	repo := &SQLRepo{DB: sqlDB, Dialect: db.DialectPostgres}
	c := Correction{
		ID:            "c1",
		Section:       "Summary",
		OriginalText:  "team player",
		CorrectedText: "collaborator",
		Context:       ContextResume,
		CreatedAt:     time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO corrections .* VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)`).
		WithArgs(c.ID, c.Section, c.OriginalText, c.CorrectedText, "resume", c.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestSQLRepoUpdateMissingReturnsNotFound(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	repo := &SQLRepo{DB: sqlDB, Dialect: db.DialectPostgres}
	mock.ExpectExec("UPDATE corrections").
		WithArgs("", "a", "b", "global", "nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), Correction{ID: "nope", OriginalText: "a", CorrectedText: "b", Context: ContextGlobal})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLRepoGetMapsNoRows(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	repo := &SQLRepo{DB: sqlDB, Dialect: db.DialectPostgres}
	mock.ExpectQuery(`SELECT .* FROM corrections WHERE id = \$1`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.Get(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
