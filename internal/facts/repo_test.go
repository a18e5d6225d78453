package facts

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-o-matic/internal/shared/storage/db"
	"resume-o-matic/internal/shared/storage/db/dbtest"
)

func TestRepoKeepsKindsSeparate(t *testing.T) {
	repos := map[string]Repo{
		"memory": NewMemoryRepo(),
		"sqlite": &SQLRepo{DB: dbtest.NewSQLite(t), Dialect: db.DialectSQLite},
	}
	base := time.Date(2026, time.May, 5, 8, 0, 0, 0, time.UTC)
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, repo.Create(ctx, Item{ID: "f1", Kind: KindFact, Text: "10 years of Go", CreatedAt: base}))
			require.NoError(t, repo.Create(ctx, Item{ID: "f2", Kind: KindFact, Text: "Led a team of 6", CreatedAt: base.Add(time.Second)}))
			require.NoError(t, repo.Create(ctx, Item{ID: "t1", Kind: KindTweak, Text: "Emphasize remote work", CreatedAt: base}))

			facts, err := repo.List(ctx, KindFact)
			require.NoError(t, err)
			require.Len(t, facts, 2)
			assert.Equal(t, "10 years of Go", facts[0].Text)

			tweaks, err := repo.List(ctx, KindTweak)
			require.NoError(t, err)
			require.Len(t, tweaks, 1)

			require.NoError(t, repo.Update(ctx, Item{ID: "t1", Kind: KindTweak, Text: "Emphasize hybrid work"}))
			assert.ErrorIs(t, repo.Update(ctx, Item{ID: "f1", Kind: KindTweak, Text: "x"}), ErrNotFound)

			require.NoError(t, repo.Delete(ctx, KindFact, "f1"))
			require.NoError(t, repo.Delete(ctx, KindFact, "f1"))
			facts, err = repo.List(ctx, KindFact)
			require.NoError(t, err)
			require.Len(t, facts, 1)
			assert.Equal(t, "f2", facts[0].ID)
		})
	}
}

func TestRepoRejectsUnknownKind(t *testing.T) {
	_, err := NewMemoryRepo().List(context.Background(), Kind("hobby"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSQLRepoPostgresInsert(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	now := time.Now().UTC()
	mock.ExpectExec(`INSERT INTO tweaks \(id, text, created_at\) VALUES \(\$1, \$2, \$3\)`).
		WithArgs("t1", "Be concise", now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := &SQLRepo{DB: sqlDB, Dialect: db.DialectPostgres}
	require.NoError(t, repo.Create(context.Background(), Item{ID: "t1", Kind: KindTweak, Text: "Be concise", CreatedAt: now}))
	require.NoError(t, mock.ExpectationsWereMet())
}
