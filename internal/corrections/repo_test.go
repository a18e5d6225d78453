package corrections

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-o-matic/internal/shared/storage/db"
	"resume-o-matic/internal/shared/storage/db/dbtest"
)

func repoImplementations(t *testing.T) map[string]Repo {
	return map[string]Repo{
		"memory": NewMemoryRepo(),
		"sqlite": &SQLRepo{DB: dbtest.NewSQLite(t), Dialect: db.DialectSQLite},
	}
}

func TestRepoContract(t *testing.T) {
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	for name, repo := range repoImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			rows := []Correction{
				{ID: "c1", Section: "Summary", OriginalText: "team player", CorrectedText: "collaborator", Context: ContextResume, CreatedAt: base},
				{ID: "c2", Section: "Opening", OriginalText: "Dear Sir", CorrectedText: "Dear Hiring Team", Context: ContextCover, CreatedAt: base.Add(time.Minute)},
				{ID: "c3", Section: "Skills", OriginalText: "Golang", CorrectedText: "Go", Context: ContextResume, CreatedAt: base.Add(2 * time.Minute)},
			}
			for _, c := range rows {
				require.NoError(t, repo.Create(ctx, c))
			}

			resume, err := repo.List(ctx, ContextResume)
			require.NoError(t, err)
			require.Len(t, resume, 2)
			assert.Equal(t, "c1", resume[0].ID)
			assert.Equal(t, "c3", resume[1].ID)

			all, err := repo.List(ctx, "")
			require.NoError(t, err)
			assert.Len(t, all, 3)

			got, err := repo.Get(ctx, "c2")
			require.NoError(t, err)
			assert.Equal(t, "Dear Hiring Team", got.CorrectedText)
			assert.True(t, got.CreatedAt.Equal(base.Add(time.Minute)))

			edited := got
			edited.CorrectedText = "Hello"
			edited.Context = ContextGlobal
			require.NoError(t, repo.Update(ctx, edited))
			got, err = repo.Get(ctx, "c2")
			require.NoError(t, err)
			assert.Equal(t, "Hello", got.CorrectedText)
			assert.Equal(t, ContextGlobal, got.Context)

			err = repo.Update(ctx, Correction{ID: "missing", Context: ContextGlobal})
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = repo.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, repo.Delete(ctx, "c1"))
			require.NoError(t, repo.Delete(ctx, "c1"))
			resume, err = repo.List(ctx, ContextResume)
			require.NoError(t, err)
			require.Len(t, resume, 1)
			assert.Equal(t, "c3", resume[0].ID)
		})
	}
}
