package submissions

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

func sample(id string, at time.Time) Submission {
	return Submission{
		ID:              id,
		Timestamp:       at,
		UpdatedAt:       at,
		JobDescription:  "Build APIs in Go",
		CompanyName:     "Acme",
		JobTitle:        "Backend Engineer",
		Mode:            ModeResume,
		ApplicationType: ApplicationRecruiter,
		RecruiterName:   "Dana",
		TailoredResume:  "# Resume",
		CoverLetter:     "Dear Acme",
		Facts:           []string{"10 years of Go"},
		Tweaks:          []string{},
		State:           StatePending,
	}
}

func TestRepoContract(t *testing.T) {
	repos := map[string]Repo{
		"memory": NewMemoryRepo(),
		"sqlite": &SQLRepo{DB: dbtest.NewSQLite(t), Dialect: db.DialectSQLite},
	}
	base := time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC)

	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, repo.Create(ctx, sample("s1", base)))
			require.NoError(t, repo.Create(ctx, sample("s2", base.Add(time.Hour))))
			third := sample("s3", base.Add(2*time.Hour))
			third.State = StateApproved
			require.NoError(t, repo.Create(ctx, third))

			all, err := repo.List(ctx, "")
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, []string{"s3", "s2", "s1"}, []string{all[0].ID, all[1].ID, all[2].ID})

			pending, err := repo.List(ctx, StatePending)
			require.NoError(t, err)
			require.Len(t, pending, 2)

			got, err := repo.Get(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, []string{"10 years of Go"}, got.Facts)
			assert.Empty(t, got.Tweaks)
			assert.Equal(t, "Dana", got.RecruiterName)

			notes := "looks good"
			later := base.Add(3 * time.Hour)
			require.NoError(t, repo.SetState(ctx, "s1", StateApproved, &notes, later))
			require.NoError(t, repo.SetState(ctx, "s1", StateApplied, nil, later))
			got, err = repo.Get(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, StateApplied, got.State)
			assert.Equal(t, "looks good", got.ReviewerNotes)

			require.NoError(t, repo.UpdateOutputs(ctx, "s1", "# New", "Hello again", later.Add(time.Minute)))
			got, err = repo.Get(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, "# New", got.TailoredResume)
			assert.Equal(t, "Hello again", got.CoverLetter)
			assert.Equal(t, StateApplied, got.State)
			assert.Equal(t, "looks good", got.ReviewerNotes)
			assert.True(t, got.UpdatedAt.Equal(later.Add(time.Minute)))
			assert.True(t, got.Timestamp.Equal(base))

			assert.ErrorIs(t, repo.SetState(ctx, "missing", StateApproved, nil, later), ErrNotFound)
			assert.ErrorIs(t, repo.UpdateOutputs(ctx, "missing", "", "", later), ErrNotFound)
			_, err = repo.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, repo.Delete(ctx, "s2"))
			require.NoError(t, repo.Delete(ctx, "s2"))
			all, err = repo.List(ctx, "")
			require.NoError(t, err)
			assert.Len(t, all, 2)
		})
	}
}

func TestSQLRepoSetStateWithoutNotesLeavesColumnAlone(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	at := time.Now().UTC()
	mock.ExpectExec(`UPDATE submissions SET state = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs("rejected", at, "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &SQLRepo{DB: sqlDB, Dialect: db.DialectPostgres}
	require.NoError(t, repo.SetState(context.Background(), "s1", StateRejected, nil, at))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepoCreateSerializesSnapshots(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	s := sample("s1", time.Now().UTC())
	s.Tweaks = nil
	mock.ExpectExec("INSERT INTO submissions").
		WithArgs(
			s.ID, s.Timestamp, s.UpdatedAt, s.JobDescription, s.JobURL, s.CompanyName, s.JobTitle, "Resume",
			s.ApplicationType, s.RecruiterName, s.TailoredResume, s.CoverLetter, s.CompanyDetails, s.Tone, s.Emphasis,
			`["10 years of Go"]`, `[]`, s.ResumePDFPath, s.Notes, "pending", s.ReviewerNotes,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := &SQLRepo{DB: sqlDB, Dialect: db.DialectPostgres}
	require.NoError(t, repo.Create(context.Background(), s))
	require.NoError(t, mock.ExpectationsWereMet())
}
