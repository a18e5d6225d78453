package submissions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-o-matic/internal/shared/storage/db"
)

// SQLRepo implements Repo over database/sql for SQLite or Postgres.
type SQLRepo struct {
	DB      *sql.DB
	Dialect db.Dialect
}

const submissionColumns = `id, timestamp, updated_at, job_description, job_url, company_name, job_title, mode,
application_type, recruiter_name, tailored_resume, cover_letter, company_details, tone, emphasis,
facts, tweaks, resume_pdf_path, notes, state, reviewer_notes`

// Create inserts a new submission.
func (r *SQLRepo) Create(ctx context.Context, s Submission) error {
	facts, err := encodeList(s.Facts)
	if err != nil {
		return err
	}
	tweaks, err := encodeList(s.Tweaks)
	if err != nil {
		return err
	}
	state := s.State
	if state == "" {
		state = StatePending
	}
	query := `INSERT INTO submissions (` + submissionColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.DB.ExecContext(ctx, r.Dialect.Rebind(query),
		s.ID,
		s.Timestamp,
		s.UpdatedAt,
		s.JobDescription,
		s.JobURL,
		s.CompanyName,
		s.JobTitle,
		string(s.Mode),
		s.ApplicationType,
		s.RecruiterName,
		s.TailoredResume,
		s.CoverLetter,
		s.CompanyDetails,
		s.Tone,
		s.Emphasis,
		facts,
		tweaks,
		s.ResumePDFPath,
		s.Notes,
		string(state),
		s.ReviewerNotes,
	)
	return err
}

// Get fetches a submission by ID.
func (r *SQLRepo) Get(ctx context.Context, id string) (Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = ?`
	s, err := scanSubmission(r.DB.QueryRowContext(ctx, r.Dialect.Rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Submission{}, ErrNotFound
		}
		return Submission{}, err
	}
	return s, nil
}

// List returns submissions ordered newest first.
func (r *SQLRepo) List(ctx context.Context, state State) ([]Submission, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if state == "" {
		rows, err = r.DB.QueryContext(ctx, `SELECT `+submissionColumns+` FROM submissions ORDER BY timestamp DESC, id DESC`)
	} else {
		query := `SELECT ` + submissionColumns + ` FROM submissions WHERE state = ? ORDER BY timestamp DESC, id DESC`
		rows, err = r.DB.QueryContext(ctx, r.Dialect.Rebind(query), string(state))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateOutputs overwrites the generated texts and bumps updated_at.
func (r *SQLRepo) UpdateOutputs(ctx context.Context, id, tailoredResume, coverLetter string, at time.Time) error {
	const query = `
UPDATE submissions
SET tailored_resume = ?, cover_letter = ?, updated_at = ?
WHERE id = ?`
	res, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(query), tailoredResume, coverLetter, at, id)
	return affectedOrNotFound(res, err)
}

// SetState updates the review state, and the reviewer notes when notes is non-nil.
func (r *SQLRepo) SetState(ctx context.Context, id string, state State, notes *string, at time.Time) error {
	var (
		res sql.Result
		err error
	)
	if notes == nil {
		const query = `UPDATE submissions SET state = ?, updated_at = ? WHERE id = ?`
		res, err = r.DB.ExecContext(ctx, r.Dialect.Rebind(query), string(state), at, id)
	} else {
		const query = `UPDATE submissions SET state = ?, reviewer_notes = ?, updated_at = ? WHERE id = ?`
		res, err = r.DB.ExecContext(ctx, r.Dialect.Rebind(query), string(state), *notes, at, id)
	}
	return affectedOrNotFound(res, err)
}

// Delete removes a submission. Missing IDs are not an error.
func (r *SQLRepo) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM submissions WHERE id = ?`), id)
	return err
}

func affectedOrNotFound(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (Submission, error) {
	var (
		s      Submission
		mode   string
		state  string
		facts  string
		tweaks string
	)
	err := row.Scan(
		&s.ID,
		&s.Timestamp,
		&s.UpdatedAt,
		&s.JobDescription,
		&s.JobURL,
		&s.CompanyName,
		&s.JobTitle,
		&mode,
		&s.ApplicationType,
		&s.RecruiterName,
		&s.TailoredResume,
		&s.CoverLetter,
		&s.CompanyDetails,
		&s.Tone,
		&s.Emphasis,
		&facts,
		&tweaks,
		&s.ResumePDFPath,
		&s.Notes,
		&state,
		&s.ReviewerNotes,
	)
	if err != nil {
		return Submission{}, err
	}
	s.Mode = Mode(mode)
	s.State = State(state)
	if s.Facts, err = decodeList(facts); err != nil {
		return Submission{}, fmt.Errorf("decode facts for %s: %w", s.ID, err)
	}
	if s.Tweaks, err = decodeList(tweaks); err != nil {
		return Submission{}, fmt.Errorf("decode tweaks for %s: %w", s.ID, err)
	}
	return s, nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(data), nil
}

func decodeList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

var _ Repo = (*SQLRepo)(nil)
