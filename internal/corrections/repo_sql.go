package corrections

import (
	"context"
	"database/sql"
	"errors"

	"resume-o-matic/internal/shared/storage/db"
)

// SQLRepo implements Repo over database/sql for SQLite or Postgres.
type SQLRepo struct {
	DB      *sql.DB
	Dialect db.Dialect
}

const selectColumns = `id, section, original_text, corrected_text, context, created_at`

// Create inserts a new correction.
func (r *SQLRepo) Create(ctx context.Context, c Correction) error {
	const query = `
INSERT INTO corrections (id, section, original_text, corrected_text, context, created_at)
VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(query),
		c.ID,
		c.Section,
		c.OriginalText,
		c.CorrectedText,
		string(c.Context),
		c.CreatedAt,
	)
	return err
}

// Get fetches a correction by ID.
func (r *SQLRepo) Get(ctx context.Context, id string) (Correction, error) {
	query := `SELECT ` + selectColumns + ` FROM corrections WHERE id = ?`
	c, err := scanCorrection(r.DB.QueryRowContext(ctx, r.Dialect.Rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Correction{}, ErrNotFound
		}
		return Correction{}, err
	}
	return c, nil
}

// List returns corrections ordered by creation time.
func (r *SQLRepo) List(ctx context.Context, scope Context) ([]Correction, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if scope == "" {
		query := `SELECT ` + selectColumns + ` FROM corrections ORDER BY created_at ASC, id ASC`
		rows, err = r.DB.QueryContext(ctx, query)
	} else {
		query := `SELECT ` + selectColumns + ` FROM corrections WHERE context = ? ORDER BY created_at ASC, id ASC`
		rows, err = r.DB.QueryContext(ctx, r.Dialect.Rebind(query), string(scope))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Correction{}
	for rows.Next() {
		c, err := scanCorrection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update rewrites the editable fields of a correction.
func (r *SQLRepo) Update(ctx context.Context, c Correction) error {
	const query = `
UPDATE corrections
SET section = ?, original_text = ?, corrected_text = ?, context = ?
WHERE id = ?`
	res, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(query),
		c.Section,
		c.OriginalText,
		c.CorrectedText,
		string(c.Context),
		c.ID,
	)
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

// Delete removes a correction. Missing IDs are not an error.
func (r *SQLRepo) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM corrections WHERE id = ?`), id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCorrection(row rowScanner) (Correction, error) {
	var (
		c     Correction
		scope string
	)
	if err := row.Scan(&c.ID, &c.Section, &c.OriginalText, &c.CorrectedText, &scope, &c.CreatedAt); err != nil {
		return Correction{}, err
	}
	c.Context = Context(scope)
	return c, nil
}

var _ Repo = (*SQLRepo)(nil)
