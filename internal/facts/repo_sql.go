package facts

import (
	"context"
	"database/sql"

	"resume-o-matic/internal/shared/storage/db"
)

// SQLRepo implements Repo over the facts and tweaks tables.
type SQLRepo struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func (r *SQLRepo) Create(ctx context.Context, item Item) error {
	table, err := item.Kind.table()
	if err != nil {
		return err
	}
	query := `INSERT INTO ` + table + ` (id, text, created_at) VALUES (?, ?, ?)`
	_, err = r.DB.ExecContext(ctx, r.Dialect.Rebind(query), item.ID, item.Text, item.CreatedAt)
	return err
}

func (r *SQLRepo) List(ctx context.Context, kind Kind) ([]Item, error) {
	table, err := kind.table()
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, `SELECT id, text, created_at FROM `+table+` ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Item{}
	for rows.Next() {
		item := Item{Kind: kind}
		if err := rows.Scan(&item.ID, &item.Text, &item.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLRepo) Update(ctx context.Context, item Item) error {
	table, err := item.Kind.table()
	if err != nil {
		return err
	}
	query := `UPDATE ` + table + ` SET text = ? WHERE id = ?`
	res, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(query), item.Text, item.ID)
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

func (r *SQLRepo) Delete(ctx context.Context, kind Kind, id string) error {
	table, err := kind.table()
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM `+table+` WHERE id = ?`), id)
	return err
}

var _ Repo = (*SQLRepo)(nil)
