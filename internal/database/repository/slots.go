package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/jask/gymscore/internal/database"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// SlotRepo handles string-valued storage slots.
type SlotRepo struct {
	db execer
}

func NewSlotRepo(db *sql.DB) *SlotRepo { return &SlotRepo{db: db} }

// WithTx returns a repo bound to tx.
func (r *SlotRepo) WithTx(tx *sql.Tx) *SlotRepo { return &SlotRepo{db: tx} }

// Put writes value under key and returns the new revision.
func (r *SlotRepo) Put(ctx context.Context, key, value string) (string, error) {
	rev := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO slots(key, value, revision, updated_at) VALUES (?, ?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value=excluded.value, revision=excluded.revision, updated_at=excluded.updated_at;
	`, key, value, rev, database.Now())
	if err != nil {
		return "", err
	}
	return rev, nil
}

// Get returns nil when the slot does not exist.
func (r *SlotRepo) Get(ctx context.Context, key string) (*Slot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, value, revision, updated_at FROM slots WHERE key = ?`, key)
	var s Slot
	if err := row.Scan(&s.Key, &s.Value, &s.Revision, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SlotRepo) List(ctx context.Context) ([]Slot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, revision, updated_at FROM slots ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Slot
	for rows.Next() {
		var s Slot
		if err := rows.Scan(&s.Key, &s.Value, &s.Revision, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SlotRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key)
	return err
}
