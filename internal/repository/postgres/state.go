package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/healthyrecipe-client/internal/model"
)

var _ model.StateStore = (*StateRepository)(nil)

// querier is the subset of *pgxpool.Pool used by the repository.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// StateRepository persists client state in a shared postgres database.
type StateRepository struct {
	db querier
}

func NewStateRepository(db *Connection) *StateRepository {
	return &StateRepository{db: db}
}

func (r *StateRepository) Get(ctx context.Context, key string) (string, error) {
	const query = `SELECT value FROM client_state WHERE key = $1`

	var value string
	if err := r.db.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to get state %s: %w", key, err)
	}
	return value, nil
}

func (r *StateRepository) PutAll(ctx context.Context, values map[string]string) error {
	const query = `
        INSERT INTO client_state (key, value, updated_at) VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
    `

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for k, v := range values {
		if _, err := tx.Exec(ctx, query, k, v); err != nil {
			return fmt.Errorf("failed to put state %s: %w", k, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit state: %w", err)
	}
	return nil
}

func (r *StateRepository) Delete(ctx context.Context, keys ...string) error {
	const query = `DELETE FROM client_state WHERE key = ANY($1)`

	if len(keys) == 0 {
		return nil
	}
	if _, err := r.db.Exec(ctx, query, keys); err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}
	return nil
}
