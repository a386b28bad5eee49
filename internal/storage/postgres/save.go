package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/petsteps/internal/game/save"
	"github.com/cory-johannsen/petsteps/internal/storage"
)

// SaveRepository stores one game state blob per account under save.StorageKey.
type SaveRepository struct {
	db *pgxpool.Pool
}

// NewSaveRepository creates a SaveRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSaveRepository(db *pgxpool.Pool) *SaveRepository {
	return &SaveRepository{db: db}
}

// Load returns the player's blob.
//
// Postcondition: Returns storage.ErrSaveNotFound when no row exists or the
// player ID is not an account ID.
func (r *SaveRepository) Load(ctx context.Context, playerID string) ([]byte, error) {
	id, ok := accountID(playerID)
	if !ok {
		return nil, storage.ErrSaveNotFound
	}
	var blob []byte
	err := r.db.QueryRow(ctx,
		`SELECT blob FROM game_saves WHERE account_id = $1 AND storage_key = $2`,
		id, save.StorageKey,
	).Scan(&blob)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrSaveNotFound
		}
		return nil, fmt.Errorf("querying save: %w", err)
	}
	return blob, nil
}

// Save upserts the player's blob.
//
// Precondition: blob must be valid JSON.
func (r *SaveRepository) Save(ctx context.Context, playerID string, blob []byte) error {
	id, ok := accountID(playerID)
	if !ok {
		return fmt.Errorf("saving game: invalid player id %q", playerID)
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO game_saves (account_id, storage_key, blob, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (account_id, storage_key)
		 DO UPDATE SET blob = EXCLUDED.blob, updated_at = NOW()`,
		id, save.StorageKey, blob,
	)
	if err != nil {
		return fmt.Errorf("upserting save: %w", err)
	}
	return nil
}
