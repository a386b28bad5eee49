package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/petsteps/internal/storage"
)

// BattleRepository records battle summaries in battle_history.
type BattleRepository struct {
	db *pgxpool.Pool
}

// NewBattleRepository creates a BattleRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{db: db}
}

// RecordBattle inserts rec.
func (r *BattleRepository) RecordBattle(ctx context.Context, rec storage.BattleRecord) error {
	id, ok := accountID(rec.PlayerID)
	if !ok {
		return fmt.Errorf("recording battle: invalid player id %q", rec.PlayerID)
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO battle_history
		   (account_id, pet_id, opponent_id, winner, turns, damage_dealt, damage_taken, fought_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, rec.PetID, rec.OpponentID, rec.Winner, rec.Turns, rec.DamageDealt, rec.DamageTaken, rec.FoughtAt,
	)
	if err != nil {
		return fmt.Errorf("inserting battle: %w", err)
	}
	return nil
}

// ListBattles returns up to limit battles for playerID, newest first.
//
// Precondition: limit > 0.
func (r *BattleRepository) ListBattles(ctx context.Context, playerID string, limit int) ([]storage.BattleRecord, error) {
	id, ok := accountID(playerID)
	if !ok {
		return []storage.BattleRecord{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT pet_id, opponent_id, winner, turns, damage_dealt, damage_taken, fought_at
		 FROM battle_history
		 WHERE account_id = $1
		 ORDER BY fought_at DESC, id DESC
		 LIMIT $2`,
		id, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying battles: %w", err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (storage.BattleRecord, error) {
		rec := storage.BattleRecord{PlayerID: playerID}
		err := row.Scan(&rec.PetID, &rec.OpponentID, &rec.Winner, &rec.Turns, &rec.DamageDealt, &rec.DamageTaken, &rec.FoughtAt)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning battles: %w", err)
	}
	return records, nil
}
