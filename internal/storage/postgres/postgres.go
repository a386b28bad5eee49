// Package postgres stores accounts, game saves and battle history in
// PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/petsteps/internal/config"
)

// PingTimeout bounds a single Store.Ping round trip.
const PingTimeout = 5 * time.Second

// Store is one connected PostgreSQL backend. Its repositories share the
// underlying pool.
type Store struct {
	pool *pgxpool.Pool

	Saves    *SaveRepository
	Battles  *BattleRepository
	Accounts *AccountRepository
}

// Open connects to the database described by cfg and builds the repositories
// on top of the pool.
//
// Precondition: cfg must contain valid database connection parameters.
// Postcondition: Returns a Store whose pool answered a ping, or a non-nil
// error with no connections left open.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	s := NewStore(pool)
	if err := s.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return s, nil
}

// NewStore wraps an existing pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:     pool,
		Saves:    NewSaveRepository(pool),
		Battles:  NewBattleRepository(pool),
		Accounts: NewAccountRepository(pool),
	}
}

// Ping checks that the database answers within PingTimeout.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Close releases every pooled connection. The Store is unusable afterwards.
func (s *Store) Close() {
	s.pool.Close()
}

// Pool returns the shared pgx pool.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}
