// Package redis stores accounts, game saves and battle history in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/cory-johannsen/petsteps/internal/game/save"
	"github.com/cory-johannsen/petsteps/internal/pkg/clock"
	"github.com/cory-johannsen/petsteps/internal/storage"
)

// MaxBattleHistory is the number of battle records kept per player.
const MaxBattleHistory = 100

// Config holds the configuration for the Redis store
type Config struct {
	Client redis.Cmdable
	Clock  clock.Clock
	// KeyPrefix namespaces every key; empty means no prefix.
	KeyPrefix string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.New("redis client is required")
	}
	if c.Clock == nil {
		return errors.New("clock is required")
	}
	return nil
}

// Store implements storage.SaveStore, storage.BattleRecorder and
// storage.AccountStore on Redis.
type Store struct {
	client redis.Cmdable
	clock  clock.Clock
	prefix string
}

var (
	_ storage.SaveStore      = (*Store)(nil)
	_ storage.BattleRecorder = (*Store)(nil)
	_ storage.AccountStore   = (*Store)(nil)
)

// New creates a Store.
func New(cfg *Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Store{client: cfg.Client, clock: cfg.Clock, prefix: cfg.KeyPrefix}, nil
}

// NewClient builds a go-redis client for addr. Connections are made lazily.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

func (s *Store) key(parts ...string) string {
	k := s.prefix
	for _, p := range parts {
		if k != "" {
			k += ":"
		}
		k += p
	}
	return k
}

// SaveKey returns the Redis key holding playerID's game state.
func (s *Store) SaveKey(playerID string) string {
	return s.key(save.StorageKey, playerID)
}

// Load returns the player's blob, or storage.ErrSaveNotFound.
func (s *Store) Load(ctx context.Context, playerID string) ([]byte, error) {
	blob, err := s.client.Get(ctx, s.SaveKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrSaveNotFound
		}
		return nil, fmt.Errorf("failed to get save from Redis: %w", err)
	}
	return blob, nil
}

// Save replaces the player's blob. Saves never expire.
func (s *Store) Save(ctx context.Context, playerID string, blob []byte) error {
	if err := s.client.Set(ctx, s.SaveKey(playerID), blob, 0).Err(); err != nil {
		return fmt.Errorf("failed to store save in Redis: %w", err)
	}
	return nil
}

// RecordBattle pushes rec onto the player's history, trimmed to
// MaxBattleHistory entries.
func (s *Store) RecordBattle(ctx context.Context, rec storage.BattleRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal battle: %w", err)
	}
	key := s.key("battles", rec.PlayerID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, MaxBattleHistory-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record battle in Redis: %w", err)
	}
	return nil
}

// ListBattles returns up to limit records for playerID, newest first.
func (s *Store) ListBattles(ctx context.Context, playerID string, limit int) ([]storage.BattleRecord, error) {
	raw, err := s.client.LRange(ctx, s.key("battles", playerID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list battles from Redis: %w", err)
	}
	out := make([]storage.BattleRecord, 0, len(raw))
	for _, item := range raw {
		var rec storage.BattleRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal battle: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

type accountData struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	CreatedAt    int64  `json:"created_at"`
}

// Create stores a new account, or returns storage.ErrAccountExists.
func (s *Store) Create(ctx context.Context, username, password string) (storage.Account, error) {
	hash, err := storage.HashPassword(password)
	if err != nil {
		return storage.Account{}, fmt.Errorf("hashing password: %w", err)
	}
	seq, err := s.client.Incr(ctx, s.key("account_seq")).Result()
	if err != nil {
		return storage.Account{}, fmt.Errorf("failed to allocate account id: %w", err)
	}
	now := s.clock.Now()
	data, err := json.Marshal(accountData{
		ID:           strconv.FormatInt(seq, 10),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now.Unix(),
	})
	if err != nil {
		return storage.Account{}, fmt.Errorf("failed to marshal account: %w", err)
	}
	ok, err := s.client.SetNX(ctx, s.key("account", username), data, 0).Result()
	if err != nil {
		return storage.Account{}, fmt.Errorf("failed to store account in Redis: %w", err)
	}
	if !ok {
		return storage.Account{}, storage.ErrAccountExists
	}
	return storage.Account{
		ID:           strconv.FormatInt(seq, 10),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Unix(now.Unix(), 0).UTC(),
	}, nil
}

// Authenticate verifies credentials and returns the matching account.
func (s *Store) Authenticate(ctx context.Context, username, password string) (storage.Account, error) {
	raw, err := s.client.Get(ctx, s.key("account", username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return storage.Account{}, storage.ErrAccountNotFound
		}
		return storage.Account{}, fmt.Errorf("failed to get account from Redis: %w", err)
	}
	var data accountData
	if err := json.Unmarshal(raw, &data); err != nil {
		return storage.Account{}, fmt.Errorf("failed to unmarshal account: %w", err)
	}
	if !storage.CheckPassword(password, data.PasswordHash) {
		return storage.Account{}, storage.ErrInvalidCredentials
	}
	return storage.Account{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		CreatedAt:    time.Unix(data.CreatedAt, 0).UTC(),
	}, nil
}
