// Package memory provides an in-process storage backend for development and
// tests. Nothing survives a restart.
package memory

import (
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/cory-johannsen/petsteps/internal/pkg/clock"
	"github.com/cory-johannsen/petsteps/internal/storage"
)

// Store implements storage.SaveStore, storage.BattleRecorder and
// storage.AccountStore with maps guarded by a RWMutex.
type Store struct {
	clock clock.Clock

	mu       sync.RWMutex
	saves    map[string][]byte
	battles  map[string][]storage.BattleRecord
	accounts map[string]storage.Account
	nextID   int64
}

var (
	_ storage.SaveStore      = (*Store)(nil)
	_ storage.BattleRecorder = (*Store)(nil)
	_ storage.AccountStore   = (*Store)(nil)
)

// New creates an empty Store. A nil clk uses the system clock.
func New(clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.New()
	}
	return &Store{
		clock:    clk,
		saves:    make(map[string][]byte),
		battles:  make(map[string][]storage.BattleRecord),
		accounts: make(map[string]storage.Account),
	}
}

// Load returns a copy of the player's blob, or storage.ErrSaveNotFound.
func (s *Store) Load(_ context.Context, playerID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.saves[playerID]
	if !ok {
		return nil, storage.ErrSaveNotFound
	}
	return slices.Clone(blob), nil
}

// Save stores a copy of blob.
func (s *Store) Save(_ context.Context, playerID string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves[playerID] = slices.Clone(blob)
	return nil
}

// RecordBattle appends rec to the player's history.
func (s *Store) RecordBattle(_ context.Context, rec storage.BattleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.battles[rec.PlayerID] = append(s.battles[rec.PlayerID], rec)
	return nil
}

// ListBattles returns up to limit records for playerID, newest first.
func (s *Store) ListBattles(_ context.Context, playerID string, limit int) ([]storage.BattleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.battles[playerID]
	if limit <= 0 {
		return []storage.BattleRecord{}, nil
	}
	out := make([]storage.BattleRecord, 0, min(limit, len(all)))
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

// Create registers a new account, or returns storage.ErrAccountExists.
func (s *Store) Create(_ context.Context, username, password string) (storage.Account, error) {
	hash, err := storage.HashPassword(password)
	if err != nil {
		return storage.Account{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[username]; exists {
		return storage.Account{}, storage.ErrAccountExists
	}
	s.nextID++
	acct := storage.Account{
		ID:           strconv.FormatInt(s.nextID, 10),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}
	s.accounts[username] = acct
	return acct, nil
}

// Authenticate verifies credentials and returns the matching account.
func (s *Store) Authenticate(_ context.Context, username, password string) (storage.Account, error) {
	s.mu.RLock()
	acct, ok := s.accounts[username]
	s.mu.RUnlock()
	if !ok {
		return storage.Account{}, storage.ErrAccountNotFound
	}
	if !storage.CheckPassword(password, acct.PasswordHash) {
		return storage.Account{}, storage.ErrInvalidCredentials
	}
	return acct, nil
}
