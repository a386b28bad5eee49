// Package storage defines the persistence contracts shared by the postgres,
// redis and in-memory backends.
package storage

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrSaveNotFound is returned when a player has no stored game state.
var ErrSaveNotFound = errors.New("save not found")

// ErrAccountNotFound is returned when an account lookup yields no results.
var ErrAccountNotFound = errors.New("account not found")

// ErrAccountExists is returned when attempting to create a duplicate username.
var ErrAccountExists = errors.New("account already exists")

// ErrInvalidCredentials is returned when authentication fails.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Account is a player login. ID doubles as the player ID for saves and
// battle history.
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// BattleRecord summarizes one resolved battle.
type BattleRecord struct {
	PlayerID    string    `json:"playerId"`
	PetID       string    `json:"petId"`
	OpponentID  string    `json:"opponentId"`
	Winner      string    `json:"winner"`
	Turns       int       `json:"turns"`
	DamageDealt int       `json:"damageDealt"`
	DamageTaken int       `json:"damageTaken"`
	FoughtAt    time.Time `json:"foughtAt"`
}

// SaveStore persists one opaque game state blob per player.
type SaveStore interface {
	// Load returns the stored blob, or ErrSaveNotFound.
	Load(ctx context.Context, playerID string) ([]byte, error)
	// Save replaces the stored blob.
	Save(ctx context.Context, playerID string, blob []byte) error
}

// BattleRecorder persists battle summaries.
type BattleRecorder interface {
	RecordBattle(ctx context.Context, rec BattleRecord) error
	// ListBattles returns up to limit records for playerID, newest first.
	ListBattles(ctx context.Context, playerID string, limit int) ([]BattleRecord, error)
}

// AccountStore creates and authenticates accounts.
type AccountStore interface {
	// Create returns ErrAccountExists if username is taken.
	Create(ctx context.Context, username, password string) (Account, error)
	// Authenticate returns ErrAccountNotFound or ErrInvalidCredentials on failure.
	Authenticate(ctx context.Context, username, password string) (Account, error)
}

// HashPassword creates a bcrypt hash of the given password.
//
// Precondition: password must be non-empty.
// Postcondition: Returns a bcrypt hash string.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash.
//
// Postcondition: Returns true if password matches the hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
