package gameserver

import "errors"

var (
	// ErrUnknownOpponent is returned when a battle names an opponent missing from the roster.
	ErrUnknownOpponent = errors.New("unknown opponent")
	// ErrNoActivePet is returned when a battle is requested without a live pet.
	ErrNoActivePet = errors.New("no active pet")
	// ErrNoBattleAvailable is returned when the daily limit or battle energy is exhausted.
	ErrNoBattleAvailable = errors.New("no battle available")
)
