// Package save encodes and decodes the persisted GameState blob.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/cory-johannsen/petsteps/internal/game/energy"
	"github.com/cory-johannsen/petsteps/internal/game/pet"
	"github.com/cory-johannsen/petsteps/internal/game/state"
)

// StorageKey is the key under which a player's GameState blob is stored.
const StorageKey = "petsteps_game_state"

// Encode serializes s as JSON.
func Encode(s state.GameState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding game state: %w", err)
	}
	return data, nil
}

// Decode parses a stored blob. It never fails: empty or malformed input
// yields state.Initial(), and a parsed state is normalized.
//
// Postcondition: consumables are non-negative, meters are within [0, 100],
// slices are non-nil and at most one of ActivePet and Egg is set.
func Decode(data []byte) state.GameState {
	s, err := DecodeStrict(data)
	if err != nil {
		return state.Initial()
	}
	return s
}

// DecodeStrict is Decode that reports why a blob was rejected.
func DecodeStrict(data []byte) (state.GameState, error) {
	if len(data) == 0 {
		return state.Initial(), fmt.Errorf("decoding game state: empty blob")
	}
	s := state.Initial()
	if err := json.Unmarshal(data, &s); err != nil {
		return state.Initial(), fmt.Errorf("decoding game state: %w", err)
	}
	if s.ActivePet != nil && !s.ActivePet.PrimaryElement.Valid() {
		return state.Initial(), fmt.Errorf("decoding game state: active pet has no element")
	}
	return Normalize(s), nil
}

// Normalize repairs values a hand-edited or older blob may carry.
func Normalize(s state.GameState) state.GameState {
	if s.RetiredPets == nil {
		s.RetiredPets = []pet.Pet{}
	}
	c := &s.Consumables
	c.Food, c.Water, c.Toy = max(0, c.Food), max(0, c.Water), max(0, c.Toy)
	c.Treat, c.EnergyBoost = max(0, c.Treat), max(0, c.EnergyBoost)

	if s.ActivePet != nil {
		p := *s.ActivePet
		p.Happiness = pet.ClampMeter(p.Happiness)
		p.Hunger = pet.ClampMeter(p.Hunger)
		p.Thirst = pet.ClampMeter(p.Thirst)
		p.Level = max(1, min(pet.RetirementLevel, p.Level))
		p.Experience = max(0, p.Experience)
		s.ActivePet = &p
		// An active pet wins over a stale egg.
		s.Egg = nil
	}
	if s.Egg != nil && s.Egg.StepsRequired <= 0 {
		e := *s.Egg
		e.StepsRequired = pet.EggHatchSteps
		s.Egg = &e
	}

	if s.BattleEnergy.Max <= 0 {
		s.BattleEnergy.Max = energy.DefaultMax
	}
	s.BattleEnergy.Current = max(0, min(s.BattleEnergy.Max, s.BattleEnergy.Current))
	s.DailyBattlesUsed = max(0, s.DailyBattlesUsed)
	if s.DailyStepGoal <= 0 {
		s.DailyStepGoal = state.DefaultDailyStepGoal
		s.WeeklyStepGoal = state.DefaultDailyStepGoal * state.WeeklyGoalMultiplier
	}
	if !s.SubscriptionTier.Valid() {
		s.SubscriptionTier = state.TierFree
	}
	return s
}
