// Package state holds the GameState aggregate and the pure reducer that
// applies player actions to it.
package state

import (
	"time"

	"github.com/cory-johannsen/petsteps/internal/game/dice"
	"github.com/cory-johannsen/petsteps/internal/game/energy"
	"github.com/cory-johannsen/petsteps/internal/game/pet"
	"github.com/cory-johannsen/petsteps/internal/pkg/idgen"
)

const (
	// DefaultDailyStepGoal is the daily goal of a new player.
	DefaultDailyStepGoal = 5000
	// WeeklyGoalMultiplier derives the weekly goal from the daily goal.
	WeeklyGoalMultiplier = 5
	// MinDailyStepGoal and MaxDailyStepGoal bound player-chosen daily goals.
	MinDailyStepGoal = 3000
	MaxDailyStepGoal = 20000
	// MaxStepsPerAction caps the steps a single AddSteps can record.
	MaxStepsPerAction = 100_000
)

// Consumables are the player's care and battle items.
//
// Invariant: every count is >= 0.
type Consumables struct {
	Food        int `json:"food"`
	Water       int `json:"water"`
	Toy         int `json:"toy"`
	Treat       int `json:"treat"`
	EnergyBoost int `json:"energyBoost"`
}

// ConsumableKind names one Consumables field.
type ConsumableKind string

const (
	Food        ConsumableKind = "food"
	Water       ConsumableKind = "water"
	Toy         ConsumableKind = "toy"
	Treat       ConsumableKind = "treat"
	EnergyBoost ConsumableKind = "energy_boost"
)

// add returns c with amount added to kind. ok is false for an unknown kind.
func (c Consumables) add(kind ConsumableKind, amount int) (Consumables, bool) {
	switch kind {
	case Food:
		c.Food = pet.AddCapped(c.Food, amount)
	case Water:
		c.Water = pet.AddCapped(c.Water, amount)
	case Toy:
		c.Toy = pet.AddCapped(c.Toy, amount)
	case Treat:
		c.Treat = pet.AddCapped(c.Treat, amount)
	case EnergyBoost:
		c.EnergyBoost = pet.AddCapped(c.EnergyBoost, amount)
	default:
		return c, false
	}
	return c, true
}

// GameState is the aggregate root of one player's game.
//
// Invariants: RetiredPets is append-only; Consumables are non-negative; at
// most one of ActivePet and Egg is non-nil.
type GameState struct {
	ActivePet   *pet.Pet    `json:"activePet"`
	RetiredPets []pet.Pet   `json:"retiredPets"`
	Egg         *pet.Egg    `json:"egg"`
	Consumables Consumables `json:"consumables"`

	TodaySteps  int    `json:"todaySteps"`
	WeeklySteps int    `json:"weeklySteps"`
	TotalSteps  int    `json:"totalSteps"`
	StepDay     string `json:"stepDay"`
	StepWeek    string `json:"stepWeek"`

	DailyStepGoal         int    `json:"dailyStepGoal"`
	WeeklyStepGoal        int    `json:"weeklyStepGoal"`
	DailyGoalClaimedDay   string `json:"dailyGoalClaimedDay"`
	WeeklyGoalClaimedWeek string `json:"weeklyGoalClaimedWeek"`

	BattleEnergy     energy.Battery `json:"battleEnergy"`
	DailyBattlesUsed int            `json:"dailyBattlesUsed"`
	LastBattleDay    string         `json:"lastBattleDate"`

	SubscriptionTier Tier `json:"subscriptionTier"`
	AITokens         int  `json:"aiTokens"`

	TutorialCompleted bool `json:"tutorialCompleted"`
	TutorialSteps     int  `json:"tutorialSteps"`

	EvolutionReady bool `json:"showEvolution"`
	BreedingReady  bool `json:"showBreeding"`
	ChooseNewPet   bool `json:"showPaywall"`
}

// Initial returns the state of a brand-new player.
func Initial() GameState {
	return GameState{
		RetiredPets:      []pet.Pet{},
		Consumables:      Consumables{Food: 3, Water: 3, Toy: 1},
		DailyStepGoal:    DefaultDailyStepGoal,
		WeeklyStepGoal:   DefaultDailyStepGoal * WeeklyGoalMultiplier,
		BattleEnergy:     energy.Battery{Current: energy.DefaultMax, Max: energy.DefaultMax},
		SubscriptionTier: TierFree,
	}
}

// HasLivePet reports whether an active, non-egg, non-retired pet exists.
func (s GameState) HasLivePet() bool {
	return s.ActivePet != nil && !s.ActivePet.IsEgg && !s.ActivePet.IsRetired
}

// BattlesRemaining returns the battles still allowed today as of now.
func (s GameState) BattlesRemaining(now time.Time) int {
	return energy.BattlesRemaining(s.DailyBattlesUsed, s.LastBattleDay, now)
}

// Env carries the inputs a transition may need beyond the state and action.
// Keeping time, randomness and identifiers here keeps Reduce deterministic.
type Env struct {
	Now    time.Time
	Source dice.Source
	IDs    idgen.Generator
}

func (e Env) source() dice.Source {
	if e.Source == nil {
		return dice.NewCryptoSource()
	}
	return e.Source
}

func (e Env) newID() string {
	if e.IDs == nil {
		return idgen.NewUUID("pet").Generate()
	}
	return e.IDs.Generate()
}
