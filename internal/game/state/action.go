package state

import (
	"github.com/cory-johannsen/petsteps/internal/game/element"
	"github.com/cory-johannsen/petsteps/internal/game/pet"
)

// Action is a request to transition a GameState. The set of actions is closed:
// only types in this package implement it.
type Action interface {
	// Kind returns the wire name of the action.
	Kind() string
	isAction()
}

// AddSteps records walked steps. Steps feed the active pet as XP one for one,
// or walk a pending egg.
type AddSteps struct{ Steps int }

// AddXP grants experience to the active pet.
type AddXP struct{ Amount int }

// FeedPet spends one food to restore hunger.
type FeedPet struct{}

// WaterPet spends one water to restore thirst.
type WaterPet struct{}

// PlayWithPet restores happiness at no cost.
type PlayWithPet struct{}

// GiveTreat spends one treat to restore every meter.
type GiveTreat struct{}

// AddConsumable credits Amount units of Item.
type AddConsumable struct {
	Item   ConsumableKind
	Amount int
}

// CreatePet generates a new level-1 pet in the empty active slot.
type CreatePet struct {
	Element      element.Element
	Name         string
	IsTemplate   bool
	TemplateType string
	ImageURL     string
}

// StartTutorial installs the tutorial companion.
type StartTutorial struct{}

// EvolvePet applies a pending evolution. VisualUpdateAllowed is the caller's
// entitlement decision about replacing the pet's artwork with ImageURL.
type EvolvePet struct {
	ImageURL            string
	VisualUpdateAllowed bool
}

// BreedPet retires the active pet into an egg. KeepSecondaryElement is the
// entitlement policy for granting the partner's element.
type BreedPet struct {
	PartnerID            string
	PartnerElement       element.Element
	PartnerStats         pet.Stats
	KeepSecondaryElement bool
}

// HatchEgg turns a ready egg into a named pet.
type HatchEgg struct {
	Name     string
	ImageURL string
}

// RetirePet retires the active pet on request.
type RetirePet struct{}

// UpdateCareLevels recomputes care meters from elapsed time.
type UpdateCareLevels struct{}

// UseBattle consumes one daily battle and one energy point.
type UseBattle struct{}

// RechargeEnergy applies energy regeneration.
type RechargeEnergy struct{}

// UseEnergyBoost spends an energy boost consumable for one energy point.
type UseEnergyBoost struct{}

// ClaimDailyGoal collects the reward for meeting today's step goal.
type ClaimDailyGoal struct{}

// ClaimWeeklyGoal collects the reward for meeting this week's step goal.
type ClaimWeeklyGoal struct{}

// SetSubscription changes the subscription tier.
type SetSubscription struct{ Tier Tier }

// SetStepGoal changes the daily step goal; the weekly goal follows.
type SetStepGoal struct{ Daily int }

func (AddSteps) Kind() string         { return "add_steps" }
func (AddXP) Kind() string            { return "add_xp" }
func (FeedPet) Kind() string          { return "feed_pet" }
func (WaterPet) Kind() string         { return "water_pet" }
func (PlayWithPet) Kind() string      { return "play_with_pet" }
func (GiveTreat) Kind() string        { return "give_treat" }
func (AddConsumable) Kind() string    { return "add_consumable" }
func (CreatePet) Kind() string        { return "create_pet" }
func (StartTutorial) Kind() string    { return "start_tutorial" }
func (EvolvePet) Kind() string        { return "evolve_pet" }
func (BreedPet) Kind() string         { return "breed_pet" }
func (HatchEgg) Kind() string         { return "hatch_egg" }
func (RetirePet) Kind() string        { return "retire_pet" }
func (UpdateCareLevels) Kind() string { return "update_care_levels" }
func (UseBattle) Kind() string        { return "use_battle" }
func (RechargeEnergy) Kind() string   { return "recharge_energy" }
func (UseEnergyBoost) Kind() string   { return "use_energy_boost" }
func (ClaimDailyGoal) Kind() string   { return "claim_daily_goal" }
func (ClaimWeeklyGoal) Kind() string  { return "claim_weekly_goal" }
func (SetSubscription) Kind() string  { return "set_subscription" }
func (SetStepGoal) Kind() string      { return "set_step_goal" }

func (AddSteps) isAction()         {}
func (AddXP) isAction()            {}
func (FeedPet) isAction()          {}
func (WaterPet) isAction()         {}
func (PlayWithPet) isAction()      {}
func (GiveTreat) isAction()        {}
func (AddConsumable) isAction()    {}
func (CreatePet) isAction()        {}
func (StartTutorial) isAction()    {}
func (EvolvePet) isAction()        {}
func (BreedPet) isAction()         {}
func (HatchEgg) isAction()         {}
func (RetirePet) isAction()        {}
func (UpdateCareLevels) isAction() {}
func (UseBattle) isAction()        {}
func (RechargeEnergy) isAction()   {}
func (UseEnergyBoost) isAction()   {}
func (ClaimDailyGoal) isAction()   {}
func (ClaimWeeklyGoal) isAction()  {}
func (SetSubscription) isAction()  {}
func (SetStepGoal) isAction()      {}
