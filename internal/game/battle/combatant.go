// Package battle resolves turn-by-turn fights between a player's pet and an
// opponent.
package battle

import (
	"github.com/cory-johannsen/petsteps/internal/game/element"
	"github.com/cory-johannsen/petsteps/internal/game/pet"
)

// Combatant is one side of a battle with its effective stats for that battle.
type Combatant struct {
	ID       string
	Name     string
	Element  element.Element
	Level    int
	Attack   float64
	Defense  float64
	Health   int
	CritRate float64
}

// FromPet builds the player combatant for p. The pet enters every battle at
// MaxHealth. Care meters scale the pet's stats for this battle only: attack by
// AttackMod, defense by DefenseMod, and CritMod is added to the crit rate.
//
// Postcondition: p is not modified.
func FromPet(p pet.Pet) Combatant {
	mods := pet.ModifiersFor(p.Happiness, p.Hunger, p.Thirst)
	return Combatant{
		ID:       p.ID,
		Name:     p.Name,
		Element:  p.PrimaryElement,
		Level:    p.Level,
		Attack:   float64(p.Attack) * mods.AttackMod,
		Defense:  float64(p.Defense) * mods.DefenseMod,
		Health:   p.MaxHealth,
		CritRate: p.CritRate + mods.CritMod,
	}
}
