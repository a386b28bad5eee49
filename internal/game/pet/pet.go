// Package pet defines the pet and egg records and the pure rules that act on
// them: the XP curve, care meters, creation, evolution, breeding and hatching.
package pet

import (
	"time"

	"github.com/cory-johannsen/petsteps/internal/game/dice"
	"github.com/cory-johannsen/petsteps/internal/game/element"
)

const (
	// DefaultCritRate is the crit rate of newly created and hatched pets.
	DefaultCritRate = 0.05
	// StatVariance is the symmetric spread applied to each base stat at creation.
	StatVariance = 2
)

// Stats is an attack/defense/health stat block.
type Stats struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Health  int `json:"health"`
}

// BaseStats are the element-keyed starting stats of a generated pet.
var BaseStats = map[element.Element]Stats{
	element.Fire:  {Attack: 15, Defense: 8, Health: 90},
	element.Water: {Attack: 10, Defense: 12, Health: 100},
	element.Earth: {Attack: 8, Defense: 15, Health: 110},
	element.Air:   {Attack: 12, Defense: 10, Health: 95},
}

// Pet is the player's creature.
type Pet struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	PrimaryElement   element.Element `json:"primaryElement"`
	SecondaryElement element.Element `json:"secondaryElement,omitempty"`

	Level          int `json:"level"`
	Experience     int `json:"experience"`
	EvolutionStage int `json:"evolutionStage"`

	Attack    int     `json:"attack"`
	Defense   int     `json:"defense"`
	Health    int     `json:"health"`
	MaxHealth int     `json:"maxHealth"`
	CritRate  float64 `json:"critRate"`

	Happiness   int       `json:"happiness"`
	Hunger      int       `json:"hunger"`
	Thirst      int       `json:"thirst"`
	LastFed     time.Time `json:"lastFed"`
	LastWatered time.Time `json:"lastWatered"`
	LastPlayed  time.Time `json:"lastPlayed"`

	ImageURL     string `json:"imageUrl,omitempty"`
	TemplateType string `json:"templateType,omitempty"`
	ParentMomID  string `json:"parentMomId,omitempty"`
	ParentDadID  string `json:"parentDadId,omitempty"`

	IsEgg      bool      `json:"isEgg"`
	IsTemplate bool      `json:"isTemplate"`
	IsActive   bool      `json:"isActive"`
	IsRetired  bool      `json:"isRetired"`
	Generation int       `json:"generation"`
	RetiredAt  time.Time `json:"retiredAt,omitzero"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Spec describes a pet to create.
type Spec struct {
	Element      element.Element
	Name         string
	IsTemplate   bool
	TemplateType string
	ImageURL     string
}

// New creates a level-1, generation-1 active pet with element-keyed base stats,
// each stat offset independently by dice.Variance(src, StatVariance).
//
// Precondition: spec.Element must be valid; src must be non-nil.
// Postcondition: Level == 1, Generation == 1, IsActive, all meters == 100.
func New(id string, spec Spec, src dice.Source, now time.Time) Pet {
	base := BaseStats[spec.Element]
	return Pet{
		ID:             id,
		Name:           spec.Name,
		PrimaryElement: spec.Element,
		Level:          1,
		Attack:         base.Attack + dice.Variance(src, StatVariance),
		Defense:        base.Defense + dice.Variance(src, StatVariance),
		Health:         base.Health + dice.Variance(src, StatVariance),
		MaxHealth:      base.Health + dice.Variance(src, StatVariance),
		CritRate:       DefaultCritRate,
		Happiness:      MaxMeter,
		Hunger:         MaxMeter,
		Thirst:         MaxMeter,
		LastFed:        now,
		LastWatered:    now,
		LastPlayed:     now,
		ImageURL:       spec.ImageURL,
		TemplateType:   spec.TemplateType,
		IsTemplate:     spec.IsTemplate,
		IsActive:       true,
		Generation:     1,
		CreatedAt:      now,
	}
}

// TutorialID is the fixed identifier of the tutorial companion.
const TutorialID = "tutorial"

// TutorialStepsToRetire is the number of steps after which the tutorial
// companion retires.
const TutorialStepsToRetire = 10

// Tutorial returns the fixed level-99 companion used for onboarding.
func Tutorial(now time.Time) Pet {
	return Pet{
		ID:             TutorialID,
		Name:           "Tutorial Companion",
		PrimaryElement: element.Fire,
		Level:          99,
		Attack:         50,
		Defense:        50,
		Health:         100,
		MaxHealth:      100,
		CritRate:       0.1,
		Happiness:      MaxMeter,
		Hunger:         MaxMeter,
		Thirst:         MaxMeter,
		LastFed:        now,
		LastWatered:    now,
		LastPlayed:     now,
		EvolutionStage: MaxEvolutionStage,
		TemplateType:   "fire_phoenix",
		IsTemplate:     true,
		IsActive:       true,
		Generation:     1,
		CreatedAt:      now,
	}
}

// Retire returns p marked retired at now.
//
// Postcondition: IsRetired, !IsActive, RetiredAt == now.
func Retire(p Pet, now time.Time) Pet {
	p.IsRetired = true
	p.IsActive = false
	p.RetiredAt = now
	return p
}

// Evolve applies the evolution stat boosts: attack and defense +15%, max
// health +10% (each floored), with health restored to the new maximum. The
// image is replaced only when visualUpdate is true and imageURL is non-empty.
func Evolve(p Pet, imageURL string, visualUpdate bool) Pet {
	p.Attack += p.Attack * 15 / 100
	p.Defense += p.Defense * 15 / 100
	p.MaxHealth += p.MaxHealth * 10 / 100
	p.Health = p.MaxHealth
	if visualUpdate && imageURL != "" {
		p.ImageURL = imageURL
	}
	return p
}
