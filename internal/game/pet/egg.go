package pet

import (
	"time"

	"github.com/cory-johannsen/petsteps/internal/game/element"
)

const (
	// EggHatchSteps is the number of steps an egg needs before it can hatch.
	EggHatchSteps = 5000
	// InheritanceShare is the fraction of each parent's stats passed to the egg.
	InheritanceShare = 0.2
	// MaxPartnerStat caps each caller-supplied partner stat.
	MaxPartnerStat = 10_000
)

// Egg is produced by breeding and hatches into a new pet once walked enough.
type Egg struct {
	PrimaryElement   element.Element `json:"primaryElement"`
	SecondaryElement element.Element `json:"secondaryElement,omitempty"`
	// TrackedElements records both parents' elements even when the secondary
	// element was not granted, so it can be restored later.
	TrackedElements []element.Element `json:"trackedElements"`
	Generation      int               `json:"generation"`
	ParentMomID     string            `json:"parentMomId"`
	ParentDadID     string            `json:"parentDadId"`
	InheritedStats  Stats             `json:"inheritedStats"`
	StepsRequired   int               `json:"stepsRequired"`
	StepsProgress   int               `json:"stepsProgress"`
	HatchReady      bool              `json:"hatchReady"`
}

// Partner describes the breeding partner supplied by the caller.
type Partner struct {
	ID      string
	Element element.Element
	Stats   Stats
}

// inherit returns floor(0.2×a + 0.2×b).
func inherit(a, b int) int {
	return (a*2 + b*2) / 10
}

// partnerStat pins a caller-supplied stat to [0, MaxPartnerStat].
func partnerStat(v int) int {
	return max(0, min(MaxPartnerStat, v))
}

// Breed computes the egg produced by mom and partner. The mom contributes her
// max health as her health stat. Partner stats are pinned to
// [0, MaxPartnerStat] first. keepSecondary is the entitlement policy that
// decides whether a differing partner element becomes the egg's secondary
// element.
//
// Postcondition: Generation == mom.Generation+1; StepsRequired == EggHatchSteps.
func Breed(mom Pet, partner Partner, keepSecondary bool) Egg {
	egg := Egg{
		PrimaryElement:  mom.PrimaryElement,
		TrackedElements: []element.Element{mom.PrimaryElement, partner.Element},
		Generation:      mom.Generation + 1,
		ParentMomID:     mom.ID,
		ParentDadID:     partner.ID,
		InheritedStats: Stats{
			Attack:  inherit(mom.Attack, partnerStat(partner.Stats.Attack)),
			Defense: inherit(mom.Defense, partnerStat(partner.Stats.Defense)),
			Health:  inherit(mom.MaxHealth, partnerStat(partner.Stats.Health)),
		},
		StepsRequired: EggHatchSteps,
	}
	if keepSecondary && partner.Element != mom.PrimaryElement {
		egg.SecondaryElement = partner.Element
	}
	return egg
}

// Walk adds steps to the egg's progress, capped at StepsRequired.
//
// Postcondition: HatchReady iff StepsProgress == StepsRequired.
func (e Egg) Walk(steps int) Egg {
	if steps <= 0 {
		return e
	}
	e.StepsProgress = min(e.StepsRequired, AddCapped(e.StepsProgress, steps))
	e.HatchReady = e.StepsProgress >= e.StepsRequired
	return e
}

// Hatch converts a ready egg into a new active level-1 pet carrying the egg's
// elements and inherited stats.
//
// Precondition: e.HatchReady; name non-empty.
func Hatch(e Egg, id, name, imageURL string, now time.Time) Pet {
	return Pet{
		ID:               id,
		Name:             name,
		PrimaryElement:   e.PrimaryElement,
		SecondaryElement: e.SecondaryElement,
		Level:            1,
		Attack:           e.InheritedStats.Attack,
		Defense:          e.InheritedStats.Defense,
		Health:           e.InheritedStats.Health,
		MaxHealth:        e.InheritedStats.Health,
		CritRate:         DefaultCritRate,
		Happiness:        MaxMeter,
		Hunger:           MaxMeter,
		Thirst:           MaxMeter,
		LastFed:          now,
		LastWatered:      now,
		LastPlayed:       now,
		ImageURL:         imageURL,
		ParentMomID:      e.ParentMomID,
		ParentDadID:      e.ParentDadID,
		IsActive:         true,
		Generation:       e.Generation,
		CreatedAt:        now,
	}
}
