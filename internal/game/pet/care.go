package pet

import (
	"math"
	"time"
)

const (
	// MaxMeter is the ceiling of every care meter.
	MaxMeter = 100

	// HungerDecayPerHour, ThirstDecayPerHour and HappinessDecayPerHour are
	// the meter points lost per hour since the meter was last serviced.
	HungerDecayPerHour    = 3
	ThirstDecayPerHour    = 4
	HappinessDecayPerHour = 2

	// FeedAmount, WaterAmount, PlayAmount and TreatAmount are the meter points
	// restored by each care action.
	FeedAmount  = 30
	WaterAmount = 30
	PlayAmount  = 20
	TreatAmount = 15
)

// CareModifiers are the battle multipliers derived from a pet's care meters.
type CareModifiers struct {
	// AttackMod is in [0.5, 1.5], driven by happiness.
	AttackMod float64
	// DefenseMod is in [0.5, 1.0], driven by hunger.
	DefenseMod float64
	// CritMod is in [0, 0.1], driven by thirst, added to the base crit rate.
	CritMod float64
}

// ModifiersFor computes CareModifiers from three 0–100 meters.
//
// Postcondition: AttackMod == 0.5+happiness/100, DefenseMod == 0.5+hunger/200,
// CritMod == thirst/1000.
func ModifiersFor(happiness, hunger, thirst int) CareModifiers {
	return CareModifiers{
		AttackMod:  0.5 + float64(happiness)/100,
		DefenseMod: 0.5 + float64(hunger)/200,
		CritMod:    float64(thirst) / 1000,
	}
}

// ClampMeter bounds v to [0, MaxMeter].
func ClampMeter(v int) int {
	return max(0, min(MaxMeter, v))
}

// DecayedMeter returns max(0, 100 − floor(hoursSince(last) × ratePerHour)).
// A last timestamp after now counts as zero elapsed time.
//
// Postcondition: Result is in [0, 100] and depends only on last, now and rate.
func DecayedMeter(last, now time.Time, ratePerHour int) int {
	elapsed := now.Sub(last)
	if elapsed < 0 {
		elapsed = 0
	}
	loss := int(math.Floor(elapsed.Hours() * float64(ratePerHour)))
	return ClampMeter(MaxMeter - loss)
}
