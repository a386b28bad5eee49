package pet

import "math"

const (
	// BaseXP is the experience required to advance from level 1 to level 2.
	BaseXP = 5000
	// XPGrowthRate is the per-level multiplier of the XP curve.
	XPGrowthRate = 1.15

	// BreedingLevel is the level at which a pet becomes eligible to breed.
	BreedingLevel = 90
	// RetirementLevel is the level at which a pet is forcibly retired.
	RetirementLevel = 100
	// MaxEvolutionStage is the final evolution stage.
	MaxEvolutionStage = 4
)

// EvolutionLevels lists the levels that unlock evolution stages 1 through 4.
var EvolutionLevels = [MaxEvolutionStage]int{20, 40, 60, 80}

// XPForLevel returns the experience needed to advance from level to level+1:
// floor(5000 × 1.15^(level−1)). Levels below 1 are treated as level 1.
//
// Postcondition: XPForLevel(1) == 5000; strictly increasing in level.
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(BaseXP * math.Pow(XPGrowthRate, float64(level-1))))
}

// TotalXPForLevel returns the cumulative experience needed to reach level from
// level 1.
//
// Postcondition: TotalXPForLevel(1) == 0.
func TotalXPForLevel(level int) int {
	total := 0
	for i := 1; i < level; i++ {
		total += XPForLevel(i)
	}
	return total
}

// AddCapped returns a+b, pinned at math.MaxInt instead of wrapping.
//
// Precondition: b >= 0.
func AddCapped(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// EvolutionStageAt returns the evolution stage unlocked exactly at level, or 0
// if level is not an evolution level.
func EvolutionStageAt(level int) int {
	for i, l := range EvolutionLevels {
		if l == level {
			return i + 1
		}
	}
	return 0
}
