package pet_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/petsteps/internal/game/dice"
	"github.com/cory-johannsen/petsteps/internal/game/element"
	"github.com/cory-johannsen/petsteps/internal/game/pet"
)

// fixedSrc is a deterministic Source for testing.
type fixedSrc struct {
	n int
	f float64
}

func (s fixedSrc) Intn(_ int) int   { return s.n }
func (s fixedSrc) Float64() float64 { return s.f }

var now = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func TestNew_NoVarianceAtMidpoint(t *testing.T) {
	// Intn(5) == 2 maps to a variance of 0.
	p := pet.New("p1", pet.Spec{Element: element.Earth, Name: "Pebble"}, fixedSrc{n: 2}, now)

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Pebble", p.Name)
	assert.Equal(t, element.Earth, p.PrimaryElement)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 1, p.Generation)
	assert.Equal(t, 8, p.Attack)
	assert.Equal(t, 15, p.Defense)
	assert.Equal(t, 110, p.Health)
	assert.Equal(t, 110, p.MaxHealth)
	assert.Equal(t, pet.DefaultCritRate, p.CritRate)
	assert.Equal(t, 100, p.Happiness)
	assert.True(t, p.IsActive)
	assert.False(t, p.IsRetired)
	assert.Equal(t, now, p.LastFed)
}

// TestNew_VarianceWithinSpread verifies every stat is within ±2 of its base.
func TestNew_VarianceWithinSpread(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := rapid.SampledFrom(element.All).Draw(rt, "element")
		seed := rapid.Uint64().Draw(rt, "seed")
		p := pet.New("x", pet.Spec{Element: e, Name: "n"}, dice.NewSeededSource(seed), now)
		base := pet.BaseStats[e]
		assert.InDelta(rt, base.Attack, p.Attack, pet.StatVariance)
		assert.InDelta(rt, base.Defense, p.Defense, pet.StatVariance)
		assert.InDelta(rt, base.Health, p.Health, pet.StatVariance)
		assert.InDelta(rt, base.Health, p.MaxHealth, pet.StatVariance)
	})
}

func TestTutorial(t *testing.T) {
	p := pet.Tutorial(now)
	assert.Equal(t, pet.TutorialID, p.ID)
	assert.Equal(t, 99, p.Level)
	assert.Equal(t, pet.MaxEvolutionStage, p.EvolutionStage)
	assert.True(t, p.IsTemplate)
}

func TestRetire(t *testing.T) {
	p := pet.Retire(pet.Tutorial(now), now.Add(time.Minute))
	assert.True(t, p.IsRetired)
	assert.False(t, p.IsActive)
	assert.Equal(t, now.Add(time.Minute), p.RetiredAt)
}

func TestEvolve(t *testing.T) {
	p := pet.Pet{Attack: 40, Defense: 21, Health: 10, MaxHealth: 105, ImageURL: "old"}

	got := pet.Evolve(p, "new", false)
	assert.Equal(t, 46, got.Attack)
	assert.Equal(t, 24, got.Defense)
	assert.Equal(t, 115, got.MaxHealth)
	assert.Equal(t, 115, got.Health)
	assert.Equal(t, "old", got.ImageURL, "image must not change without entitlement")

	got = pet.Evolve(p, "new", true)
	assert.Equal(t, "new", got.ImageURL)

	got = pet.Evolve(p, "", true)
	assert.Equal(t, "old", got.ImageURL)
}

func TestBreed_Inheritance(t *testing.T) {
	mom := pet.Pet{ID: "mom", PrimaryElement: element.Fire, Attack: 40, Defense: 30, MaxHealth: 120, Generation: 2}
	partner := pet.Partner{ID: "dad", Element: element.Water, Stats: pet.Stats{Attack: 50, Defense: 25, Health: 100}}

	egg := pet.Breed(mom, partner, true)
	assert.Equal(t, 18, egg.InheritedStats.Attack)
	assert.Equal(t, 11, egg.InheritedStats.Defense)
	assert.Equal(t, 44, egg.InheritedStats.Health)
	assert.Equal(t, 3, egg.Generation)
	assert.Equal(t, element.Fire, egg.PrimaryElement)
	assert.Equal(t, element.Water, egg.SecondaryElement)
	assert.Equal(t, []element.Element{element.Fire, element.Water}, egg.TrackedElements)
	assert.Equal(t, "mom", egg.ParentMomID)
	assert.Equal(t, "dad", egg.ParentDadID)
	assert.Equal(t, pet.EggHatchSteps, egg.StepsRequired)
	assert.False(t, egg.HatchReady)
}

func TestBreed_PolicyDropsSecondary(t *testing.T) {
	mom := pet.Pet{PrimaryElement: element.Fire}
	egg := pet.Breed(mom, pet.Partner{Element: element.Air}, false)
	assert.Equal(t, element.Element(""), egg.SecondaryElement)
	assert.Equal(t, []element.Element{element.Fire, element.Air}, egg.TrackedElements)
}

func TestBreed_SameElementHasNoSecondary(t *testing.T) {
	mom := pet.Pet{PrimaryElement: element.Earth}
	egg := pet.Breed(mom, pet.Partner{Element: element.Earth}, true)
	assert.Equal(t, element.Element(""), egg.SecondaryElement)
}

func TestBreed_PinsPartnerStats(t *testing.T) {
	mom := pet.Pet{ID: "mom", PrimaryElement: element.Fire, Attack: 40, Defense: 30, MaxHealth: 120}
	partner := pet.Partner{ID: "dad", Element: element.Air, Stats: pet.Stats{
		Attack:  math.MaxInt64 / 2,
		Defense: -50,
		Health:  math.MaxInt64,
	}}

	egg := pet.Breed(mom, partner, false)
	assert.Equal(t, (40*2+pet.MaxPartnerStat*2)/10, egg.InheritedStats.Attack)
	assert.Equal(t, 6, egg.InheritedStats.Defense)
	assert.Equal(t, (120*2+pet.MaxPartnerStat*2)/10, egg.InheritedStats.Health)
}

func TestAddCapped(t *testing.T) {
	assert.Equal(t, 7, pet.AddCapped(3, 4))
	assert.Equal(t, math.MaxInt, pet.AddCapped(math.MaxInt-1, 5))
	assert.Equal(t, math.MaxInt, pet.AddCapped(10, math.MaxInt))
}

func TestEgg_Walk(t *testing.T) {
	egg := pet.Egg{StepsRequired: 100}
	egg = egg.Walk(60)
	assert.Equal(t, 60, egg.StepsProgress)
	assert.False(t, egg.HatchReady)

	egg = egg.Walk(0)
	assert.Equal(t, 60, egg.StepsProgress)

	egg = egg.Walk(75)
	assert.Equal(t, 100, egg.StepsProgress)
	assert.True(t, egg.HatchReady)

	huge := pet.Egg{StepsRequired: 100, StepsProgress: 10}.Walk(math.MaxInt)
	assert.Equal(t, 100, huge.StepsProgress)
	assert.True(t, huge.HatchReady)
}

func TestHatch(t *testing.T) {
	egg := pet.Egg{
		PrimaryElement:   element.Water,
		SecondaryElement: element.Earth,
		Generation:       4,
		ParentMomID:      "m",
		ParentDadID:      "d",
		InheritedStats:   pet.Stats{Attack: 18, Defense: 12, Health: 40},
		HatchReady:       true,
	}
	p := pet.Hatch(egg, "kid", "Splash", "", now)
	require.True(t, p.IsActive)
	assert.Equal(t, "kid", p.ID)
	assert.Equal(t, "Splash", p.Name)
	assert.Equal(t, element.Water, p.PrimaryElement)
	assert.Equal(t, element.Earth, p.SecondaryElement)
	assert.Equal(t, 4, p.Generation)
	assert.Equal(t, 18, p.Attack)
	assert.Equal(t, 40, p.MaxHealth)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, "m", p.ParentMomID)
}
