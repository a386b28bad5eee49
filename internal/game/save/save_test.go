package save_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/petsteps/internal/game/element"
	"github.com/cory-johannsen/petsteps/internal/game/save"
	"github.com/cory-johannsen/petsteps/internal/game/state"
	"github.com/cory-johannsen/petsteps/internal/pkg/idgen"
)

type fixedSrc struct{}

func (fixedSrc) Intn(_ int) int   { return 2 }
func (fixedSrc) Float64() float64 { return 0.5 }

func TestEncodeDecode_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	env := state.Env{Now: now, Source: fixedSrc{}, IDs: idgen.NewSequential("pet")}
	s := state.Reduce(state.Initial(), state.CreatePet{Element: element.Water, Name: "Drip"}, env)
	s = state.Reduce(s, state.AddSteps{Steps: 7000}, env)
	s = state.Reduce(s, state.UseBattle{}, env)

	data, err := save.Encode(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"primaryElement":"water"`)

	got, err := save.DecodeStrict(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestDecode_FallsBackToInitial(t *testing.T) {
	for name, blob := range map[string]string{
		"empty":       "",
		"not json":    "{{{",
		"wrong type":  `{"todaySteps":"lots"}`,
		"bad element": `{"activePet":{"primaryElement":"metal"}}`,
		"no element":  `{"activePet":{"name":"x"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, state.Initial(), save.Decode([]byte(blob)))
		})
	}
}

func TestDecode_Normalizes(t *testing.T) {
	blob := `{
		"activePet": {"primaryElement":"fire","level":0,"hunger":140,"thirst":-3,"happiness":50},
		"egg": {"primaryElement":"air"},
		"retiredPets": null,
		"consumables": {"food":-2,"water":1},
		"battleEnergy": {"current":9,"max":0},
		"subscriptionTier": "gold"
	}`
	s := save.Decode([]byte(blob))

	require.NotNil(t, s.ActivePet)
	assert.Equal(t, 1, s.ActivePet.Level)
	assert.Equal(t, 100, s.ActivePet.Hunger)
	assert.Equal(t, 0, s.ActivePet.Thirst)
	assert.Equal(t, 50, s.ActivePet.Happiness)
	assert.Nil(t, s.Egg)
	assert.NotNil(t, s.RetiredPets)
	assert.Equal(t, 0, s.Consumables.Food)
	assert.Equal(t, 1, s.Consumables.Water)
	assert.Equal(t, 5, s.BattleEnergy.Max)
	assert.Equal(t, 5, s.BattleEnergy.Current)
	assert.Equal(t, state.TierFree, s.SubscriptionTier)
}

func TestDecode_PartialBlobKeepsDefaults(t *testing.T) {
	s := save.Decode([]byte(`{"totalSteps": 42}`))
	assert.Equal(t, 42, s.TotalSteps)
	assert.Equal(t, 3, s.Consumables.Food)
	assert.Equal(t, 5000, s.DailyStepGoal)
}
