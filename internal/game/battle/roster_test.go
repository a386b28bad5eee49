package battle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/petsteps/internal/game/battle"
	"github.com/cory-johannsen/petsteps/internal/game/element"
)

func TestLoadRoster_ShippedContent(t *testing.T) {
	r, err := battle.LoadRoster("../../../content/opponents.yaml")
	require.NoError(t, err)

	all := r.All()
	require.Len(t, all, 4)
	assert.Equal(t, "shadow_wolf", all[0].ID)

	dragon, ok := r.Get("tide_dragon")
	require.True(t, ok)
	assert.Equal(t, element.Water, dragon.Element)
	assert.Equal(t, 20, dragon.Level)
	assert.Equal(t, 110, dragon.Health)

	_, ok = r.Get("nobody")
	assert.False(t, ok)
}

func TestLoadRosterFromBytes_DefaultCritRate(t *testing.T) {
	r, err := battle.LoadRosterFromBytes([]byte(`
opponents:
  - id: imp
    name: Imp
    element: fire
    level: 1
    attack: 5
    defense: 2
    health: 20
`))
	require.NoError(t, err)
	imp, ok := r.Get("imp")
	require.True(t, ok)
	assert.Equal(t, battle.DefaultOpponentCritRate, imp.CritRate)

	c := imp.Combatant()
	assert.Equal(t, 5.0, c.Attack)
	assert.Equal(t, 20, c.Health)
}

func TestLoadRosterFromBytes_ExplicitZeroCritRate(t *testing.T) {
	r, err := battle.LoadRosterFromBytes([]byte(`
opponents:
  - {id: steady, name: Steady, element: earth, level: 1, health: 10, crit_rate: 0}
  - {id: lucky, name: Lucky, element: air, level: 1, health: 10}
`))
	require.NoError(t, err)

	steady, ok := r.Get("steady")
	require.True(t, ok)
	assert.Zero(t, steady.CritRate)

	lucky, ok := r.Get("lucky")
	require.True(t, ok)
	assert.Equal(t, battle.DefaultOpponentCritRate, lucky.CritRate)
}

func TestLoadRosterFromBytes_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":        `opponents: []`,
		"bad yaml":     `opponents: [`,
		"bad element":  "opponents:\n  - {id: a, name: A, element: metal, level: 1, health: 1}",
		"no health":    "opponents:\n  - {id: a, name: A, element: air, level: 1, health: 0}",
		"missing name": "opponents:\n  - {id: a, element: air, level: 1, health: 1}",
		"duplicate": "opponents:\n  - {id: a, name: A, element: air, level: 1, health: 1}\n" +
			"  - {id: a, name: B, element: air, level: 1, health: 1}",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := battle.LoadRosterFromBytes([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestRoster_AllReturnsCopy(t *testing.T) {
	r, err := battle.NewRoster([]battle.Opponent{{ID: "a", Name: "A", Element: element.Air, Level: 1, Health: 1}})
	require.NoError(t, err)
	all := r.All()
	all[0].Name = "changed"
	assert.Equal(t, "A", r.All()[0].Name)
}
