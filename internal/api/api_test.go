package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/petsteps/internal/api"
	"github.com/cory-johannsen/petsteps/internal/game/battle"
	"github.com/cory-johannsen/petsteps/internal/game/dice"
	"github.com/cory-johannsen/petsteps/internal/game/element"
	"github.com/cory-johannsen/petsteps/internal/game/state"
	"github.com/cory-johannsen/petsteps/internal/gameserver"
	"github.com/cory-johannsen/petsteps/internal/pkg/clock"
	"github.com/cory-johannsen/petsteps/internal/pkg/idgen"
	"github.com/cory-johannsen/petsteps/internal/storage"
	"github.com/cory-johannsen/petsteps/internal/storage/memory"
)

type testAPI struct {
	handler http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	clk := clock.NewFixed(time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC))
	store := memory.New(clk)
	roster, err := battle.NewRoster([]battle.Opponent{
		{ID: "dummy", Name: "Training Dummy", Element: element.Earth, Level: 1, Attack: 1, Health: 1},
	})
	require.NoError(t, err)
	svc, err := gameserver.New(&gameserver.Config{
		Saves:   store,
		Battles: store,
		Roster:  roster,
		Clock:   clk,
		Dice:    dice.NewSeededSource(1),
		IDs:     idgen.NewSequential("pet"),
	})
	require.NoError(t, err)
	h, err := api.NewRouter(&api.Config{
		Service:        svc,
		Accounts:       store,
		Logger:         zap.NewNop(),
		RequestTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return &testAPI{handler: h}
}

func (a *testAPI) do(t *testing.T, method, path, body string, auth bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.SetBasicAuth("ada", "correct-horse")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) signUp(t *testing.T) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/accounts", `{"username":"ada","password":"correct-horse"}`, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type outcome struct {
	State   state.GameState `json:"state"`
	Changed bool            `json:"changed"`
}

func TestNewRouter_RequiresDependencies(t *testing.T) {
	_, err := api.NewRouter(&api.Config{})
	assert.Error(t, err)
}

func TestHealthz(t *testing.T) {
	a := newTestAPI(t)
	rec := a.do(t, http.MethodGet, "/healthz", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestCreateAccount(t *testing.T) {
	a := newTestAPI(t)
	a.signUp(t)

	rec := a.do(t, http.MethodPost, "/accounts", `{"username":"ada","password":"other"}`, false)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = a.do(t, http.MethodPost, "/accounts", `{"username":"","password":"x"}`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(t, http.MethodPost, "/accounts", `{`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe_RequiresAuth(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/me/state", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))

	rec = a.do(t, http.MethodGet, "/me/state", "", true)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "unknown account")

	a.signUp(t)
	req := httptest.NewRequest(http.MethodGet, "/me/state", nil)
	req.SetBasicAuth("ada", "wrong")
	wrong := httptest.NewRecorder()
	a.handler.ServeHTTP(wrong, req)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
}

func TestGetState_NewPlayer(t *testing.T) {
	a := newTestAPI(t)
	a.signUp(t)

	rec := a.do(t, http.MethodGet, "/me/state", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	gs := decode[state.GameState](t, rec)
	assert.Nil(t, gs.ActivePet)
	assert.Equal(t, 3, gs.Consumables.Food)
	assert.Equal(t, state.DefaultDailyStepGoal, gs.DailyStepGoal)
}

func TestPostAction_CreateFeedAndWalk(t *testing.T) {
	a := newTestAPI(t)
	a.signUp(t)

	rec := a.do(t, http.MethodPost, "/me/actions", `{"type":"create_pet","element":"fire","name":"Ember"}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode[outcome](t, rec)
	require.True(t, out.Changed)
	require.NotNil(t, out.State.ActivePet)
	assert.Equal(t, "Ember", out.State.ActivePet.Name)
	assert.Equal(t, element.Fire, out.State.ActivePet.PrimaryElement)

	rec = a.do(t, http.MethodPost, "/me/actions", `{"type":"add_steps","steps":250}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	out = decode[outcome](t, rec)
	assert.True(t, out.Changed)
	assert.Equal(t, 250, out.State.TotalSteps)
	assert.Equal(t, 250, out.State.ActivePet.Experience)

	rec = a.do(t, http.MethodPost, "/me/actions", `{"type":"feed_pet"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	out = decode[outcome](t, rec)
	assert.True(t, out.Changed)
	assert.Equal(t, 2, out.State.Consumables.Food)
}

func TestPostAction_OversizedStepsAreCapped(t *testing.T) {
	a := newTestAPI(t)
	a.signUp(t)
	rec := a.do(t, http.MethodPost, "/me/actions", `{"type":"create_pet","element":"earth","name":"Pebble"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodPost, "/me/actions", `{"type":"add_steps","steps":9223372036854775807}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode[outcome](t, rec)
	assert.Equal(t, state.MaxStepsPerAction, out.State.TotalSteps)
	require.NotNil(t, out.State.ActivePet)
	assert.GreaterOrEqual(t, out.State.ActivePet.Experience, 0)
}

func TestPostAction_InvalidIsNoOp(t *testing.T) {
	a := newTestAPI(t)
	a.signUp(t)

	rec := a.do(t, http.MethodPost, "/me/actions", `{"type":"hatch_egg","name":"Nope"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[outcome](t, rec)
	assert.False(t, out.Changed)
}

func TestPostAction_RejectsUnknownAndServerOnlyTypes(t *testing.T) {
	a := newTestAPI(t)
	a.signUp(t)

	for _, body := range []string{
		`{"type":"dance"}`,
		`{"type":"add_xp","amount":1000000}`,
		`{"type":"add_consumable","kind":"treat","amount":99}`,
		`{"type":"set_subscription","tier":"tier3"}`,
		`{"type":"use_battle"}`,
		`{"type":"create_pet","element":"plasma","name":"x"}`,
		`not json`,
	} {
		rec := a.do(t, http.MethodPost, "/me/actions", body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestBattles(t *testing.T) {
	a := newTestAPI(t)
	a.signUp(t)

	rec := a.do(t, http.MethodPost, "/me/battles", `{"opponent_id":"dummy"}`, true)
	assert.Equal(t, http.StatusConflict, rec.Code, "no pet yet")

	rec = a.do(t, http.MethodPost, "/me/actions", `{"type":"create_pet","element":"water","name":"Wave"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodPost, "/me/battles", `{"opponent_id":"ghost"}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(t, http.MethodPost, "/me/battles", `{"opponent_id":"dummy"}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	fought := decode[gameserver.BattleOutcome](t, rec)
	assert.Equal(t, battle.SidePlayer, fought.Result.Winner)
	assert.NotEmpty(t, fought.Result.Turns)
	assert.Equal(t, 1, fought.State.DailyBattlesUsed)

	rec = a.do(t, http.MethodGet, "/me/battles?limit=5", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Battles []storage.BattleRecord `json:"battles"`
	}](t, rec)
	require.Len(t, list.Battles, 1)
	assert.Equal(t, "dummy", list.Battles[0].OpponentID)

	rec = a.do(t, http.MethodGet, "/me/battles?limit=abc", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBattles_DailyLimitConflict(t *testing.T) {
	a := newTestAPI(t)
	a.signUp(t)
	rec := a.do(t, http.MethodPost, "/me/actions", `{"type":"create_pet","element":"air","name":"Gust"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	for i := 0; i < 3; i++ {
		rec = a.do(t, http.MethodPost, "/me/battles", `{"opponent_id":"dummy"}`, true)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec = a.do(t, http.MethodPost, "/me/battles", `{"opponent_id":"dummy"}`, true)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListOpponents(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/opponents", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Opponents []battle.Opponent `json:"opponents"`
	}](t, rec)
	require.Len(t, body.Opponents, 1)
	assert.Equal(t, "Training Dummy", body.Opponents[0].Name)
}
