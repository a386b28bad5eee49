// Package gameserver applies player actions and battles to persisted game
// state, serializing all work per player.
package gameserver

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/petsteps/internal/game/battle"
	"github.com/cory-johannsen/petsteps/internal/game/dice"
	"github.com/cory-johannsen/petsteps/internal/game/save"
	"github.com/cory-johannsen/petsteps/internal/game/state"
	"github.com/cory-johannsen/petsteps/internal/pkg/clock"
	"github.com/cory-johannsen/petsteps/internal/pkg/idgen"
	"github.com/cory-johannsen/petsteps/internal/storage"
)

const (
	// DefaultBattleListLimit is the page size used when none is requested.
	DefaultBattleListLimit = 20
	// MaxBattleListLimit caps a single battle history page.
	MaxBattleListLimit = 100
)

// Config holds the dependencies of a Service.
type Config struct {
	Saves   storage.SaveStore
	Battles storage.BattleRecorder
	Roster  *battle.Roster

	// Optional. Defaults: real clock, crypto dice, UUID pet IDs, no-op logger.
	Clock  clock.Clock
	Dice   dice.Source
	IDs    idgen.Generator
	Logger *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Saves == nil {
		return errors.New("save store is required")
	}
	if c.Battles == nil {
		return errors.New("battle recorder is required")
	}
	if c.Roster == nil {
		return errors.New("roster is required")
	}
	return nil
}

// Service is the authoritative owner of every player's GameState.
// All methods are safe for concurrent use.
type Service struct {
	saves   storage.SaveStore
	battles storage.BattleRecorder
	roster  *battle.Roster
	clock   clock.Clock
	dice    dice.Source
	ids     idgen.Generator
	logger  *zap.Logger
	locks   *playerLocks
}

// Outcome is the state after an action and whether the action took effect.
type Outcome struct {
	State   state.GameState `json:"state"`
	Changed bool            `json:"changed"`
}

// BattleOutcome is a resolved battle and the state after it.
type BattleOutcome struct {
	Opponent battle.Opponent `json:"opponent"`
	Result   battle.Result   `json:"result"`
	State    state.GameState `json:"state"`
}

// New creates a Service.
//
// Postcondition: Returns a non-nil *Service, or an error if cfg is invalid.
func New(cfg *Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	s := &Service{
		saves:   cfg.Saves,
		battles: cfg.Battles,
		roster:  cfg.Roster,
		clock:   cfg.Clock,
		dice:    cfg.Dice,
		ids:     cfg.IDs,
		logger:  cfg.Logger,
		locks:   newPlayerLocks(),
	}
	if s.clock == nil {
		s.clock = clock.New()
	}
	if s.dice == nil {
		s.dice = dice.NewCryptoSource()
	}
	if s.ids == nil {
		s.ids = idgen.NewUUID("pet")
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s, nil
}

// Roster returns the opponents players may battle.
func (s *Service) Roster() *battle.Roster {
	return s.roster
}

func (s *Service) env() state.Env {
	return state.Env{Now: s.clock.Now(), Source: s.dice, IDs: s.ids}
}

// load reads and decodes playerID's state. fresh is true when nothing usable
// was stored, in which case the initial state is returned.
func (s *Service) load(ctx context.Context, playerID string) (gs state.GameState, fresh bool, err error) {
	blob, err := s.saves.Load(ctx, playerID)
	if errors.Is(err, storage.ErrSaveNotFound) {
		return state.Initial(), true, nil
	}
	if err != nil {
		return state.GameState{}, false, fmt.Errorf("loading state for %s: %w", playerID, err)
	}
	gs, err = save.DecodeStrict(blob)
	if err != nil {
		s.logger.Warn("discarding unreadable save",
			zap.String("player_id", playerID),
			zap.Int("bytes", len(blob)),
			zap.Error(err),
		)
		return state.Initial(), true, nil
	}
	return gs, false, nil
}

// tick brings time-driven fields up to env.Now.
func tick(gs state.GameState, env state.Env) (state.GameState, bool) {
	gs, cared := state.Apply(gs, state.UpdateCareLevels{}, env)
	gs, charged := state.Apply(gs, state.RechargeEnergy{}, env)
	return gs, cared || charged
}

func (s *Service) store(ctx context.Context, playerID string, gs state.GameState) error {
	blob, err := save.Encode(gs)
	if err != nil {
		return fmt.Errorf("encoding state for %s: %w", playerID, err)
	}
	if err := s.saves.Save(ctx, playerID, blob); err != nil {
		return fmt.Errorf("saving state for %s: %w", playerID, err)
	}
	return nil
}

// State returns playerID's state ticked to the current time. Nothing is saved.
func (s *Service) State(ctx context.Context, playerID string) (state.GameState, error) {
	unlock := s.locks.lock(playerID)
	defer unlock()

	gs, _, err := s.load(ctx, playerID)
	if err != nil {
		return state.GameState{}, err
	}
	gs, _ = tick(gs, s.env())
	return gs, nil
}

// entitle sets the subscription-gated fields of a from gs's tier, overriding
// whatever the caller supplied.
func entitle(gs state.GameState, a state.Action) state.Action {
	switch a := a.(type) {
	case state.EvolvePet:
		a.VisualUpdateAllowed = gs.SubscriptionTier.Paid()
		return a
	case state.BreedPet:
		a.KeepSecondaryElement = gs.SubscriptionTier.Paid()
		return a
	}
	return a
}

// Dispatch applies a to playerID's state and persists the result. Evolution
// artwork and a bred egg's secondary element are granted by the player's tier.
//
// Precondition: a must be non-nil.
// Postcondition: the stored state equals Outcome.State unless an error is returned.
// An action that does not apply is not an error; Outcome.Changed is false.
func (s *Service) Dispatch(ctx context.Context, playerID string, a state.Action) (Outcome, error) {
	unlock := s.locks.lock(playerID)
	defer unlock()

	gs, fresh, err := s.load(ctx, playerID)
	if err != nil {
		return Outcome{}, err
	}
	env := s.env()
	gs, ticked := tick(gs, env)
	next, changed := state.Apply(gs, entitle(gs, a), env)

	if fresh || ticked || changed {
		if err := s.store(ctx, playerID, next); err != nil {
			return Outcome{}, err
		}
	}

	fields := []zap.Field{
		zap.String("player_id", playerID),
		zap.String("action", a.Kind()),
		zap.Bool("changed", changed),
	}
	if next.ActivePet != nil {
		fields = append(fields,
			zap.String("pet_id", next.ActivePet.ID),
			zap.Int("level", next.ActivePet.Level),
		)
	}
	if changed {
		s.logger.Info("action applied", fields...)
	} else {
		s.logger.Debug("action ignored", fields...)
	}
	return Outcome{State: next, Changed: changed}, nil
}

// Battle spends one battle for playerID and fights opponentID with the
// active pet.
//
// Postcondition: on success the battle is saved and recorded; on ErrNoActivePet,
// ErrUnknownOpponent or ErrNoBattleAvailable nothing is spent.
func (s *Service) Battle(ctx context.Context, playerID, opponentID string) (BattleOutcome, error) {
	opp, ok := s.roster.Get(opponentID)
	if !ok {
		return BattleOutcome{}, fmt.Errorf("opponent %q: %w", opponentID, ErrUnknownOpponent)
	}

	unlock := s.locks.lock(playerID)
	defer unlock()

	gs, _, err := s.load(ctx, playerID)
	if err != nil {
		return BattleOutcome{}, err
	}
	env := s.env()
	gs, _ = tick(gs, env)
	if !gs.HasLivePet() {
		return BattleOutcome{}, fmt.Errorf("player %s: %w", playerID, ErrNoActivePet)
	}
	next, spent := state.Apply(gs, state.UseBattle{}, env)
	if !spent {
		return BattleOutcome{}, fmt.Errorf("player %s: %w", playerID, ErrNoBattleAvailable)
	}

	p := *next.ActivePet
	res := battle.Resolve(battle.FromPet(p), opp.Combatant(), s.dice)

	if err := s.store(ctx, playerID, next); err != nil {
		return BattleOutcome{}, err
	}

	rec := storage.BattleRecord{
		PlayerID:    playerID,
		PetID:       p.ID,
		OpponentID:  opp.ID,
		Winner:      string(res.Winner),
		Turns:       len(res.Turns),
		DamageDealt: res.TotalDamageDealt[p.ID],
		DamageTaken: res.TotalDamageDealt[opp.ID],
		FoughtAt:    env.Now,
	}
	if err := s.battles.RecordBattle(ctx, rec); err != nil {
		s.logger.Warn("recording battle",
			zap.String("player_id", playerID),
			zap.String("opponent_id", opp.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("battle resolved",
		zap.String("player_id", playerID),
		zap.String("pet_id", p.ID),
		zap.String("opponent_id", opp.ID),
		zap.String("winner", string(res.Winner)),
		zap.Int("turns", len(res.Turns)),
	)
	return BattleOutcome{Opponent: opp, Result: res, State: next}, nil
}

// Battles returns up to limit of playerID's battle records, newest first.
// A limit outside [1, MaxBattleListLimit] is replaced by DefaultBattleListLimit.
func (s *Service) Battles(ctx context.Context, playerID string, limit int) ([]storage.BattleRecord, error) {
	if limit <= 0 || limit > MaxBattleListLimit {
		limit = DefaultBattleListLimit
	}
	recs, err := s.battles.ListBattles(ctx, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing battles for %s: %w", playerID, err)
	}
	return recs, nil
}
