package battle

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/petsteps/internal/game/element"
)

// DefaultOpponentCritRate is applied to opponents whose crit_rate is omitted.
const DefaultOpponentCritRate = 0.1

// Opponent is a roster entry the player can battle.
type Opponent struct {
	ID       string          `yaml:"id" json:"id"`
	Name     string          `yaml:"name" json:"name"`
	Element  element.Element `yaml:"element" json:"element"`
	Level    int             `yaml:"level" json:"level"`
	Attack   int             `yaml:"attack" json:"attack"`
	Defense  int             `yaml:"defense" json:"defense"`
	Health   int             `yaml:"health" json:"health"`
	CritRate float64         `yaml:"crit_rate" json:"critRate"`
	ImageURL string          `yaml:"image_url" json:"imageUrl,omitempty"`
}

// Validate checks that the opponent satisfies basic invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty, Element is valid,
// Level >= 1, Attack >= 0, Defense >= 0, Health >= 1 and CritRate is in [0, 1].
func (o *Opponent) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("opponent: id must not be empty")
	}
	if o.Name == "" {
		return fmt.Errorf("opponent %q: name must not be empty", o.ID)
	}
	if !o.Element.Valid() {
		return fmt.Errorf("opponent %q: unknown element %q", o.ID, o.Element)
	}
	if o.Level < 1 {
		return fmt.Errorf("opponent %q: level must be >= 1", o.ID)
	}
	if o.Attack < 0 || o.Defense < 0 {
		return fmt.Errorf("opponent %q: attack and defense must be >= 0", o.ID)
	}
	if o.Health < 1 {
		return fmt.Errorf("opponent %q: health must be >= 1", o.ID)
	}
	if o.CritRate < 0 || o.CritRate > 1 {
		return fmt.Errorf("opponent %q: crit_rate must be in [0, 1]", o.ID)
	}
	return nil
}

// UnmarshalYAML decodes an opponent, applying DefaultOpponentCritRate only
// when crit_rate is absent.
func (o *Opponent) UnmarshalYAML(value *yaml.Node) error {
	type rawOpponent Opponent
	raw := rawOpponent{CritRate: DefaultOpponentCritRate}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*o = Opponent(raw)
	return nil
}

// Combatant returns the opponent's raw stats as a battle combatant.
func (o Opponent) Combatant() Combatant {
	return Combatant{
		ID:       o.ID,
		Name:     o.Name,
		Element:  o.Element,
		Level:    o.Level,
		Attack:   float64(o.Attack),
		Defense:  float64(o.Defense),
		Health:   o.Health,
		CritRate: o.CritRate,
	}
}

// Roster is an ordered, immutable set of opponents keyed by ID.
type Roster struct {
	order []Opponent
	byID  map[string]Opponent
}

type rosterFile struct {
	Opponents []Opponent `yaml:"opponents"`
}

// NewRoster builds a Roster from opponents, validating each one.
//
// Postcondition: Returns an error on the first invalid or duplicate opponent.
func NewRoster(opponents []Opponent) (*Roster, error) {
	r := &Roster{byID: make(map[string]Opponent, len(opponents))}
	for _, o := range opponents {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[o.ID]; dup {
			return nil, fmt.Errorf("opponent %q: duplicate id", o.ID)
		}
		r.byID[o.ID] = o
		r.order = append(r.order, o)
	}
	return r, nil
}

// LoadRosterFromBytes parses a roster YAML document with a top-level
// opponents list. Omitted crit rates default to DefaultOpponentCritRate; an
// explicit crit_rate of 0 is kept.
func LoadRosterFromBytes(data []byte) (*Roster, error) {
	var f rosterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing roster YAML: %w", err)
	}
	if len(f.Opponents) == 0 {
		return nil, fmt.Errorf("roster: no opponents defined")
	}
	return NewRoster(f.Opponents)
}

// LoadRoster reads and parses the roster file at path.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %q: %w", path, err)
	}
	r, err := LoadRosterFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return r, nil
}

// Get returns the opponent with id.
func (r *Roster) Get(id string) (Opponent, bool) {
	o, ok := r.byID[id]
	return o, ok
}

// All returns the opponents in file order.
func (r *Roster) All() []Opponent {
	out := make([]Opponent, len(r.order))
	copy(out, r.order)
	return out
}
