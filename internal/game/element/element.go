// Package element defines the four pet elements and their fixed damage
// effectiveness table.
package element

import (
	"encoding/json"
	"fmt"
)

// Element is one of fire, water, earth, or air.
type Element string

const (
	Fire  Element = "fire"
	Water Element = "water"
	Earth Element = "earth"
	Air   Element = "air"
)

// All lists every element in table order.
var All = []Element{Fire, Water, Earth, Air}

// effectiveness maps attacker -> defender -> damage multiplier.
var effectiveness = map[Element]map[Element]float64{
	Fire:  {Fire: 1, Water: 0.5, Earth: 1.5, Air: 1},
	Water: {Fire: 1.5, Water: 1, Earth: 0.5, Air: 1},
	Earth: {Fire: 0.5, Water: 1.5, Earth: 1, Air: 0.5},
	Air:   {Fire: 1, Water: 1, Earth: 1.5, Air: 1},
}

// Valid reports whether e is one of the four known elements.
func (e Element) Valid() bool {
	_, ok := effectiveness[e]
	return ok
}

// String returns the element name.
func (e Element) String() string { return string(e) }

// Parse converts s into an Element.
//
// Postcondition: Returns a valid Element or a non-nil error.
func Parse(s string) (Element, error) {
	e := Element(s)
	if !e.Valid() {
		return "", fmt.Errorf("unknown element %q", s)
	}
	return e, nil
}

// UnmarshalJSON rejects unknown element names. The empty string decodes to the
// zero Element so optional fields round-trip.
func (e *Element) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*e = ""
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Effectiveness returns the damage multiplier for attacker striking defender.
//
// Postcondition: Returns one of 0.5, 1, or 1.5 for valid elements; 1 if either
// element is unknown.
func Effectiveness(attacker, defender Element) float64 {
	row, ok := effectiveness[attacker]
	if !ok {
		return 1
	}
	m, ok := row[defender]
	if !ok {
		return 1
	}
	return m
}
