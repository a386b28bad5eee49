package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cory-johannsen/petsteps/internal/game/element"
	"github.com/cory-johannsen/petsteps/internal/game/pet"
	"github.com/cory-johannsen/petsteps/internal/game/state"
)

// errUnknownAction is returned for an action type clients may not send.
var errUnknownAction = errors.New("unknown action type")

// actionRequest is the flat JSON envelope for POST /me/actions. Type selects
// the action; the remaining fields are read only by the actions that use them.
type actionRequest struct {
	Type string `json:"type"`

	Steps int    `json:"steps"`
	Daily int    `json:"daily"`
	Name  string `json:"name"`

	Element      element.Element `json:"element"`
	IsTemplate   bool            `json:"isTemplate"`
	TemplateType string          `json:"templateType"`
	ImageURL     string          `json:"imageUrl"`

	PartnerID      string          `json:"partnerId"`
	PartnerElement element.Element `json:"partnerElement"`
	PartnerStats   pet.Stats       `json:"partnerStats"`
}

// clientActions maps every client-visible action type to its constructor.
// Grants (XP, consumables, subscriptions) and battle spending are reachable
// only through the server.
var clientActions = map[string]func(actionRequest) state.Action{
	state.AddSteps{}.Kind():    func(r actionRequest) state.Action { return state.AddSteps{Steps: r.Steps} },
	state.FeedPet{}.Kind():     func(actionRequest) state.Action { return state.FeedPet{} },
	state.WaterPet{}.Kind():    func(actionRequest) state.Action { return state.WaterPet{} },
	state.PlayWithPet{}.Kind(): func(actionRequest) state.Action { return state.PlayWithPet{} },
	state.GiveTreat{}.Kind():   func(actionRequest) state.Action { return state.GiveTreat{} },
	state.CreatePet{}.Kind(): func(r actionRequest) state.Action {
		return state.CreatePet{
			Element:      r.Element,
			Name:         r.Name,
			IsTemplate:   r.IsTemplate,
			TemplateType: r.TemplateType,
			ImageURL:     r.ImageURL,
		}
	},
	state.StartTutorial{}.Kind(): func(actionRequest) state.Action { return state.StartTutorial{} },
	state.EvolvePet{}.Kind(): func(r actionRequest) state.Action {
		return state.EvolvePet{ImageURL: r.ImageURL}
	},
	state.BreedPet{}.Kind(): func(r actionRequest) state.Action {
		return state.BreedPet{
			PartnerID:      r.PartnerID,
			PartnerElement: r.PartnerElement,
			PartnerStats:   r.PartnerStats,
		}
	},
	state.HatchEgg{}.Kind(): func(r actionRequest) state.Action {
		return state.HatchEgg{Name: r.Name, ImageURL: r.ImageURL}
	},
	state.RetirePet{}.Kind():       func(actionRequest) state.Action { return state.RetirePet{} },
	state.UseEnergyBoost{}.Kind():  func(actionRequest) state.Action { return state.UseEnergyBoost{} },
	state.ClaimDailyGoal{}.Kind():  func(actionRequest) state.Action { return state.ClaimDailyGoal{} },
	state.ClaimWeeklyGoal{}.Kind(): func(actionRequest) state.Action { return state.ClaimWeeklyGoal{} },
	state.SetStepGoal{}.Kind(): func(r actionRequest) state.Action {
		return state.SetStepGoal{Daily: r.Daily}
	},
}

// decodeAction parses a client action envelope.
//
// Postcondition: Returns a non-nil Action, or an error wrapping errUnknownAction
// or describing the malformed body.
func decodeAction(data []byte) (state.Action, error) {
	var req actionRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decoding action: %w", err)
	}
	build, ok := clientActions[req.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownAction, req.Type)
	}
	return build(req), nil
}
