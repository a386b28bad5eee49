package battle

import (
	"math"

	"github.com/cory-johannsen/petsteps/internal/game/dice"
	"github.com/cory-johannsen/petsteps/internal/game/element"
)

// CritMultiplier scales the damage of a critical hit.
const CritMultiplier = 1.5

// Side identifies the player or the opponent.
type Side string

const (
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

// Turn is one attack in the battle log.
type Turn struct {
	Turn                int    `json:"turn"`
	AttackerID          string `json:"attackerId"`
	DefenderID          string `json:"defenderId"`
	Damage              int    `json:"damage"`
	IsCrit              bool   `json:"isCrit"`
	AttackerHealthAfter int    `json:"attackerHealthAfter"`
	DefenderHealthAfter int    `json:"defenderHealthAfter"`
}

// Result is the outcome of a resolved battle.
type Result struct {
	Winner           Side           `json:"winner"`
	WinnerID         string         `json:"winnerId"`
	LoserID          string         `json:"loserId"`
	Turns            []Turn         `json:"turns"`
	TotalDamageDealt map[string]int `json:"totalDamageDealt"`
	PlayerHealth     int            `json:"playerHealth"`
	OpponentHealth   int            `json:"opponentHealth"`
}

// Damage computes one attack from att against def:
// max(1, floor((attack − defense×0.5) × effectiveness × crit)).
// The crit multiplier applies when a draw from src falls below att.CritRate.
//
// Postcondition: damage >= 1.
func Damage(att, def Combatant, src dice.Source) (damage int, crit bool) {
	crit = dice.Chance(src, att.CritRate)
	mul := 1.0
	if crit {
		mul = CritMultiplier
	}
	raw := (att.Attack - def.Defense*0.5) * element.Effectiveness(att.Element, def.Element) * mul
	return max(1, int(math.Floor(raw))), crit
}

// Resolve fights player against opponent. The player strikes first and the
// sides alternate until one reaches zero health. The turn number advances
// after each full exchange.
//
// A side that starts at zero or less health produces no turns; the player wins
// such a battle only when the player is alive and the opponent is not.
//
// Precondition: src must be non-nil.
// Postcondition: Every turn deals >= 1 damage; when both sides start alive,
// exactly one side ends at 0 health.
func Resolve(player, opponent Combatant, src dice.Source) Result {
	ph, oh := max(0, player.Health), max(0, opponent.Health)
	res := Result{
		TotalDamageDealt: map[string]int{player.ID: 0, opponent.ID: 0},
	}

	for turn := 1; ph > 0 && oh > 0; turn++ {
		dmg, crit := Damage(player, opponent, src)
		oh = max(0, oh-dmg)
		res.TotalDamageDealt[player.ID] += dmg
		res.Turns = append(res.Turns, Turn{
			Turn: turn, AttackerID: player.ID, DefenderID: opponent.ID,
			Damage: dmg, IsCrit: crit, AttackerHealthAfter: ph, DefenderHealthAfter: oh,
		})
		if oh == 0 {
			break
		}

		dmg, crit = Damage(opponent, player, src)
		ph = max(0, ph-dmg)
		res.TotalDamageDealt[opponent.ID] += dmg
		res.Turns = append(res.Turns, Turn{
			Turn: turn, AttackerID: opponent.ID, DefenderID: player.ID,
			Damage: dmg, IsCrit: crit, AttackerHealthAfter: oh, DefenderHealthAfter: ph,
		})
	}

	res.PlayerHealth, res.OpponentHealth = ph, oh
	if ph > 0 && oh == 0 {
		res.Winner, res.WinnerID, res.LoserID = SidePlayer, player.ID, opponent.ID
	} else {
		res.Winner, res.WinnerID, res.LoserID = SideOpponent, opponent.ID, player.ID
	}
	if res.Turns == nil {
		res.Turns = []Turn{}
	}
	return res
}
