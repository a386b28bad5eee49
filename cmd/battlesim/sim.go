package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/petsteps/internal/game/battle"
	"github.com/cory-johannsen/petsteps/internal/game/dice"
	"github.com/cory-johannsen/petsteps/internal/game/element"
	"github.com/cory-johannsen/petsteps/internal/game/pet"
)

type simOptions struct {
	rosterPath string
	seed       uint64
	evolutions int
	happiness  int
	hunger     int
	thirst     int

	element string
	asJSON  bool
	trials  int
}

var opts simOptions

var fightCmd = &cobra.Command{
	Use:   "fight <opponent-id>",
	Short: "Resolve one battle and print the turn log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roster, err := battle.LoadRoster(opts.rosterPath)
		if err != nil {
			return err
		}
		opp, ok := roster.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown opponent %q", args[0])
		}
		el, err := element.Parse(opts.element)
		if err != nil {
			return err
		}
		src := dice.NewSeededSource(opts.seed)
		p := generatePet(el, opts, src)
		res := battle.Resolve(battle.FromPet(p), opp.Combatant(), src)
		if opts.asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		printFight(cmd.OutOrStdout(), p, opp, res)
		return nil
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Report player win rates for every element against every opponent",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if opts.trials < 1 {
			return fmt.Errorf("trials must be >= 1")
		}
		roster, err := battle.LoadRoster(opts.rosterPath)
		if err != nil {
			return err
		}
		rows := runSweep(roster, opts, dice.NewSeededSource(opts.seed))
		printSweep(cmd.OutOrStdout(), rows)
		return nil
	},
}

func init() {
	fightCmd.Flags().StringVar(&opts.element, "element", string(element.Fire), "pet element (fire, water, earth, air)")
	fightCmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the battle result as JSON")
	sweepCmd.Flags().IntVar(&opts.trials, "trials", 1000, "battles per element and opponent")
}

// generatePet builds a fresh level-1 pet of el with o's evolutions and care
// meters applied.
func generatePet(el element.Element, o simOptions, src dice.Source) pet.Pet {
	p := pet.New("sim", pet.Spec{Element: el, Name: "Sim " + el.String()}, src, time.Time{})
	for i := 0; i < min(o.evolutions, pet.MaxEvolutionStage); i++ {
		p = pet.Evolve(p, "", false)
		p.EvolutionStage++
	}
	p.Happiness = pet.ClampMeter(o.happiness)
	p.Hunger = pet.ClampMeter(o.hunger)
	p.Thirst = pet.ClampMeter(o.thirst)
	return p
}

// sweepRow is the aggregate of o.trials battles of one element against one
// opponent.
type sweepRow struct {
	Element    element.Element
	OpponentID string
	Wins       int
	Trials     int
	AvgTurns   float64
}

// WinRate returns the fraction of trials the player won.
func (r sweepRow) WinRate() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Trials)
}

// runSweep fights o.trials battles for every element and opponent pair. Each
// trial generates a new pet from src.
func runSweep(roster *battle.Roster, o simOptions, src dice.Source) []sweepRow {
	var rows []sweepRow
	for _, el := range element.All {
		for _, opp := range roster.All() {
			row := sweepRow{Element: el, OpponentID: opp.ID, Trials: o.trials}
			turns := 0
			for i := 0; i < o.trials; i++ {
				p := generatePet(el, o, src)
				res := battle.Resolve(battle.FromPet(p), opp.Combatant(), src)
				if res.Winner == battle.SidePlayer {
					row.Wins++
				}
				turns += len(res.Turns)
			}
			if o.trials > 0 {
				row.AvgTurns = float64(turns) / float64(o.trials)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func printFight(w io.Writer, p pet.Pet, opp battle.Opponent, res battle.Result) {
	fmt.Fprintf(w, "%s (%s, atk %d def %d hp %d) vs %s (%s, atk %d def %d hp %d)\n",
		p.Name, p.PrimaryElement, p.Attack, p.Defense, p.MaxHealth,
		opp.Name, opp.Element, opp.Attack, opp.Defense, opp.Health)
	for _, t := range res.Turns {
		crit := ""
		if t.IsCrit {
			crit = " (crit)"
		}
		fmt.Fprintf(w, "turn %2d: %s hits %s for %d%s [%d / %d]\n",
			t.Turn, t.AttackerID, t.DefenderID, t.Damage, crit, t.AttackerHealthAfter, t.DefenderHealthAfter)
	}
	fmt.Fprintf(w, "winner: %s (%s)\n", res.Winner, res.WinnerID)
}

func printSweep(w io.Writer, rows []sweepRow) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ELEMENT\tOPPONENT\tWIN RATE\tAVG TURNS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%.1f%%\t%.1f\n", r.Element, r.OpponentID, r.WinRate()*100, r.AvgTurns)
	}
	tw.Flush()
}
