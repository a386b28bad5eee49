// Package main provides battlesim, an offline tool for balancing the opponent
// roster against freshly generated pets.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "battlesim",
	Short: "PetSteps battle simulator",
	Long:  `battlesim resolves battles between generated pets and the opponent roster with a seeded dice source.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&opts.rosterPath, "roster", "content/opponents.yaml", "opponent roster YAML file")
	rootCmd.PersistentFlags().Uint64Var(&opts.seed, "seed", 1, "dice seed")
	rootCmd.PersistentFlags().IntVar(&opts.evolutions, "evolutions", 0, "evolutions applied to the generated pet (0-4)")
	rootCmd.PersistentFlags().IntVar(&opts.happiness, "happiness", 100, "pet happiness meter")
	rootCmd.PersistentFlags().IntVar(&opts.hunger, "hunger", 100, "pet hunger meter")
	rootCmd.PersistentFlags().IntVar(&opts.thirst, "thirst", 100, "pet thirst meter")

	rootCmd.AddCommand(fightCmd)
	rootCmd.AddCommand(sweepCmd)
}
