// Package main is the entry point for the arcana command line
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arcana",
	Short: "Wizard duels on the command line",
	Long: `Arcana creates wizards, lets them cast spells, use potions and scrolls,
trade and loot each other, and keeps their state in the configured store.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	addConfigFlags(rootCmd)

	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(catalogCmd)

	// Spell commands
	rootCmd.AddCommand(castCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(forgetCmd)

	// Item and trade commands
	rootCmd.AddCommand(useCmd)
	rootCmd.AddCommand(sellCmd)
	rootCmd.AddCommand(giveCmd)
	rootCmd.AddCommand(stealCmd)
	rootCmd.AddCommand(lootCmd)

	rootCmd.AddCommand(duelCmd)
	rootCmd.AddCommand(repairCmd)
}
