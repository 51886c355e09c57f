package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/items"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/spells"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/wizard"
	"github.com/KirkDiggler/rpg-arcana/internal/orchestrators/duel"
)

var (
	// Create flags
	wizardName     string
	wizardLevel    string
	wizardHP       int
	wizardMP       int
	wizardMoney    int
	wizardCapacity int
	wizardSpells   []string
	wizardItems    []string
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Create and inspect wizards",
}

var createWizardCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a wizard",
	Long: `Create a wizard with full health and mana. Spells and items are taken from
the catalog by name, for example:

  arcana wizard create --name Harry --level adept --spell confringo --item elixir`,
	Args: cobra.NoArgs,
	RunE: createWizard,
}

var showWizardCmd = &cobra.Command{
	Use:   "show [wizard-id]",
	Short: "Show a wizard",
	Args:  cobra.ExactArgs(1),
	RunE:  showWizard,
}

var listWizardsCmd = &cobra.Command{
	Use:   "list",
	Short: "List every stored wizard",
	Args:  cobra.NoArgs,
	RunE:  listWizards,
}

var deleteWizardCmd = &cobra.Command{
	Use:   "delete [wizard-id]",
	Short: "Delete a wizard",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteWizard,
}

func init() {
	flags := createWizardCmd.Flags()
	flags.StringVar(&wizardName, "name", "", "wizard name")
	flags.StringVar(&wizardLevel, "level", "noob", "magic level: noob, adept, student, expert or master")
	flags.IntVar(&wizardHP, "hp", 100, "base and current health")
	flags.IntVar(&wizardMP, "mp", 0, "base and current mana, defaults to the minimum of the level")
	flags.IntVar(&wizardMoney, "money", 0, "Knuts in the purse")
	flags.IntVar(&wizardCapacity, "capacity", 100, "carrying capacity in grams")
	flags.StringSliceVar(&wizardSpells, "spell", nil, "catalog spell to know, repeatable")
	flags.StringSliceVar(&wizardItems, "item", nil, "catalog item to carry, repeatable")
	_ = createWizardCmd.MarkFlagRequired("name")

	wizardCmd.AddCommand(createWizardCmd)
	wizardCmd.AddCommand(showWizardCmd)
	wizardCmd.AddCommand(listWizardsCmd)
	wizardCmd.AddCommand(deleteWizardCmd)
}

func createWizard(cmd *cobra.Command, _ []string) error {
	level, err := magic.ParseLevel(wizardLevel)
	if err != nil {
		return err
	}

	input, err := newWizardInput(wizardName, level, wizardHP, wizardMP, wizardMoney, wizardCapacity, wizardSpells, wizardItems)
	if err != nil {
		return err
	}

	out, err := service.CreateWizard(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("failed to create wizard: %w", err)
	}

	printWizard(cmd.OutOrStdout(), out.Wizard)
	return nil
}

// newWizardInput builds a wizard at full health and mana from catalog names.
// Zero mana means the minimum of the level.
func newWizardInput(name string, level magic.Level, hp, mp, money, capacity int, spellList, itemList []string) (*duel.CreateWizardInput, error) {
	if mp == 0 {
		mp = level.Mana()
	}

	known := make([]spells.Spell, 0, len(spellList))
	for _, n := range spellList {
		spell, err := catalogSpell(n)
		if err != nil {
			return nil, err
		}
		known = append(known, spell)
	}

	carried := make([]items.Item, 0, len(itemList))
	for _, n := range itemList {
		item, err := catalogItem(n)
		if err != nil {
			return nil, err
		}
		carried = append(carried, item)
	}

	return &duel.CreateWizardInput{
		Name:        name,
		Level:       level,
		BaseHP:      hp,
		HP:          hp,
		BaseMP:      mp,
		MP:          mp,
		Money:       money,
		Capacity:    capacity,
		KnownSpells: known,
		Inventory:   carried,
	}, nil
}

func showWizard(cmd *cobra.Command, args []string) error {
	out, err := service.GetWizard(cmd.Context(), &duel.GetWizardInput{ID: args[0]})
	if err != nil {
		return fmt.Errorf("failed to get wizard: %w", err)
	}

	printWizard(cmd.OutOrStdout(), out.Wizard)
	return nil
}

func listWizards(cmd *cobra.Command, _ []string) error {
	out, err := service.ListWizards(cmd.Context(), &duel.ListWizardsInput{})
	if err != nil {
		return fmt.Errorf("failed to list wizards: %w", err)
	}

	if len(out.Wizards) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No wizards stored")
		return nil
	}
	for _, w := range out.Wizards {
		printWizard(cmd.OutOrStdout(), w)
	}
	return nil
}

func deleteWizard(cmd *cobra.Command, args []string) error {
	if _, err := service.DeleteWizard(cmd.Context(), &duel.DeleteWizardInput{ID: args[0]}); err != nil {
		return fmt.Errorf("failed to delete wizard: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

func printWizard(w io.Writer, wiz *wizard.Wizard) {
	status := "alive"
	if wiz.IsDead() {
		status = "dead"
	}
	fmt.Fprintf(w, "%s (%s)\n  %s\n", wiz.GetID(), status, wiz)
}
