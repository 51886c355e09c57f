package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/items"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/spells"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

// Spells of the catalog keep fixed IDs so protection against them survives
// across wizards and stores. Items get a fresh ID every time they are made.
var (
	spellNames = []string{"confringo", "diffindo", "episkey", "protego", "stupefy", "vulnera"}
	itemNames  = []string{"draught", "elixir", "felix", "scroll"}
)

func confringo() (*spells.Attacking, error) {
	return spells.NewAttacking(&spells.EffectConfig{
		ID: "spell_confringo", Name: "Confringo", ManaCost: 10, LevelNeeded: magic.Adept,
		Pool: spells.PoolHealth, Amount: 20,
	})
}

func stupefy() (*spells.Attacking, error) {
	return spells.NewAttacking(&spells.EffectConfig{
		ID: "spell_stupefy", Name: "Stupefy", ManaCost: 15, LevelNeeded: magic.Noob,
		Pool: spells.PoolHealth, Percentage: true, Amount: 10,
	})
}

func episkey() (*spells.Healing, error) {
	return spells.NewHealing(&spells.EffectConfig{
		ID: "spell_episkey", Name: "Episkey", ManaCost: 5, LevelNeeded: magic.Noob,
		Pool: spells.PoolHealth, Percentage: true, Amount: 10,
	})
}

// catalogSpell builds the named catalog spell
func catalogSpell(name string) (spells.Spell, error) {
	switch strings.ToLower(name) {
	case "confringo":
		return confringo()
	case "diffindo":
		return spells.NewAttacking(&spells.EffectConfig{
			ID: "spell_diffindo", Name: "Diffindo", ManaCost: 30, LevelNeeded: magic.Student,
			Pool: spells.PoolMana, Percentage: true, Amount: 20,
		})
	case "stupefy":
		return stupefy()
	case "episkey":
		return episkey()
	case "vulnera":
		return spells.NewHealing(&spells.EffectConfig{
			ID: "spell_vulnera", Name: "Vulnera Sanentur", ManaCost: 20, LevelNeeded: magic.Student,
			Pool: spells.PoolHealth, Amount: 30,
		})
	case "protego":
		c, err := confringo()
		if err != nil {
			return nil, err
		}
		s, err := stupefy()
		if err != nil {
			return nil, err
		}
		return spells.NewProtecting(&spells.ProtectingConfig{
			ID: "spell_protego", Name: "Protego", ManaCost: 15, LevelNeeded: magic.Student,
			Attacks: []*spells.Attacking{c, s},
		})
	}
	return nil, errors.NotFoundf("no spell named %q, try one of: %s", name, strings.Join(spellNames, ", "))
}

// catalogItem builds a fresh copy of the named catalog item
func catalogItem(name string) (items.Item, error) {
	switch strings.ToLower(name) {
	case "elixir":
		return items.NewHealthPotion(&items.PotionConfig{
			Name: "Elixir", Usages: 2, Price: 20, Weight: 10, Amount: 15,
		})
	case "draught":
		return items.NewManaPotion(&items.PotionConfig{
			Name: "Wiggenweld Draught", Usages: 1, Price: 15, Weight: 5, Amount: 25,
		})
	case "felix":
		heal, err := episkey()
		if err != nil {
			return nil, err
		}
		return items.NewConcoction(&items.ConcoctionConfig{
			Name: "Felix Felicis", Usages: 1, Price: 60, Weight: 3, Health: 10, Mana: -5,
			Spells: []spells.Spell{heal},
		})
	case "scroll":
		spell, err := confringo()
		if err != nil {
			return nil, err
		}
		return items.NewScroll(&items.ScrollConfig{
			Name: "Scroll of Confringo", Usages: 1, Price: 25, Weight: 1, Spell: spell,
		})
	}
	return nil, errors.NotFoundf("no item named %q, try one of: %s", name, strings.Join(itemNames, ", "))
}

// spellID resolves a catalog name to its spell ID and passes IDs through
func spellID(nameOrID string) string {
	if !slices.Contains(spellNames, strings.ToLower(nameOrID)) {
		return nameOrID
	}
	spell, err := catalogSpell(nameOrID)
	if err != nil {
		return nameOrID
	}
	return spell.GetID()
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the spells and items wizards can be given",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Spells:")
		for _, name := range spellNames {
			spell, err := catalogSpell(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "  %-10s %s\n", name, spell)
		}

		fmt.Fprintln(out, "Items:")
		for _, name := range itemNames {
			item, err := catalogItem(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "  %-10s %s\n", name, item)
		}
		return nil
	},
}
