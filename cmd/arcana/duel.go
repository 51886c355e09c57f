package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/items"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/spells"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/wizard"
	"github.com/KirkDiggler/rpg-arcana/internal/orchestrators/duel"
)

var duelRounds int

var duelCmd = &cobra.Command{
	Use:   "duel",
	Short: "Run a scripted duel between two new wizards",
	Long: `Create two wizards in the configured store and let them duel. Each turn a
wizard below half health drinks a potion, otherwise it casts its next
spell: attacks at the opponent, everything else on itself. The winner loots
the loser.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDuel(cmd.Context(), service, cmd.OutOrStdout(), duelRounds)
	},
}

func init() {
	duelCmd.Flags().IntVar(&duelRounds, "rounds", 10, "maximum number of rounds")
}

// duelist tracks one side of a duel
type duelist struct {
	w    *wizard.Wizard
	next int
}

func runDuel(ctx context.Context, svc duel.Service, out io.Writer, rounds int) error {
	harryInput, err := newWizardInput("Harry", magic.Adept, 100, 0, 40, 60,
		[]string{"confringo", "episkey", "stupefy"}, []string{"elixir", "scroll"})
	if err != nil {
		return err
	}
	dracoInput, err := newWizardInput("Draco", magic.Student, 90, 0, 80, 60,
		[]string{"protego", "diffindo", "stupefy", "vulnera"}, []string{"draught", "felix"})
	if err != nil {
		return err
	}

	harry, err := svc.CreateWizard(ctx, harryInput)
	if err != nil {
		return fmt.Errorf("failed to create Harry: %w", err)
	}
	draco, err := svc.CreateWizard(ctx, dracoInput)
	if err != nil {
		return fmt.Errorf("failed to create Draco: %w", err)
	}

	fmt.Fprintln(out, "Duelists:")
	printWizard(out, harry.Wizard)
	printWizard(out, draco.Wizard)

	// Harry buys whatever Draco carries first before the duel starts
	if wares := draco.Wizard.Inventory(); len(wares) > 0 {
		sold, err := svc.SellItem(ctx, &duel.SellItemInput{
			SellerID: draco.Wizard.GetID(),
			BuyerID:  harry.Wizard.GetID(),
			ItemID:   wares[0].GetID(),
		})
		if err != nil {
			return fmt.Errorf("failed to trade: %w", err)
		}
		fmt.Fprintf(out, "\nDraco sells %s to Harry: %t\n", wares[0], sold.Sold)
		harry.Wizard, draco.Wizard = sold.Buyer, sold.Seller
	}

	sides := [2]*duelist{{w: harry.Wizard}, {w: draco.Wizard}}

	for round := 1; round <= rounds; round++ {
		fmt.Fprintf(out, "\nRound %d\n", round)
		for turn := range sides {
			actor, foe := sides[turn], sides[1-turn]
			if actor.w.IsDead() || foe.w.IsDead() {
				break
			}
			if err := takeTurn(ctx, svc, out, actor, foe); err != nil {
				return err
			}
		}
		if sides[0].w.IsDead() || sides[1].w.IsDead() {
			break
		}
	}

	return finishDuel(ctx, svc, out, sides[0], sides[1])
}

func takeTurn(ctx context.Context, svc duel.Service, out io.Writer, actor, foe *duelist) error {
	name := actor.w.Name()

	if actor.w.HP()*2 < actor.w.BaseHP() {
		if potion := firstPotion(actor.w); potion != nil {
			used, err := svc.UseItem(ctx, &duel.UseItemInput{
				WizardID: actor.w.GetID(),
				TargetID: actor.w.GetID(),
				ItemID:   potion.GetID(),
			})
			if err != nil {
				return fmt.Errorf("%s failed to drink %s: %w", name, potion.Name(), err)
			}
			actor.w = used.Wizard
			fmt.Fprintf(out, "  %s drinks %s: %t, now %d HP %d MP\n", name, potion.Name(), used.Used, actor.w.HP(), actor.w.MP())
			return nil
		}
	}

	known := actor.w.KnownSpells()
	if len(known) == 0 {
		fmt.Fprintf(out, "  %s knows no spells and waits\n", name)
		return nil
	}
	spell := known[actor.next%len(known)]
	actor.next++

	target := foe
	if _, attack := spell.(*spells.Attacking); !attack {
		target = actor
	}

	cast, err := svc.CastSpell(ctx, &duel.CastSpellInput{
		CasterID: actor.w.GetID(),
		TargetID: target.w.GetID(),
		SpellID:  spell.GetID(),
	})
	if err != nil {
		return fmt.Errorf("%s failed to cast %s: %w", name, spell.Name(), err)
	}
	actor.w = cast.Caster
	target.w = cast.Target

	fmt.Fprintf(out, "  %s casts %s on %s: %t, %s now has %d HP %d MP\n",
		name, spell.Name(), target.w.Name(), cast.Cast, target.w.Name(), target.w.HP(), target.w.MP())
	return nil
}

// firstPotion returns the first carried potion with a gulp left
func firstPotion(w *wizard.Wizard) items.Potion {
	for _, t := range w.Inventory() {
		if potion, ok := t.(items.Potion); ok && potion.Usages() > 0 {
			return potion
		}
	}
	return nil
}

func finishDuel(ctx context.Context, svc duel.Service, out io.Writer, a, b *duelist) error {
	winner, loser := a, b
	if a.w.IsDead() {
		winner, loser = b, a
	}

	if !loser.w.IsDead() {
		fmt.Fprintln(out, "\nBoth wizards are still standing")
	} else {
		looted, err := svc.Loot(ctx, &duel.LootInput{VictimID: loser.w.GetID(), LooterID: winner.w.GetID()})
		if err != nil {
			return fmt.Errorf("failed to loot: %w", err)
		}
		winner.w, loser.w = looted.Looter, looted.Victim
		fmt.Fprintf(out, "\n%s wins and loots %s: %t\n", winner.w.Name(), loser.w.Name(), looted.Looted)
	}

	fmt.Fprintln(out, "\nFinal state:")
	printWizard(out, a.w)
	printWizard(out, b.w)
	return nil
}
