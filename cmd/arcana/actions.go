package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/wizard"
	"github.com/KirkDiggler/rpg-arcana/internal/orchestrators/duel"
)

var castCmd = &cobra.Command{
	Use:   "cast [caster-id] [target-id] [spell]",
	Short: "Cast a known spell, or a random one when no spell is given",
	Long: `Cast a spell the caster knows on the target. The spell is a catalog name or
a spell ID. Caster and target may be the same wizard.

  arcana cast wiz_1 wiz_2 confringo
  arcana cast wiz_1 wiz_1 episkey`,
	Args: cobra.RangeArgs(2, 3),
	RunE: cast,
}

var learnCmd = &cobra.Command{
	Use:   "learn [wizard-id] [spell]",
	Short: "Teach a wizard a catalog spell",
	Args:  cobra.ExactArgs(2),
	RunE:  learn,
}

var forgetCmd = &cobra.Command{
	Use:   "forget [wizard-id] [spell]",
	Short: "Make a wizard forget a spell",
	Args:  cobra.ExactArgs(2),
	RunE:  forget,
}

var useCmd = &cobra.Command{
	Use:   "use [wizard-id] [target-id] [item-id]",
	Short: "Use a carried item, or a random one when no item is given",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  use,
}

var sellCmd = &cobra.Command{
	Use:   "sell [seller-id] [buyer-id] [item-id]",
	Short: "Sell a carried item, or a random one when no item is given",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  sell,
}

var giveCmd = &cobra.Command{
	Use:   "give [giver-id] [taker-id] [item-id]",
	Short: "Give a carried item away",
	Args:  cobra.ExactArgs(3),
	RunE:  give,
}

var stealCmd = &cobra.Command{
	Use:   "steal [victim-id] [thief-id]",
	Short: "Let the thief steal a random item from the victim",
	Args:  cobra.ExactArgs(2),
	RunE:  steal,
}

var lootCmd = &cobra.Command{
	Use:   "loot [victim-id] [looter-id]",
	Short: "Let the looter empty a dead victim's inventory",
	Args:  cobra.ExactArgs(2),
	RunE:  loot,
}

func cast(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var (
		out *duel.CastSpellOutput
		err error
	)
	if len(args) == 3 {
		out, err = service.CastSpell(ctx, &duel.CastSpellInput{CasterID: args[0], TargetID: args[1], SpellID: spellID(args[2])})
	} else {
		out, err = service.CastRandomSpell(ctx, &duel.CastRandomSpellInput{CasterID: args[0], TargetID: args[1]})
	}
	if err != nil {
		return fmt.Errorf("failed to cast: %w", err)
	}

	report(cmd.OutOrStdout(), "Cast", out.Cast, out.Caster, out.Target)
	return nil
}

func learn(cmd *cobra.Command, args []string) error {
	spell, err := catalogSpell(args[1])
	if err != nil {
		return err
	}

	out, err := service.LearnSpell(cmd.Context(), &duel.LearnSpellInput{WizardID: args[0], Spell: spell})
	if err != nil {
		return fmt.Errorf("failed to learn spell: %w", err)
	}

	report(cmd.OutOrStdout(), "Learned", out.Learned, out.Wizard)
	return nil
}

func forget(cmd *cobra.Command, args []string) error {
	out, err := service.ForgetSpell(cmd.Context(), &duel.ForgetSpellInput{WizardID: args[0], SpellID: spellID(args[1])})
	if err != nil {
		return fmt.Errorf("failed to forget spell: %w", err)
	}

	report(cmd.OutOrStdout(), "Forgotten", out.Forgotten, out.Wizard)
	return nil
}

func use(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var (
		out *duel.UseItemOutput
		err error
	)
	if len(args) == 3 {
		out, err = service.UseItem(ctx, &duel.UseItemInput{WizardID: args[0], TargetID: args[1], ItemID: args[2]})
	} else {
		out, err = service.UseRandomItem(ctx, &duel.UseRandomItemInput{WizardID: args[0], TargetID: args[1]})
	}
	if err != nil {
		return fmt.Errorf("failed to use item: %w", err)
	}

	report(cmd.OutOrStdout(), "Used", out.Used, out.Wizard, out.Target)
	return nil
}

func sell(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var (
		out *duel.SellItemOutput
		err error
	)
	if len(args) == 3 {
		out, err = service.SellItem(ctx, &duel.SellItemInput{SellerID: args[0], BuyerID: args[1], ItemID: args[2]})
	} else {
		out, err = service.SellRandomItem(ctx, &duel.SellRandomItemInput{SellerID: args[0], BuyerID: args[1]})
	}
	if err != nil {
		return fmt.Errorf("failed to sell item: %w", err)
	}

	report(cmd.OutOrStdout(), "Sold", out.Sold, out.Seller, out.Buyer)
	return nil
}

func give(cmd *cobra.Command, args []string) error {
	out, err := service.GiveItem(cmd.Context(), &duel.GiveItemInput{GiverID: args[0], TakerID: args[1], ItemID: args[2]})
	if err != nil {
		return fmt.Errorf("failed to give item: %w", err)
	}

	report(cmd.OutOrStdout(), "Given", out.Given, out.Giver, out.Taker)
	return nil
}

func steal(cmd *cobra.Command, args []string) error {
	out, err := service.Steal(cmd.Context(), &duel.StealInput{VictimID: args[0], ThiefID: args[1]})
	if err != nil {
		return fmt.Errorf("failed to steal: %w", err)
	}

	report(cmd.OutOrStdout(), "Stolen", out.Stolen, out.Victim, out.Thief)
	return nil
}

func loot(cmd *cobra.Command, args []string) error {
	out, err := service.Loot(cmd.Context(), &duel.LootInput{VictimID: args[0], LooterID: args[1]})
	if err != nil {
		return fmt.Errorf("failed to loot: %w", err)
	}

	report(cmd.OutOrStdout(), "Looted", out.Looted, out.Victim, out.Looter)
	return nil
}

// report prints the outcome and every distinct wizard involved
func report(w io.Writer, action string, ok bool, wizards ...*wizard.Wizard) {
	fmt.Fprintf(w, "%s: %t\n", action, ok)

	seen := make(map[*wizard.Wizard]bool, len(wizards))
	for _, wiz := range wizards {
		if seen[wiz] {
			continue
		}
		seen[wiz] = true
		printWizard(w, wiz)
	}
}
