// Package duel implements the duel orchestrator: it loads wizards from the
// repository, lets them act on each other and stores the result.
package duel

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/wizard"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
	"github.com/KirkDiggler/rpg-arcana/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arcana/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arcana/internal/pkg/random"
	"github.com/KirkDiggler/rpg-arcana/internal/repositories/wizards"
)

// Service defines the duel operations
type Service interface {
	CreateWizard(ctx context.Context, input *CreateWizardInput) (*CreateWizardOutput, error)
	GetWizard(ctx context.Context, input *GetWizardInput) (*GetWizardOutput, error)
	ListWizards(ctx context.Context, input *ListWizardsInput) (*ListWizardsOutput, error)
	DeleteWizard(ctx context.Context, input *DeleteWizardInput) (*DeleteWizardOutput, error)

	LearnSpell(ctx context.Context, input *LearnSpellInput) (*LearnSpellOutput, error)
	ForgetSpell(ctx context.Context, input *ForgetSpellInput) (*ForgetSpellOutput, error)
	CastSpell(ctx context.Context, input *CastSpellInput) (*CastSpellOutput, error)
	CastRandomSpell(ctx context.Context, input *CastRandomSpellInput) (*CastSpellOutput, error)

	UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error)
	UseRandomItem(ctx context.Context, input *UseRandomItemInput) (*UseItemOutput, error)
	SellItem(ctx context.Context, input *SellItemInput) (*SellItemOutput, error)
	SellRandomItem(ctx context.Context, input *SellRandomItemInput) (*SellItemOutput, error)
	GiveItem(ctx context.Context, input *GiveItemInput) (*GiveItemOutput, error)
	Steal(ctx context.Context, input *StealInput) (*StealOutput, error)
	Loot(ctx context.Context, input *LootInput) (*LootOutput, error)
}

// Config holds the dependencies for the duel orchestrator
type Config struct {
	Repository  wizards.Repository
	IDGenerator idgen.Generator
	Picker      random.Picker
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Picker == nil {
		vb.RequiredField("Picker")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	repo   wizards.Repository
	idGen  idgen.Generator
	picker random.Picker
	clock  clock.Clock
}

// NewOrchestrator creates a new duel orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		repo:   cfg.Repository,
		idGen:  cfg.IDGenerator,
		picker: cfg.Picker,
		clock:  cfg.Clock,
	}, nil
}

// CreateWizard validates the initial state and stores a new wizard
func (o *orchestrator) CreateWizard(ctx context.Context, input *CreateWizardInput) (*CreateWizardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	inventory := make([]magic.Tradeable, 0, len(input.Inventory))
	for _, item := range input.Inventory {
		if item == nil {
			return nil, errors.InvalidArgument("inventory contains a nil item")
		}
		inventory = append(inventory, item)
	}

	w, err := wizard.New(&wizard.Config{
		ID:            o.idGen.Generate(),
		Name:          input.Name,
		Level:         input.Level,
		BaseHP:        input.BaseHP,
		HP:            input.HP,
		BaseMP:        input.BaseMP,
		MP:            input.MP,
		Money:         input.Money,
		Capacity:      input.Capacity,
		KnownSpells:   input.KnownSpells,
		ProtectedFrom: input.ProtectedFrom,
		Inventory:     inventory,
		Picker:        o.picker,
	})
	if err != nil {
		return nil, err
	}

	w.Stamp(o.clock.Now())
	data, err := wizard.ToData(w)
	if err != nil {
		return nil, err
	}
	if _, err := o.repo.Create(ctx, wizards.CreateInput{WizardData: data}); err != nil {
		return nil, errors.Wrap(err, "failed to store wizard")
	}

	slog.InfoContext(ctx, "Wizard created",
		"wizard_id", w.GetID(),
		"name", w.Name(),
		"level", w.Level().Name(),
	)

	return &CreateWizardOutput{Wizard: w}, nil
}

// GetWizard loads a wizard
func (o *orchestrator) GetWizard(ctx context.Context, input *GetWizardInput) (*GetWizardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	w, err := o.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetWizardOutput{Wizard: w}, nil
}

// ListWizards loads every stored wizard
func (o *orchestrator) ListWizards(ctx context.Context, input *ListWizardsInput) (*ListWizardsOutput, error) {
	out, err := o.repo.List(ctx, wizards.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list wizards")
	}

	list := make([]*wizard.Wizard, 0, len(out.Wizards))
	for _, data := range out.Wizards {
		w, err := wizard.FromData(data, o.picker)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to restore wizard %s", data.ID)
		}
		list = append(list, w)
	}

	return &ListWizardsOutput{Wizards: list}, nil
}

// DeleteWizard removes a wizard
func (o *orchestrator) DeleteWizard(ctx context.Context, input *DeleteWizardInput) (*DeleteWizardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument("wizard ID is required")
	}

	if _, err := o.repo.Delete(ctx, wizards.DeleteInput{ID: input.ID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete wizard")
	}

	slog.InfoContext(ctx, "Wizard deleted", "wizard_id", input.ID)
	return &DeleteWizardOutput{}, nil
}

// LearnSpell teaches a wizard a spell
func (o *orchestrator) LearnSpell(ctx context.Context, input *LearnSpellInput) (*LearnSpellOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	w, err := o.load(ctx, input.WizardID)
	if err != nil {
		return nil, err
	}

	learned, err := w.Learn(input.Spell)
	if err != nil {
		return nil, err
	}
	if err := o.save(ctx, w); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Spell learned",
		"wizard_id", w.GetID(),
		"spell_id", input.Spell.GetID(),
		"learned", learned,
	)

	return &LearnSpellOutput{Learned: learned, Wizard: w}, nil
}

// ForgetSpell makes a wizard forget one of its spells
func (o *orchestrator) ForgetSpell(ctx context.Context, input *ForgetSpellInput) (*ForgetSpellOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	w, err := o.load(ctx, input.WizardID)
	if err != nil {
		return nil, err
	}

	spell, ok := w.FindSpell(input.SpellID)
	if !ok {
		return nil, unknownSpell(w.GetID(), input.SpellID)
	}

	forgotten, err := w.Forget(spell)
	if err != nil {
		return nil, err
	}
	if err := o.save(ctx, w); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Spell forgotten",
		"wizard_id", w.GetID(),
		"spell_id", input.SpellID,
		"forgotten", forgotten,
	)

	return &ForgetSpellOutput{Forgotten: forgotten, Wizard: w}, nil
}

// CastSpell lets the caster cast one of its spells on the target
func (o *orchestrator) CastSpell(ctx context.Context, input *CastSpellInput) (*CastSpellOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	caster, target, err := o.loadPair(ctx, input.CasterID, input.TargetID)
	if err != nil {
		return nil, err
	}

	spell, ok := caster.FindSpell(input.SpellID)
	if !ok {
		return nil, unknownSpell(caster.GetID(), input.SpellID)
	}

	cast, err := caster.CastSpell(spell, target)
	if err != nil {
		return nil, err
	}
	if err := o.save(ctx, caster, target); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Spell cast",
		"caster_id", caster.GetID(),
		"target_id", target.GetID(),
		"spell_id", spell.GetID(),
		"cast", cast,
	)

	return &CastSpellOutput{Cast: cast, Caster: caster, Target: target}, nil
}

// CastRandomSpell lets the caster cast a random known spell on the target
func (o *orchestrator) CastRandomSpell(ctx context.Context, input *CastRandomSpellInput) (*CastSpellOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	caster, target, err := o.loadPair(ctx, input.CasterID, input.TargetID)
	if err != nil {
		return nil, err
	}

	cast, err := caster.CastRandomSpell(target)
	if err != nil {
		return nil, err
	}
	if err := o.save(ctx, caster, target); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Random spell cast",
		"caster_id", caster.GetID(),
		"target_id", target.GetID(),
		"cast", cast,
	)

	return &CastSpellOutput{Cast: cast, Caster: caster, Target: target}, nil
}

// UseItem lets a wizard use one of its items on the target
func (o *orchestrator) UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	user, target, err := o.loadPair(ctx, input.WizardID, input.TargetID)
	if err != nil {
		return nil, err
	}

	item, ok := user.FindItem(input.ItemID)
	if !ok {
		return nil, unknownItem(user.GetID(), input.ItemID)
	}

	used, err := user.UseItem(item, target)
	if err != nil {
		return nil, err
	}
	if err := o.save(ctx, user, target); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Item used",
		"wizard_id", user.GetID(),
		"target_id", target.GetID(),
		"item_id", item.GetID(),
		"used", used,
	)

	return &UseItemOutput{Used: used, Wizard: user, Target: target}, nil
}

// UseRandomItem lets a wizard use a random carried item on the target
func (o *orchestrator) UseRandomItem(ctx context.Context, input *UseRandomItemInput) (*UseItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	user, target, err := o.loadPair(ctx, input.WizardID, input.TargetID)
	if err != nil {
		return nil, err
	}

	used, err := user.UseRandomItem(target)
	if err != nil {
		return nil, err
	}
	if err := o.save(ctx, user, target); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Random item used",
		"wizard_id", user.GetID(),
		"target_id", target.GetID(),
		"used", used,
	)

	return &UseItemOutput{Used: used, Wizard: user, Target: target}, nil
}

// SellItem sells one of the seller's items to the buyer
func (o *orchestrator) SellItem(ctx context.Context, input *SellItemInput) (*SellItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	seller, buyer, err := o.loadPair(ctx, input.SellerID, input.BuyerID)
	if err != nil {
		return nil, err
	}

	item, ok := seller.FindItem(input.ItemID)
	if !ok {
		return nil, unknownItem(seller.GetID(), input.ItemID)
	}

	sold, err := seller.SellItem(item, buyer)
	if err != nil {
		return nil, err
	}
	if err := o.save(ctx, seller, buyer); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Item sold",
		"seller_id", seller.GetID(),
		"buyer_id", buyer.GetID(),
		"item_id", item.GetID(),
		"price", item.Price(),
		"sold", sold,
	)

	return &SellItemOutput{Sold: sold, Seller: seller, Buyer: buyer}, nil
}

// SellRandomItem sells a random carried item to the buyer
func (o *orchestrator) SellRandomItem(ctx context.Context, input *SellRandomItemInput) (*SellItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	seller, buyer, err := o.loadPair(ctx, input.SellerID, input.BuyerID)
	if err != nil {
		return nil, err
	}

	sold, err := seller.SellRandomItem(buyer)
	if err != nil {
		return nil, err
	}
	if err := o.save(ctx, seller, buyer); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Random item sold",
		"seller_id", seller.GetID(),
		"buyer_id", buyer.GetID(),
		"sold", sold,
	)

	return &SellItemOutput{Sold: sold, Seller: seller, Buyer: buyer}, nil
}

// GiveItem hands one of the giver's items to the taker for free
func (o *orchestrator) GiveItem(ctx context.Context, input *GiveItemInput) (*GiveItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	giver, taker, err := o.loadPair(ctx, input.GiverID, input.TakerID)
	if err != nil {
		return nil, err
	}

	item, ok := giver.FindItem(input.ItemID)
	if !ok {
		return nil, unknownItem(giver.GetID(), input.ItemID)
	}

	given, err := magic.Give(item, giver, taker)
	if err != nil {
		return nil, err
	}
	if err := o.save(ctx, giver, taker); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Item given",
		"giver_id", giver.GetID(),
		"taker_id", taker.GetID(),
		"item_id", item.GetID(),
		"given", given,
	)

	return &GiveItemOutput{Given: given, Giver: giver, Taker: taker}, nil
}

// Steal lets the thief take a random item from the victim
func (o *orchestrator) Steal(ctx context.Context, input *StealInput) (*StealOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	victim, thief, err := o.loadPair(ctx, input.VictimID, input.ThiefID)
	if err != nil {
		return nil, err
	}

	stolen, err := victim.Steal(thief)
	if err != nil {
		return nil, err
	}
	if err := o.save(ctx, victim, thief); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Theft attempted",
		"victim_id", victim.GetID(),
		"thief_id", thief.GetID(),
		"stolen", stolen,
	)

	return &StealOutput{Stolen: stolen, Victim: victim, Thief: thief}, nil
}

// Loot lets the looter empty a dead victim's inventory
func (o *orchestrator) Loot(ctx context.Context, input *LootInput) (*LootOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	victim, looter, err := o.loadPair(ctx, input.VictimID, input.LooterID)
	if err != nil {
		return nil, err
	}

	looted, err := victim.Loot(looter)
	if err != nil {
		return nil, err
	}
	if err := o.save(ctx, victim, looter); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Loot attempted",
		"victim_id", victim.GetID(),
		"looter_id", looter.GetID(),
		"looted", looted,
	)

	return &LootOutput{Looted: looted, Victim: victim, Looter: looter}, nil
}

func (o *orchestrator) load(ctx context.Context, id string) (*wizard.Wizard, error) {
	if id == "" {
		return nil, errors.InvalidArgument("wizard ID is required")
	}

	out, err := o.repo.Get(ctx, wizards.GetInput{ID: id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load wizard %s", id)
	}

	w, err := wizard.FromData(out.WizardData, o.picker)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to restore wizard %s", id)
	}

	slog.DebugContext(ctx, "Wizard loaded", "wizard_id", id)
	return w, nil
}

// loadPair loads both parties of a two-party action concurrently. The same
// ID on both sides loads a single wizard that plays both roles.
func (o *orchestrator) loadPair(ctx context.Context, firstID, secondID string) (*wizard.Wizard, *wizard.Wizard, error) {
	if firstID == "" || secondID == "" {
		return nil, nil, errors.InvalidArgument("both wizard IDs are required")
	}

	if firstID == secondID {
		w, err := o.load(ctx, firstID)
		if err != nil {
			return nil, nil, err
		}
		return w, w, nil
	}

	var first, second *wizard.Wizard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		first, err = o.load(gctx, firstID)
		return err
	})
	g.Go(func() error {
		var err error
		second, err = o.load(gctx, secondID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return first, second, nil
}

// save stamps and stores every distinct wizard given
func (o *orchestrator) save(ctx context.Context, ws ...*wizard.Wizard) error {
	now := o.clock.Now()

	seen := make(map[*wizard.Wizard]bool, len(ws))
	snapshots := make([]*wizard.Data, 0, len(ws))
	for _, w := range ws {
		if seen[w] {
			continue
		}
		seen[w] = true

		w.Stamp(now)
		data, err := wizard.ToData(w)
		if err != nil {
			return err
		}
		snapshots = append(snapshots, data)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, data := range snapshots {
		g.Go(func() error {
			if _, err := o.repo.Update(gctx, wizards.UpdateInput{WizardData: data}); err != nil {
				return errors.Wrapf(err, "failed to store wizard %s", data.ID)
			}
			return nil
		})
	}

	return g.Wait()
}

func unknownSpell(wizardID, spellID string) error {
	return errors.NotFoundf("wizard %s does not know spell %s", wizardID, spellID).
		WithMeta("wizard_id", wizardID).
		WithMeta("spell_id", spellID)
}

func unknownItem(wizardID, itemID string) error {
	return errors.NotFoundf("wizard %s does not carry item %s", wizardID, itemID).
		WithMeta("wizard_id", wizardID).
		WithMeta("item_id", itemID)
}
