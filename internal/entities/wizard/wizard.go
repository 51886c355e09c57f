// Package wizard implements the wizard: a spell caster that is at once a mana
// source, a target for spells and items, and a trader.
package wizard

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/spells"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
	"github.com/KirkDiggler/rpg-arcana/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arcana/internal/pkg/random"
)

// EntityType is returned by GetType
const EntityType = "wizard"

// Config holds the initial state of a wizard
type Config struct {
	// ID is generated when empty
	ID     string
	Name   string
	Level  magic.Level
	BaseHP int
	HP     int
	// BaseMP must reach the mana threshold of Level
	BaseMP   int
	MP       int
	Money    int
	Capacity int

	KnownSpells []spells.Spell
	// ProtectedFrom lists the IDs of attacking spells the wizard is shielded from
	ProtectedFrom []string
	// Inventory must fit into Capacity
	Inventory []magic.Tradeable

	// Picker drives random spell and item choices. Defaults to dice rolls.
	Picker random.Picker
}

// Validate checks the initial state
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("name", c.Name, vb)
	if !c.Level.Valid() {
		vb.InvalidField("level", fmt.Sprintf("level %d is not defined", int(c.Level)))
	}
	errors.ValidateNonNegative("base_hp", c.BaseHP, vb)
	errors.ValidateNonNegative("hp", c.HP, vb)
	errors.ValidateNonNegative("base_mp", c.BaseMP, vb)
	errors.ValidateNonNegative("mp", c.MP, vb)
	errors.ValidateNonNegative("money", c.Money, vb)
	errors.ValidateNonNegative("capacity", c.Capacity, vb)

	if c.Level.Valid() && c.BaseMP < c.Level.Mana() {
		vb.Fieldf("base_mp", "must be at least %d for level %s", c.Level.Mana(), c.Level.Name())
	}

	for _, spell := range c.KnownSpells {
		if spell == nil {
			vb.InvalidField("known_spells", "contains a nil spell")
			break
		}
	}
	for _, id := range c.ProtectedFrom {
		if id == "" {
			vb.InvalidField("protected_from", "contains an empty spell ID")
			break
		}
	}

	weight := 0
	for _, item := range c.Inventory {
		if item == nil {
			vb.InvalidField("inventory", "contains a nil item")
			weight = -1
			break
		}
		weight += item.Weight()
	}
	if weight > c.Capacity && c.Capacity >= 0 {
		vb.Fieldf("inventory", "weighs %d which exceeds the capacity of %d", weight, c.Capacity)
	}

	return vb.Build()
}

// Wizard is a living (HP > 0) or dead (HP == 0) caster. A dead wizard cannot
// act but can still be stolen from and looted.
//
// Wizards are not safe for concurrent use.
type Wizard struct {
	id       string
	name     string
	level    magic.Level
	baseHP   int
	hp       int
	baseMP   int
	mp       int
	money    int
	capacity int

	knownSpells   []spells.Spell
	protectedFrom map[string]struct{}
	inventory     []magic.Tradeable

	picker    random.Picker
	createdAt time.Time
	updatedAt time.Time
}

var (
	_ magic.Source = (*Wizard)(nil)
	_ magic.Target = (*Wizard)(nil)
	_ magic.Trader = (*Wizard)(nil)
)

// New validates cfg and creates a wizard. Spells, protections and items
// listed twice are kept once.
func New(cfg *Config) (*Wizard, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := &Wizard{
		id:            cfg.ID,
		name:          cfg.Name,
		level:         cfg.Level,
		baseHP:        cfg.BaseHP,
		hp:            cfg.HP,
		baseMP:        cfg.BaseMP,
		mp:            cfg.MP,
		money:         cfg.Money,
		capacity:      cfg.Capacity,
		protectedFrom: make(map[string]struct{}, len(cfg.ProtectedFrom)),
		picker:        cfg.Picker,
	}
	if w.id == "" {
		w.id = idgen.WizardID()
	}
	if w.picker == nil {
		w.picker = random.NewDice()
	}

	for _, spell := range cfg.KnownSpells {
		if w.spellIndex(spell.GetID()) < 0 {
			w.knownSpells = append(w.knownSpells, spell)
		}
	}
	for _, id := range cfg.ProtectedFrom {
		w.protectedFrom[id] = struct{}{}
	}
	for _, item := range cfg.Inventory {
		if w.itemIndex(item.GetID()) < 0 {
			w.inventory = append(w.inventory, item)
		}
	}

	return w, nil
}

// GetID returns the wizard ID
func (w *Wizard) GetID() string { return w.id }

// GetType returns the entity type
func (w *Wizard) GetType() string { return EntityType }

// Name returns the wizard's name
func (w *Wizard) Name() string { return w.name }

// Level returns the wizard's magic level
func (w *Wizard) Level() magic.Level { return w.level }

// HP returns the current health
func (w *Wizard) HP() int { return w.hp }

// BaseHP returns the base health percentages are taken of
func (w *Wizard) BaseHP() int { return w.baseHP }

// MP returns the current mana
func (w *Wizard) MP() int { return w.mp }

// BaseMP returns the base mana percentages are taken of
func (w *Wizard) BaseMP() int { return w.baseMP }

// Money returns the wizard's Knuts
func (w *Wizard) Money() int { return w.money }

// Capacity returns the carrying capacity in grams
func (w *Wizard) Capacity() int { return w.capacity }

// CreatedAt returns when the wizard was first stored
func (w *Wizard) CreatedAt() time.Time { return w.createdAt }

// UpdatedAt returns when the wizard was last stored
func (w *Wizard) UpdatedAt() time.Time { return w.updatedAt }

// Stamp records a save at now
func (w *Wizard) Stamp(now time.Time) {
	if w.createdAt.IsZero() {
		w.createdAt = now
	}
	w.updatedAt = now
}

// IsDead reports whether the wizard has no health left
func (w *Wizard) IsDead() bool { return w.hp == 0 }

// KnownSpells returns a copy of the known spells in learning order
func (w *Wizard) KnownSpells() []spells.Spell {
	return slices.Clone(w.knownSpells)
}

// Inventory returns a copy of the carried items in acquisition order
func (w *Wizard) Inventory() []magic.Tradeable {
	return slices.Clone(w.inventory)
}

// ProtectedFrom returns the sorted IDs of the attacks the wizard is shielded from
func (w *Wizard) ProtectedFrom() []string {
	ids := make([]string, 0, len(w.protectedFrom))
	for id := range w.protectedFrom {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// InventoryWeight returns the total weight carried
func (w *Wizard) InventoryWeight() int {
	total := 0
	for _, item := range w.inventory {
		total += item.Weight()
	}
	return total
}

// FindSpell returns the known spell with the given ID
func (w *Wizard) FindSpell(id string) (spells.Spell, bool) {
	if i := w.spellIndex(id); i >= 0 {
		return w.knownSpells[i], true
	}
	return nil, false
}

// FindItem returns the carried item with the given ID
func (w *Wizard) FindItem(id string) (magic.Tradeable, bool) {
	if i := w.itemIndex(id); i >= 0 {
		return w.inventory[i], true
	}
	return nil, false
}

func (w *Wizard) spellIndex(id string) int {
	return slices.IndexFunc(w.knownSpells, func(s spells.Spell) bool { return s.GetID() == id })
}

func (w *Wizard) itemIndex(id string) int {
	return slices.IndexFunc(w.inventory, func(t magic.Tradeable) bool { return t.GetID() == id })
}

// Learn adds spell to the known spells. It reports false when the wizard is
// dead or already knows the spell.
func (w *Wizard) Learn(spell spells.Spell) (bool, error) {
	if spell == nil {
		return false, errors.InvalidArgument("spell to learn must not be nil")
	}
	if w.IsDead() || w.spellIndex(spell.GetID()) >= 0 {
		return false, nil
	}
	w.knownSpells = append(w.knownSpells, spell)
	return true, nil
}

// Forget removes spell from the known spells. It reports false when the
// wizard is dead or does not know the spell.
func (w *Wizard) Forget(spell spells.Spell) (bool, error) {
	if spell == nil {
		return false, errors.InvalidArgument("spell to forget must not be nil")
	}
	if w.IsDead() {
		return false, nil
	}
	i := w.spellIndex(spell.GetID())
	if i < 0 {
		return false, nil
	}
	w.knownSpells = slices.Delete(w.knownSpells, i, i+1)
	return true, nil
}

// CastSpell casts a known spell on target with the wizard as mana source.
// It reports whether the cast was attempted, not whether it had an effect.
func (w *Wizard) CastSpell(spell spells.Spell, target magic.Target) (bool, error) {
	if spell == nil {
		return false, errors.InvalidArgument("spell to cast must not be nil")
	}
	if target == nil {
		return false, errors.InvalidArgument("target of the spell must not be nil")
	}
	if w.IsDead() || w.spellIndex(spell.GetID()) < 0 {
		return false, nil
	}
	if err := spell.Cast(w, target); err != nil {
		return false, err
	}
	return true, nil
}

// CastRandomSpell casts a uniformly chosen known spell on target
func (w *Wizard) CastRandomSpell(target magic.Target) (bool, error) {
	if target == nil {
		return false, errors.InvalidArgument("target of the spell must not be nil")
	}
	if len(w.knownSpells) == 0 {
		return false, nil
	}
	i, err := w.picker.Intn(len(w.knownSpells))
	if err != nil {
		return false, err
	}
	return w.CastSpell(w.knownSpells[i], target)
}

// UseItem uses a carried item on target. It reports whether the item was
// used, not whether it had an effect.
func (w *Wizard) UseItem(item magic.Tradeable, target magic.Target) (bool, error) {
	if item == nil {
		return false, errors.InvalidArgument("item to use must not be nil")
	}
	if target == nil {
		return false, errors.InvalidArgument("target of the item must not be nil")
	}
	if w.IsDead() || w.itemIndex(item.GetID()) < 0 {
		return false, nil
	}
	if err := item.UseOn(target); err != nil {
		return false, err
	}
	return true, nil
}

// UseRandomItem uses a uniformly chosen carried item on target
func (w *Wizard) UseRandomItem(target magic.Target) (bool, error) {
	if target == nil {
		return false, errors.InvalidArgument("target of the item must not be nil")
	}
	item, err := w.randomItem()
	if err != nil || item == nil {
		return false, err
	}
	return w.UseItem(item, target)
}

// SellItem sells a carried item to buyer at its price
func (w *Wizard) SellItem(item magic.Tradeable, buyer magic.Trader) (bool, error) {
	if item == nil {
		return false, errors.InvalidArgument("item to sell must not be nil")
	}
	if buyer == nil {
		return false, errors.InvalidArgument("buyer must not be nil")
	}
	if w.IsDead() || w.itemIndex(item.GetID()) < 0 {
		return false, nil
	}
	return magic.Purchase(item, w, buyer)
}

// SellRandomItem sells a uniformly chosen carried item to buyer
func (w *Wizard) SellRandomItem(buyer magic.Trader) (bool, error) {
	if buyer == nil {
		return false, errors.InvalidArgument("buyer must not be nil")
	}
	item, err := w.randomItem()
	if err != nil || item == nil {
		return false, err
	}
	return w.SellItem(item, buyer)
}

// randomItem returns nil when the inventory is empty
func (w *Wizard) randomItem() (magic.Tradeable, error) {
	if len(w.inventory) == 0 {
		return nil, nil
	}
	i, err := w.picker.Intn(len(w.inventory))
	if err != nil {
		return nil, err
	}
	return w.inventory[i], nil
}

// ProvideMana deducts amount when the wizard is alive, has the level and has
// the mana
func (w *Wizard) ProvideMana(levelNeeded magic.Level, amount int) (bool, error) {
	if err := magic.ValidateManaRequest(levelNeeded, amount); err != nil {
		return false, err
	}
	if w.IsDead() || !w.level.AtLeast(levelNeeded) || w.mp < amount {
		return false, nil
	}
	w.mp -= amount
	return true, nil
}

// Possesses reports whether the wizard carries item
func (w *Wizard) Possesses(item magic.Tradeable) (bool, error) {
	if item == nil {
		return false, errors.InvalidArgument("item must not be nil")
	}
	return w.itemIndex(item.GetID()) >= 0, nil
}

// CanAfford reports whether the wizard has at least amount Knuts
func (w *Wizard) CanAfford(amount int) (bool, error) {
	if err := magic.ValidateAmount(amount); err != nil {
		return false, err
	}
	return w.money >= amount, nil
}

// HasCapacity reports whether weight more grams fit into the inventory
func (w *Wizard) HasCapacity(weight int) (bool, error) {
	if weight < 0 {
		return false, errors.InvalidArgumentf("weight %d must not be negative", weight)
	}
	return w.InventoryWeight()+weight <= w.capacity, nil
}

// Pay spends amount Knuts if the wizard is alive and can afford it
func (w *Wizard) Pay(amount int) (bool, error) {
	if err := magic.ValidateAmount(amount); err != nil {
		return false, err
	}
	if w.IsDead() || w.money < amount {
		return false, nil
	}
	w.money -= amount
	return true, nil
}

// Earn receives amount Knuts if the wizard is alive
func (w *Wizard) Earn(amount int) (bool, error) {
	if err := magic.ValidateAmount(amount); err != nil {
		return false, err
	}
	if w.IsDead() {
		return false, nil
	}
	w.money = addCapped(w.money, amount)
	return true, nil
}

// AddToInventory adds item if it fits and is not carried already
func (w *Wizard) AddToInventory(item magic.Tradeable) (bool, error) {
	if item == nil {
		return false, errors.InvalidArgument("item to add must not be nil")
	}
	fits, err := w.HasCapacity(item.Weight())
	if err != nil {
		return false, err
	}
	if !fits || w.itemIndex(item.GetID()) >= 0 {
		return false, nil
	}
	w.inventory = append(w.inventory, item)
	return true, nil
}

// RemoveFromInventory removes item if it is carried
func (w *Wizard) RemoveFromInventory(item magic.Tradeable) (bool, error) {
	if item == nil {
		return false, errors.InvalidArgument("item to remove must not be nil")
	}
	i := w.itemIndex(item.GetID())
	if i < 0 {
		return false, nil
	}
	w.inventory = slices.Delete(w.inventory, i, i+1)
	return true, nil
}

// CanSteal is true while the wizard is alive
func (w *Wizard) CanSteal() bool { return !w.IsDead() }

// Steal lets thief take a random item from the wizard. The item leaves the
// wizard before it is offered to the thief, so it is lost when the thief
// cannot carry it.
func (w *Wizard) Steal(thief magic.Trader) (bool, error) {
	if thief == nil {
		return false, errors.InvalidArgument("thief must not be nil")
	}
	if !thief.CanSteal() {
		return false, nil
	}

	item, err := w.randomItem()
	if err != nil || item == nil {
		return false, err
	}
	if _, err := w.RemoveFromInventory(item); err != nil {
		return false, err
	}
	return thief.AddToInventory(item)
}

// IsLootable is true once the wizard is dead
func (w *Wizard) IsLootable() bool { return w.IsDead() }

// CanLoot is true while the wizard is alive
func (w *Wizard) CanLoot() bool { return !w.IsDead() }

// Loot offers every item to looter and empties the inventory whatever the
// looter could carry. It reports whether the looter took at least one item.
func (w *Wizard) Loot(looter magic.Trader) (bool, error) {
	if looter == nil {
		return false, errors.InvalidArgument("looter must not be nil")
	}
	if !looter.CanLoot() || !w.IsLootable() {
		return false, nil
	}

	loot := w.inventory
	w.inventory = nil

	anyAdded := false
	for _, item := range loot {
		added, err := looter.AddToInventory(item)
		if err != nil {
			return anyAdded, err
		}
		anyAdded = anyAdded || added
	}
	return anyAdded, nil
}

// percentOf moves current by percentage of base in direction sign and
// truncates the result into [0, math.MaxInt]
func percentOf(current, base, percentage int, sign float64) int {
	v := math.Max(float64(current)+sign*float64(base)*(float64(percentage)/100.0), 0)
	if v >= math.MaxInt {
		return math.MaxInt
	}
	return int(v)
}

// addCapped adds a non-negative amount to a non-negative value, saturating at
// math.MaxInt
func addCapped(value, amount int) int {
	if amount > math.MaxInt-value {
		return math.MaxInt
	}
	return value + amount
}

// TakeDamage lowers health by amount, not below zero
func (w *Wizard) TakeDamage(amount int) error {
	if err := magic.ValidateAmount(amount); err != nil {
		return err
	}
	w.hp = max(w.hp-amount, 0)
	return nil
}

// TakeDamagePercent lowers health by percentage of the base health
func (w *Wizard) TakeDamagePercent(percentage int) error {
	if err := magic.ValidatePercentage(percentage); err != nil {
		return err
	}
	w.hp = percentOf(w.hp, w.baseHP, percentage, -1)
	return nil
}

// WeakenMagic lowers mana by amount, not below zero
func (w *Wizard) WeakenMagic(amount int) error {
	if err := magic.ValidateAmount(amount); err != nil {
		return err
	}
	w.mp = max(w.mp-amount, 0)
	return nil
}

// WeakenMagicPercent lowers mana by percentage of the base mana
func (w *Wizard) WeakenMagicPercent(percentage int) error {
	if err := magic.ValidatePercentage(percentage); err != nil {
		return err
	}
	w.mp = percentOf(w.mp, w.baseMP, percentage, -1)
	return nil
}

// Heal raises health by amount. Health may exceed the base.
func (w *Wizard) Heal(amount int) error {
	if err := magic.ValidateAmount(amount); err != nil {
		return err
	}
	w.hp = addCapped(w.hp, amount)
	return nil
}

// HealPercent raises health by percentage of the base health
func (w *Wizard) HealPercent(percentage int) error {
	if err := magic.ValidatePercentage(percentage); err != nil {
		return err
	}
	w.hp = percentOf(w.hp, w.baseHP, percentage, 1)
	return nil
}

// EnforceMagic raises mana by amount. Mana may exceed the base.
func (w *Wizard) EnforceMagic(amount int) error {
	if err := magic.ValidateAmount(amount); err != nil {
		return err
	}
	w.mp = addCapped(w.mp, amount)
	return nil
}

// EnforceMagicPercent raises mana by percentage of the base mana
func (w *Wizard) EnforceMagicPercent(percentage int) error {
	if err := magic.ValidatePercentage(percentage); err != nil {
		return err
	}
	w.mp = percentOf(w.mp, w.baseMP, percentage, 1)
	return nil
}

// IsProtected reports whether the next cast of the given attack is nullified
func (w *Wizard) IsProtected(spellID string) bool {
	_, ok := w.protectedFrom[spellID]
	return ok
}

// SetProtection adds the given attacks to the protections
func (w *Wizard) SetProtection(spellIDs []string) error {
	if err := magic.ValidateSpellIDs(spellIDs); err != nil {
		return err
	}
	for _, id := range spellIDs {
		w.protectedFrom[id] = struct{}{}
	}
	return nil
}

// RemoveProtection drops the given attacks from the protections
func (w *Wizard) RemoveProtection(spellIDs []string) error {
	if err := magic.ValidateSpellIDs(spellIDs); err != nil {
		return err
	}
	for _, id := range spellIDs {
		delete(w.protectedFrom, id)
	}
	return nil
}

func (w *Wizard) String() string {
	currency := "Knuts"
	if w.money == 1 {
		currency = "Knut"
	}

	carried := make([]string, len(w.inventory))
	for i, item := range w.inventory {
		carried[i] = fmt.Sprint(item)
	}

	return fmt.Sprintf("[%s(%s): %d/%d %d/%d; %d %s; knows %s; carries [%s]]",
		w.name, w.level, w.hp, w.baseHP, w.mp, w.baseMP, w.money, currency,
		spells.List(w.knownSpells), strings.Join(carried, ", "))
}

