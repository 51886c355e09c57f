package items

import (
	"fmt"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

// PotionConfig configures a health or mana potion
type PotionConfig struct {
	// ID is generated when empty
	ID     string
	Name   string
	Usages int
	Price  int
	Weight int
	Amount int
}

func newPotionBase(cfg *PotionConfig, vb *errors.ValidationBuilder) base {
	b := newBase(cfg.ID, cfg.Name, cfg.Usages, cfg.Price, cfg.Weight, vb)
	b.potion = true
	errors.ValidateNonNegative("amount", cfg.Amount, vb)
	return b
}

// HealthPotion heals the drinker by a fixed amount per gulp
type HealthPotion struct {
	base
	amount int
}

var _ Potion = (*HealthPotion)(nil)

// NewHealthPotion validates cfg and creates a health potion
func NewHealthPotion(cfg *PotionConfig) (*HealthPotion, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	p := &HealthPotion{base: newPotionBase(cfg, vb), amount: cfg.Amount}
	if err := vb.Build(); err != nil {
		return nil, err
	}
	return p, nil
}

// GetType returns the entity type
func (p *HealthPotion) GetType() string { return string(KindHealthPotion) }

// Kind returns the item kind
func (p *HealthPotion) Kind() Kind { return KindHealthPotion }

// Amount returns the health restored per gulp
func (p *HealthPotion) Amount() int { return p.amount }

// UseOn heals target if a gulp is left
func (p *HealthPotion) UseOn(target magic.Target) error {
	if target == nil {
		return errors.InvalidArgument("target must not be nil")
	}
	if !p.TryUsage() {
		return nil
	}
	return target.Heal(p.amount)
}

// Drink uses the potion on the drinker
func (p *HealthPotion) Drink(drinker magic.Target) error {
	return p.UseOn(drinker)
}

func (p *HealthPotion) String() string {
	return p.format(fmt.Sprintf("; +%dHP", p.amount))
}

// ManaPotion restores the drinker's mana by a fixed amount per gulp
type ManaPotion struct {
	base
	amount int
}

var _ Potion = (*ManaPotion)(nil)

// NewManaPotion validates cfg and creates a mana potion
func NewManaPotion(cfg *PotionConfig) (*ManaPotion, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	p := &ManaPotion{base: newPotionBase(cfg, vb), amount: cfg.Amount}
	if err := vb.Build(); err != nil {
		return nil, err
	}
	return p, nil
}

// GetType returns the entity type
func (p *ManaPotion) GetType() string { return string(KindManaPotion) }

// Kind returns the item kind
func (p *ManaPotion) Kind() Kind { return KindManaPotion }

// Amount returns the mana restored per gulp
func (p *ManaPotion) Amount() int { return p.amount }

// UseOn restores target's mana if a gulp is left
func (p *ManaPotion) UseOn(target magic.Target) error {
	if target == nil {
		return errors.InvalidArgument("target must not be nil")
	}
	if !p.TryUsage() {
		return nil
	}
	return target.EnforceMagic(p.amount)
}

// Drink uses the potion on the drinker
func (p *ManaPotion) Drink(drinker magic.Target) error {
	return p.UseOn(drinker)
}

func (p *ManaPotion) String() string {
	return p.format(fmt.Sprintf("; +%dMP", p.amount))
}
