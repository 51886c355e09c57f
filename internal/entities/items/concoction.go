package items

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/spells"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

// ConcoctionConfig configures a concoction. Health, Mana and Spells must not
// all be zero or empty.
type ConcoctionConfig struct {
	// ID is generated when empty
	ID     string
	Name   string
	Usages int
	Price  int
	Weight int
	// Health heals when positive and damages when negative
	Health int
	// Mana restores when positive and drains when negative
	Mana   int
	Spells []spells.Spell
}

// Concoction changes the drinker's health and mana and then casts its spells
// on the drinker, paying for them itself
type Concoction struct {
	base
	health int
	mana   int
	spells []spells.Spell
}

var _ Potion = (*Concoction)(nil)

// NewConcoction validates cfg and creates a concoction
func NewConcoction(cfg *ConcoctionConfig) (*Concoction, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	c := &Concoction{
		base:   newBase(cfg.ID, cfg.Name, cfg.Usages, cfg.Price, cfg.Weight, vb),
		health: cfg.Health,
		mana:   cfg.Mana,
		spells: make([]spells.Spell, 0, len(cfg.Spells)),
	}
	c.potion = true

	if cfg.Health == 0 && cfg.Mana == 0 && len(cfg.Spells) == 0 {
		vb.Field("effect", "health, mana and spells must not all be empty")
	}
	for _, spell := range cfg.Spells {
		if spell == nil {
			vb.InvalidField("spells", "contains a nil spell")
			continue
		}
		c.spells = append(c.spells, spell)
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}
	return c, nil
}

// GetType returns the entity type
func (c *Concoction) GetType() string { return string(KindConcoction) }

// Kind returns the item kind
func (c *Concoction) Kind() Kind { return KindConcoction }

// Health returns the signed health change
func (c *Concoction) Health() int { return c.health }

// Mana returns the signed mana change
func (c *Concoction) Mana() int { return c.mana }

// Spells returns a copy of the spells cast on each use
func (c *Concoction) Spells() []spells.Spell {
	out := make([]spells.Spell, len(c.spells))
	copy(out, c.spells)
	return out
}

// UseOn applies the health and mana changes to target and casts every spell
// on it in order, if a gulp is left
func (c *Concoction) UseOn(target magic.Target) error {
	if target == nil {
		return errors.InvalidArgument("target must not be nil")
	}
	if !c.TryUsage() {
		return nil
	}

	var err error
	if c.health >= 0 {
		err = target.Heal(c.health)
	} else {
		err = target.TakeDamage(-c.health)
	}
	if err != nil {
		return err
	}

	if c.mana >= 0 {
		err = target.EnforceMagic(c.mana)
	} else {
		err = target.WeakenMagic(-c.mana)
	}
	if err != nil {
		return err
	}

	for _, spell := range c.spells {
		if err := spell.Cast(c, target); err != nil {
			return errors.Wrapf(err, "concoction %s failed to cast %s", c.id, spell.GetID())
		}
	}
	return nil
}

// Drink uses the concoction on the drinker
func (c *Concoction) Drink(drinker magic.Target) error {
	return c.UseOn(drinker)
}

func (c *Concoction) String() string {
	var detail strings.Builder
	detail.WriteString(";")
	if c.health != 0 {
		detail.WriteString(signed(c.health, "HP"))
	}
	if c.mana != 0 {
		detail.WriteString(signed(c.mana, "MP"))
	}
	if len(c.spells) > 0 {
		detail.WriteString(" cast " + spells.List(c.spells))
	}
	return c.format(detail.String())
}

func signed(value int, unit string) string {
	if value < 0 {
		return fmt.Sprintf(" -%d %s;", -value, unit)
	}
	return fmt.Sprintf(" +%d %s;", value, unit)
}
