package spells

import (
	"fmt"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

// EffectConfig configures an attacking or healing spell
type EffectConfig struct {
	// ID is generated when empty
	ID          string
	Name        string
	ManaCost    int
	LevelNeeded magic.Level
	Pool        Pool
	// Percentage makes Amount a percentage of the target's base value
	Percentage bool
	Amount     int
}

// effect is the health or mana change shared by attacking and healing spells
type effect struct {
	pool       Pool
	percentage bool
	amount     int
}

func newEffect(cfg *EffectConfig, vb *errors.ValidationBuilder) effect {
	errors.ValidateEnum("pool", string(cfg.Pool), []string{string(PoolHealth), string(PoolMana)}, vb)
	if cfg.Percentage {
		errors.ValidateRange("amount", cfg.Amount, 0, 100, vb)
	} else {
		errors.ValidateNonNegative("amount", cfg.Amount, vb)
	}
	return effect{pool: cfg.Pool, percentage: cfg.Percentage, amount: cfg.Amount}
}

// Pool returns the resource the spell changes
func (e *effect) Pool() Pool { return e.pool }

// Percentage reports whether Amount is a percentage
func (e *effect) Percentage() bool { return e.percentage }

// Amount returns the absolute amount or the percentage
func (e *effect) Amount() int { return e.amount }

func (e *effect) detail(sign string) string {
	unit := ""
	if e.percentage {
		unit = " %"
	}
	return fmt.Sprintf("; %s%d%s %s", sign, e.amount, unit, e.pool)
}

// Attacking lowers a target's health or mana unless the target is protected
// against this spell
type Attacking struct {
	base
	effect
}

var _ Spell = (*Attacking)(nil)

// NewAttacking validates cfg and creates an attacking spell
func NewAttacking(cfg *EffectConfig) (*Attacking, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	s := &Attacking{
		base:   newBase(cfg.ID, cfg.Name, cfg.ManaCost, cfg.LevelNeeded, vb),
		effect: newEffect(cfg, vb),
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}
	return s, nil
}

// GetType returns the entity type
func (s *Attacking) GetType() string { return "attacking_spell" }

// Cast casts the spell from source onto target
func (s *Attacking) Cast(source magic.Source, target magic.Target) error {
	return cast(s, source, target)
}

// DoEffect consumes a protection against this spell if there is one,
// otherwise it applies the damage
func (s *Attacking) DoEffect(target magic.Target) error {
	if target == nil {
		return errors.InvalidArgument("target must not be nil")
	}

	if target.IsProtected(s.id) {
		return target.RemoveProtection([]string{s.id})
	}

	switch {
	case s.pool == PoolHealth && s.percentage:
		return target.TakeDamagePercent(s.amount)
	case s.pool == PoolHealth:
		return target.TakeDamage(s.amount)
	case s.percentage:
		return target.WeakenMagicPercent(s.amount)
	default:
		return target.WeakenMagic(s.amount)
	}
}

func (s *Attacking) String() string {
	return s.format(s.detail("-"))
}

// Healing raises a target's health or mana
type Healing struct {
	base
	effect
}

var _ Spell = (*Healing)(nil)

// NewHealing validates cfg and creates a healing spell
func NewHealing(cfg *EffectConfig) (*Healing, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	s := &Healing{
		base:   newBase(cfg.ID, cfg.Name, cfg.ManaCost, cfg.LevelNeeded, vb),
		effect: newEffect(cfg, vb),
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}
	return s, nil
}

// GetType returns the entity type
func (s *Healing) GetType() string { return "healing_spell" }

// Cast casts the spell from source onto target
func (s *Healing) Cast(source magic.Source, target magic.Target) error {
	return cast(s, source, target)
}

// DoEffect applies the healing
func (s *Healing) DoEffect(target magic.Target) error {
	if target == nil {
		return errors.InvalidArgument("target must not be nil")
	}

	switch {
	case s.pool == PoolHealth && s.percentage:
		return target.HealPercent(s.amount)
	case s.pool == PoolHealth:
		return target.Heal(s.amount)
	case s.percentage:
		return target.EnforceMagicPercent(s.amount)
	default:
		return target.EnforceMagic(s.amount)
	}
}

func (s *Healing) String() string {
	return s.format(s.detail("+"))
}
