// Package spells defines the castable spells: attacking and healing spells
// that change a target's health or mana, and protecting spells that shield a
// target from specific attacking spells.
package spells

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
	"github.com/KirkDiggler/rpg-arcana/internal/pkg/idgen"
)

// Kind discriminates the spell types in snapshots
type Kind string

// Spell kinds
const (
	KindAttacking  Kind = "attacking"
	KindHealing    Kind = "healing"
	KindProtecting Kind = "protecting"
)

// Pool is the resource an attacking or healing spell changes
type Pool string

// Pools, rendered the way they are printed
const (
	PoolHealth Pool = "HP"
	PoolMana   Pool = "MP"
)

// Spell is an immutable castable effect. Spells are compared by ID.
type Spell interface {
	core.Entity

	Name() string
	ManaCost() int
	LevelNeeded() magic.Level

	// Cast asks source for the mana and, only if it was provided, applies
	// the effect to target
	Cast(source magic.Source, target magic.Target) error
	// DoEffect applies the effect without any mana check
	DoEffect(target magic.Target) error

	String() string
}

type base struct {
	id       string
	name     string
	manaCost int
	level    magic.Level
}

func newBase(id, name string, manaCost int, level magic.Level, vb *errors.ValidationBuilder) base {
	errors.ValidateRequired("name", name, vb)
	errors.ValidateNonNegative("mana_cost", manaCost, vb)
	if !level.Valid() {
		vb.InvalidField("level_needed", fmt.Sprintf("level %d is not defined", int(level)))
	}
	if id == "" {
		id = idgen.SpellID()
	}
	return base{id: id, name: name, manaCost: manaCost, level: level}
}

// GetID returns the spell ID
func (b *base) GetID() string { return b.id }

// Name returns the spell name
func (b *base) Name() string { return b.name }

// ManaCost returns the mana needed per cast
func (b *base) ManaCost() int { return b.manaCost }

// LevelNeeded returns the minimum caster level
func (b *base) LevelNeeded() magic.Level { return b.level }

func (b *base) format(detail string) string {
	return fmt.Sprintf("[%s(%s): %d mana%s]", b.name, b.level, b.manaCost, detail)
}

func cast(s Spell, source magic.Source, target magic.Target) error {
	if source == nil {
		return errors.InvalidArgument("mana source must not be nil")
	}
	if target == nil {
		return errors.InvalidArgument("target must not be nil")
	}

	provided, err := source.ProvideMana(s.LevelNeeded(), s.ManaCost())
	if err != nil {
		return err
	}
	if !provided {
		return nil
	}

	return s.DoEffect(target)
}

// List renders spells the way they are printed inside wizards and items
func List[S Spell](spells []S) string {
	parts := make([]string, len(spells))
	for i, s := range spells {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
