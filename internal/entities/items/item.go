// Package items defines the tradeable magic items: health and mana potions,
// concoctions and scrolls. Items are mana sources for the spells they carry
// and targets whose only vulnerable value is their remaining usages.
package items

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
	"github.com/KirkDiggler/rpg-arcana/internal/pkg/idgen"
)

// Kind discriminates the item types in snapshots
type Kind string

// Item kinds
const (
	KindHealthPotion Kind = "health_potion"
	KindManaPotion   Kind = "mana_potion"
	KindConcoction   Kind = "concoction"
	KindScroll       Kind = "scroll"
)

// Item is a magic item. Items are compared by ID.
type Item interface {
	magic.Tradeable
	magic.Source
	magic.Target

	Kind() Kind
	Name() string
	Usages() int
	// TryUsage consumes one usage and reports whether one was left
	TryUsage() bool
	String() string
}

// Potion is an item that can be drunk
type Potion interface {
	Item

	// Drink uses the potion on the drinker
	Drink(drinker magic.Target) error
}

type base struct {
	magic.NoEffect

	id     string
	name   string
	usages int
	price  int
	weight int
	potion bool
}

func newBase(id, name string, usages, price, weight int, vb *errors.ValidationBuilder) base {
	errors.ValidateRequired("name", name, vb)
	errors.ValidateNonNegative("usages", usages, vb)
	errors.ValidateNonNegative("price", price, vb)
	errors.ValidateNonNegative("weight", weight, vb)
	if id == "" {
		id = idgen.ItemID()
	}
	return base{id: id, name: name, usages: usages, price: price, weight: weight}
}

// GetID returns the item ID
func (b *base) GetID() string { return b.id }

// Name returns the item name
func (b *base) Name() string { return b.name }

// Usages returns the remaining usages
func (b *base) Usages() int { return b.usages }

// Price returns the price in Knuts
func (b *base) Price() int { return b.price }

// Weight returns the weight in grams
func (b *base) Weight() int { return b.weight }

// TryUsage consumes one usage if there is one
func (b *base) TryUsage() bool {
	if b.usages <= 0 {
		return false
	}
	b.usages--
	return true
}

// ProvideMana always succeeds for valid arguments; items cast their spells
// for free
func (b *base) ProvideMana(levelNeeded magic.Level, amount int) (bool, error) {
	if err := magic.ValidateManaRequest(levelNeeded, amount); err != nil {
		return false, err
	}
	return true, nil
}

// TakeDamagePercent destroys the given share of the remaining usages,
// rounded down
func (b *base) TakeDamagePercent(percentage int) error {
	if err := magic.ValidatePercentage(percentage); err != nil {
		return err
	}
	b.usages -= b.usages * percentage / 100
	return nil
}

func (b *base) format(detail string) string {
	currency := "Knuts"
	if b.price == 1 {
		currency = "Knut"
	}

	unit := "use"
	if b.potion {
		unit = "gulp"
	}
	if b.usages != 1 {
		unit += "s"
	}

	return fmt.Sprintf("[%s; %d g; %d %s; %d %s%s]", b.name, b.weight, b.price, currency, b.usages, unit, detail)
}

// List renders items the way they are printed inside a wizard
func List[I Item](items []I) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
