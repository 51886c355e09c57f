// Package idgen provides ID generation for spells, items and wizards
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// SequentialGenerator generates sequential IDs for tests and demo duels
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}

// UUIDGenerator generates UUIDs with optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}

// Prefixes used for the entity kinds of the rule engine
const (
	PrefixSpell  = "spell"
	PrefixItem   = "item"
	PrefixWizard = "wiz"
)

var (
	spellIDs  Generator = NewUUID(PrefixSpell)
	itemIDs   Generator = NewUUID(PrefixItem)
	wizardIDs Generator = NewUUID(PrefixWizard)
)

// SpellID returns a fresh spell identifier
func SpellID() string { return spellIDs.Generate() }

// ItemID returns a fresh item identifier
func ItemID() string { return itemIDs.Generate() }

// WizardID returns a fresh wizard identifier
func WizardID() string { return wizardIDs.Generate() }
