package items

import (
	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/spells"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

// ScrollConfig configures a scroll
type ScrollConfig struct {
	// ID is generated when empty
	ID     string
	Name   string
	Usages int
	Price  int
	Weight int
	Spell  spells.Spell
}

// Scroll casts one spell on a target without costing the reader mana
type Scroll struct {
	base
	spell spells.Spell
}

var _ Item = (*Scroll)(nil)

// NewScroll validates cfg and creates a scroll
func NewScroll(cfg *ScrollConfig) (*Scroll, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	s := &Scroll{
		base:  newBase(cfg.ID, cfg.Name, cfg.Usages, cfg.Price, cfg.Weight, vb),
		spell: cfg.Spell,
	}
	if cfg.Spell == nil {
		vb.RequiredField("spell")
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}
	return s, nil
}

// GetType returns the entity type
func (s *Scroll) GetType() string { return string(KindScroll) }

// Kind returns the item kind
func (s *Scroll) Kind() Kind { return KindScroll }

// Spell returns the spell written on the scroll
func (s *Scroll) Spell() spells.Spell { return s.spell }

// UseOn casts the spell on target if a usage is left
func (s *Scroll) UseOn(target magic.Target) error {
	if target == nil {
		return errors.InvalidArgument("target must not be nil")
	}
	if !s.TryUsage() {
		return nil
	}
	return s.spell.Cast(s, target)
}

func (s *Scroll) String() string {
	return s.format("; casts " + s.spell.String())
}
