package spells

import (
	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

// ProtectingConfig configures a protecting spell
type ProtectingConfig struct {
	// ID is generated when empty
	ID          string
	Name        string
	ManaCost    int
	LevelNeeded magic.Level
	Attacks     []*Attacking
}

// Protecting shields a target from the next cast of each listed attack
type Protecting struct {
	base
	attacks []*Attacking
}

var _ Spell = (*Protecting)(nil)

// NewProtecting validates cfg and creates a protecting spell. Attacks listed
// twice are kept once.
func NewProtecting(cfg *ProtectingConfig) (*Protecting, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	s := &Protecting{
		base: newBase(cfg.ID, cfg.Name, cfg.ManaCost, cfg.LevelNeeded, vb),
	}

	if len(cfg.Attacks) == 0 {
		vb.RequiredField("attacks")
	}
	seen := make(map[string]bool, len(cfg.Attacks))
	for _, attack := range cfg.Attacks {
		if attack == nil {
			vb.InvalidField("attacks", "contains a nil spell")
			continue
		}
		if seen[attack.GetID()] {
			continue
		}
		seen[attack.GetID()] = true
		s.attacks = append(s.attacks, attack)
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}
	return s, nil
}

// GetType returns the entity type
func (s *Protecting) GetType() string { return "protecting_spell" }

// Attacks returns a copy of the attacks this spell protects against
func (s *Protecting) Attacks() []*Attacking {
	out := make([]*Attacking, len(s.attacks))
	copy(out, s.attacks)
	return out
}

// AttackIDs returns the IDs of the attacks this spell protects against
func (s *Protecting) AttackIDs() []string {
	ids := make([]string, len(s.attacks))
	for i, attack := range s.attacks {
		ids[i] = attack.GetID()
	}
	return ids
}

// Cast casts the spell from source onto target
func (s *Protecting) Cast(source magic.Source, target magic.Target) error {
	return cast(s, source, target)
}

// DoEffect adds the attacks to the target's protections
func (s *Protecting) DoEffect(target magic.Target) error {
	if target == nil {
		return errors.InvalidArgument("target must not be nil")
	}
	return target.SetProtection(s.AttackIDs())
}

func (s *Protecting) String() string {
	return s.format("; protects against " + List(s.attacks))
}
