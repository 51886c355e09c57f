package spells

import (
	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

// Data is the snapshot form of a spell
type Data struct {
	ID         string `json:"id"`
	Kind       Kind   `json:"kind"`
	Name       string `json:"name"`
	ManaCost   int    `json:"mana_cost"`
	Level      string `json:"level"`
	Pool       Pool   `json:"pool,omitempty"`
	Percentage bool   `json:"percentage,omitempty"`
	Amount     int    `json:"amount,omitempty"`
	Protects   []Data `json:"protects,omitempty"`
}

// ToData converts a spell to its snapshot form
func ToData(s Spell) (Data, error) {
	if s == nil {
		return Data{}, errors.InvalidArgument("spell must not be nil")
	}

	data := Data{
		ID:       s.GetID(),
		Name:     s.Name(),
		ManaCost: s.ManaCost(),
		Level:    s.LevelNeeded().Name(),
	}

	switch spell := s.(type) {
	case *Attacking:
		data.Kind = KindAttacking
		data.Pool, data.Percentage, data.Amount = spell.pool, spell.percentage, spell.amount
	case *Healing:
		data.Kind = KindHealing
		data.Pool, data.Percentage, data.Amount = spell.pool, spell.percentage, spell.amount
	case *Protecting:
		data.Kind = KindProtecting
		for _, attack := range spell.attacks {
			attackData, err := ToData(attack)
			if err != nil {
				return Data{}, err
			}
			data.Protects = append(data.Protects, attackData)
		}
	default:
		return Data{}, errors.InvalidArgumentf("unsupported spell type %T", s)
	}

	return data, nil
}

// FromData rebuilds a spell through its constructor
func FromData(data Data) (Spell, error) {
	level, err := magic.ParseLevel(data.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "spell %s", data.ID)
	}

	switch data.Kind {
	case KindAttacking:
		attack, err := NewAttacking(effectConfig(data, level))
		if err != nil {
			return nil, err
		}
		return attack, nil
	case KindHealing:
		heal, err := NewHealing(effectConfig(data, level))
		if err != nil {
			return nil, err
		}
		return heal, nil
	case KindProtecting:
		attacks := make([]*Attacking, 0, len(data.Protects))
		for _, attackData := range data.Protects {
			if attackData.Kind != KindAttacking {
				return nil, errors.InvalidArgumentf("spell %s protects against non-attacking spell %s", data.ID, attackData.ID)
			}
			attack, err := FromData(attackData)
			if err != nil {
				return nil, err
			}
			attacks = append(attacks, attack.(*Attacking))
		}
		protect, err := NewProtecting(&ProtectingConfig{
			ID:          data.ID,
			Name:        data.Name,
			ManaCost:    data.ManaCost,
			LevelNeeded: level,
			Attacks:     attacks,
		})
		if err != nil {
			return nil, err
		}
		return protect, nil
	default:
		return nil, errors.InvalidArgumentf("unknown spell kind %q", data.Kind)
	}
}

func effectConfig(data Data, level magic.Level) *EffectConfig {
	return &EffectConfig{
		ID:          data.ID,
		Name:        data.Name,
		ManaCost:    data.ManaCost,
		LevelNeeded: level,
		Pool:        data.Pool,
		Percentage:  data.Percentage,
		Amount:      data.Amount,
	}
}
