package items

import (
	"github.com/KirkDiggler/rpg-arcana/internal/entities/spells"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

// Data is the snapshot form of an item
type Data struct {
	ID     string        `json:"id"`
	Kind   Kind          `json:"kind"`
	Name   string        `json:"name"`
	Usages int           `json:"usages"`
	Price  int           `json:"price"`
	Weight int           `json:"weight"`
	Amount int           `json:"amount,omitempty"`
	Health int           `json:"health,omitempty"`
	Mana   int           `json:"mana,omitempty"`
	Spells []spells.Data `json:"spells,omitempty"`
	Spell  *spells.Data  `json:"spell,omitempty"`
}

// ToData converts an item to its snapshot form
func ToData(item Item) (Data, error) {
	if item == nil {
		return Data{}, errors.InvalidArgument("item must not be nil")
	}

	data := Data{
		ID:     item.GetID(),
		Kind:   item.Kind(),
		Name:   item.Name(),
		Usages: item.Usages(),
		Price:  item.Price(),
		Weight: item.Weight(),
	}

	switch it := item.(type) {
	case *HealthPotion:
		data.Amount = it.amount
	case *ManaPotion:
		data.Amount = it.amount
	case *Concoction:
		data.Health, data.Mana = it.health, it.mana
		for _, spell := range it.spells {
			spellData, err := spells.ToData(spell)
			if err != nil {
				return Data{}, errors.Wrapf(err, "item %s", it.id)
			}
			data.Spells = append(data.Spells, spellData)
		}
	case *Scroll:
		spellData, err := spells.ToData(it.spell)
		if err != nil {
			return Data{}, errors.Wrapf(err, "item %s", it.id)
		}
		data.Spell = &spellData
	default:
		return Data{}, errors.InvalidArgumentf("unsupported item type %T", item)
	}

	return data, nil
}

// FromData rebuilds an item through its constructor
func FromData(data Data) (Item, error) {
	switch data.Kind {
	case KindHealthPotion:
		potion, err := NewHealthPotion(potionConfig(data))
		if err != nil {
			return nil, err
		}
		return potion, nil
	case KindManaPotion:
		potion, err := NewManaPotion(potionConfig(data))
		if err != nil {
			return nil, err
		}
		return potion, nil
	case KindConcoction:
		list := make([]spells.Spell, 0, len(data.Spells))
		for _, spellData := range data.Spells {
			spell, err := spells.FromData(spellData)
			if err != nil {
				return nil, errors.Wrapf(err, "item %s", data.ID)
			}
			list = append(list, spell)
		}
		concoction, err := NewConcoction(&ConcoctionConfig{
			ID:     data.ID,
			Name:   data.Name,
			Usages: data.Usages,
			Price:  data.Price,
			Weight: data.Weight,
			Health: data.Health,
			Mana:   data.Mana,
			Spells: list,
		})
		if err != nil {
			return nil, err
		}
		return concoction, nil
	case KindScroll:
		if data.Spell == nil {
			return nil, errors.InvalidArgumentf("scroll %s has no spell", data.ID)
		}
		spell, err := spells.FromData(*data.Spell)
		if err != nil {
			return nil, errors.Wrapf(err, "item %s", data.ID)
		}
		scroll, err := NewScroll(&ScrollConfig{
			ID:     data.ID,
			Name:   data.Name,
			Usages: data.Usages,
			Price:  data.Price,
			Weight: data.Weight,
			Spell:  spell,
		})
		if err != nil {
			return nil, err
		}
		return scroll, nil
	default:
		return nil, errors.InvalidArgumentf("unknown item kind %q", data.Kind)
	}
}

func potionConfig(data Data) *PotionConfig {
	return &PotionConfig{
		ID:     data.ID,
		Name:   data.Name,
		Usages: data.Usages,
		Price:  data.Price,
		Weight: data.Weight,
		Amount: data.Amount,
	}
}
