package wizard

import (
	"time"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/items"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/spells"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
	"github.com/KirkDiggler/rpg-arcana/internal/pkg/random"
)

// Data is the snapshot form of a wizard stored by the repositories
type Data struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Level         string        `json:"level"`
	BaseHP        int           `json:"base_hp"`
	HP            int           `json:"hp"`
	BaseMP        int           `json:"base_mp"`
	MP            int           `json:"mp"`
	Money         int           `json:"money"`
	Capacity      int           `json:"capacity"`
	KnownSpells   []spells.Data `json:"known_spells"`
	ProtectedFrom []string      `json:"protected_from"`
	Inventory     []items.Data  `json:"inventory"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ToData converts w to its snapshot form. Every carried item must be a
// magic item.
func ToData(w *Wizard) (*Data, error) {
	if w == nil {
		return nil, errors.InvalidArgument("wizard must not be nil")
	}

	data := &Data{
		ID:            w.id,
		Name:          w.name,
		Level:         w.level.Name(),
		BaseHP:        w.baseHP,
		HP:            w.hp,
		BaseMP:        w.baseMP,
		MP:            w.mp,
		Money:         w.money,
		Capacity:      w.capacity,
		KnownSpells:   make([]spells.Data, 0, len(w.knownSpells)),
		ProtectedFrom: w.ProtectedFrom(),
		Inventory:     make([]items.Data, 0, len(w.inventory)),
		CreatedAt:     w.createdAt,
		UpdatedAt:     w.updatedAt,
	}

	for _, spell := range w.knownSpells {
		spellData, err := spells.ToData(spell)
		if err != nil {
			return nil, errors.Wrapf(err, "wizard %s", w.id)
		}
		data.KnownSpells = append(data.KnownSpells, spellData)
	}

	for _, t := range w.inventory {
		item, ok := t.(items.Item)
		if !ok {
			return nil, errors.InvalidArgumentf("wizard %s carries %s which has no snapshot form", w.id, t.GetType())
		}
		itemData, err := items.ToData(item)
		if err != nil {
			return nil, errors.Wrapf(err, "wizard %s", w.id)
		}
		data.Inventory = append(data.Inventory, itemData)
	}

	return data, nil
}

// FromData rebuilds a wizard from its snapshot. A nil picker falls back to
// dice rolls.
func FromData(data *Data, picker random.Picker) (*Wizard, error) {
	if data == nil {
		return nil, errors.InvalidArgument("data must not be nil")
	}

	level, err := magic.ParseLevel(data.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "wizard %s", data.ID)
	}

	cfg := &Config{
		ID:            data.ID,
		Name:          data.Name,
		Level:         level,
		BaseHP:        data.BaseHP,
		HP:            data.HP,
		BaseMP:        data.BaseMP,
		MP:            data.MP,
		Money:         data.Money,
		Capacity:      data.Capacity,
		ProtectedFrom: data.ProtectedFrom,
		Picker:        picker,
	}

	for _, spellData := range data.KnownSpells {
		spell, err := spells.FromData(spellData)
		if err != nil {
			return nil, errors.Wrapf(err, "wizard %s", data.ID)
		}
		cfg.KnownSpells = append(cfg.KnownSpells, spell)
	}
	for _, itemData := range data.Inventory {
		item, err := items.FromData(itemData)
		if err != nil {
			return nil, errors.Wrapf(err, "wizard %s", data.ID)
		}
		cfg.Inventory = append(cfg.Inventory, item)
	}

	w, err := New(cfg)
	if err != nil {
		return nil, err
	}
	w.createdAt = data.CreatedAt
	w.updatedAt = data.UpdatedAt
	return w, nil
}
