package testutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/items"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/spells"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/wizard"
)

// Fixed IDs used by the fixtures
const (
	ConfringoID = "spell_confringo"
	ElixirID    = "item_elixir"
	ScrollID    = "item_scroll"
)

// FixtureTime is the creation time stamped on fixture snapshots
var FixtureTime = time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC)

// Confringo deals 20 HP for 10 mana and needs an adept
func Confringo(t *testing.T) *spells.Attacking {
	t.Helper()
	spell, err := spells.NewAttacking(&spells.EffectConfig{
		ID: ConfringoID, Name: "Confringo", ManaCost: 10, LevelNeeded: magic.Adept,
		Pool: spells.PoolHealth, Amount: 20,
	})
	require.NoError(t, err)
	return spell
}

// Elixir is a two gulp health potion worth 20 Knuts
func Elixir(t *testing.T) *items.HealthPotion {
	t.Helper()
	potion, err := items.NewHealthPotion(&items.PotionConfig{
		ID: ElixirID, Name: "Elixir", Usages: 2, Price: 20, Weight: 10, Amount: 15,
	})
	require.NoError(t, err)
	return potion
}

// NewWizardData builds a valid adept snapshot that knows one attack and
// carries a scroll of it
func NewWizardData(id, name string) *wizard.Data {
	bolt := spells.Data{
		ID: "spell_bolt", Kind: spells.KindAttacking, Name: "Bolt", ManaCost: 10, Level: "adept",
		Pool: spells.PoolHealth, Amount: 15,
	}
	return &wizard.Data{
		ID:            id,
		Name:          name,
		Level:         "adept",
		BaseHP:        100,
		HP:            80,
		BaseMP:        100,
		MP:            60,
		Money:         25,
		Capacity:      40,
		KnownSpells:   []spells.Data{bolt},
		ProtectedFrom: []string{"spell_other"},
		Inventory: []items.Data{{
			ID: ScrollID, Kind: items.KindScroll, Name: "Scroll", Usages: 2, Price: 5, Weight: 1, Spell: &bolt,
		}},
		CreatedAt: FixtureTime,
		UpdatedAt: FixtureTime,
	}
}

// NewWizardSnapshot converts a freshly built adept wizard to its snapshot
func NewWizardSnapshot(t *testing.T, id, name string, knows ...spells.Spell) *wizard.Data {
	t.Helper()
	w, err := wizard.New(&wizard.Config{
		ID: id, Name: name, Level: magic.Adept, BaseHP: 100, HP: 100, BaseMP: 100, MP: 100,
		Money: 10, Capacity: 20, KnownSpells: knows,
	})
	require.NoError(t, err)
	data, err := wizard.ToData(w)
	require.NoError(t, err)
	return data
}
