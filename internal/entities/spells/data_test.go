package spells_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/spells"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

func TestProtectingSurvivesSnapshot(t *testing.T) {
	attack, err := spells.NewAttacking(&spells.EffectConfig{
		ID: "spell_a", Name: "Confringo", ManaCost: 20, LevelNeeded: magic.Student, Pool: spells.PoolHealth, Amount: 40,
	})
	require.NoError(t, err)
	shield, err := spells.NewProtecting(&spells.ProtectingConfig{
		ID: "spell_p", Name: "Protego", ManaCost: 10, LevelNeeded: magic.Adept, Attacks: []*spells.Attacking{attack},
	})
	require.NoError(t, err)

	data, err := spells.ToData(shield)
	require.NoError(t, err)

	raw, err := json.Marshal(data)
	require.NoError(t, err)
	var decoded spells.Data
	require.NoError(t, json.Unmarshal(raw, &decoded))

	restored, err := spells.FromData(decoded)
	require.NoError(t, err)

	protecting, ok := restored.(*spells.Protecting)
	require.True(t, ok)
	assert.Equal(t, "spell_p", protecting.GetID())
	assert.Equal(t, magic.Adept, protecting.LevelNeeded())
	assert.Equal(t, []string{"spell_a"}, protecting.AttackIDs())
	assert.Equal(t, shield.String(), protecting.String())
}

func TestFromDataRejectsBadSnapshots(t *testing.T) {
	testCases := []struct {
		name string
		data spells.Data
	}{
		{name: "unknown kind", data: spells.Data{ID: "x", Kind: "curse", Name: "Imperio", Level: "noob"}},
		{name: "unknown level", data: spells.Data{ID: "x", Kind: spells.KindHealing, Name: "Episkey", Level: "wizard", Pool: spells.PoolHealth}},
		{name: "invalid amount", data: spells.Data{ID: "x", Kind: spells.KindHealing, Name: "Episkey", Level: "noob", Pool: spells.PoolHealth, Percentage: true, Amount: 150}},
		{
			name: "protects against healing",
			data: spells.Data{
				ID: "x", Kind: spells.KindProtecting, Name: "Protego", Level: "noob",
				Protects: []spells.Data{{ID: "y", Kind: spells.KindHealing, Name: "Episkey", Level: "noob", Pool: spells.PoolHealth}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spell, err := spells.FromData(tc.data)
			assert.Nil(t, spell)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}
