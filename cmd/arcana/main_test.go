package main

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arcana/internal/config"
	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
	"github.com/KirkDiggler/rpg-arcana/internal/orchestrators/duel"
	"github.com/KirkDiggler/rpg-arcana/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arcana/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arcana/internal/pkg/random"
	"github.com/KirkDiggler/rpg-arcana/internal/repositories/wizards"
)

func newTestService(t *testing.T) duel.Service {
	t.Helper()
	svc, err := duel.NewOrchestrator(&duel.Config{
		Repository:  wizards.NewInMemory(),
		IDGenerator: idgen.NewSequential("wiz"),
		Picker:      random.NewFixed(0),
		Clock:       &clock.Fixed{At: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	return svc
}

func TestCatalog(t *testing.T) {
	for _, name := range spellNames {
		spell, err := catalogSpell(name)
		require.NoError(t, err, name)
		assert.Equal(t, spell.GetID(), spellID(name))
	}
	for _, name := range itemNames {
		first, err := catalogItem(name)
		require.NoError(t, err, name)
		second, err := catalogItem(name)
		require.NoError(t, err, name)
		assert.NotEqual(t, first.GetID(), second.GetID(), "items get fresh IDs")
	}

	assert.Equal(t, "spell_confringo", spellID("Confringo"))
	assert.Equal(t, "spell_custom", spellID("spell_custom"))

	_, err := catalogSpell("avada")
	assert.True(t, errors.IsNotFound(err))
	_, err = catalogItem("broom")
	assert.True(t, errors.IsNotFound(err))
}

func TestNewWizardInput(t *testing.T) {
	input, err := newWizardInput("Luna", magic.Student, 80, 0, 5, 30, []string{"episkey"}, []string{"elixir"})
	require.NoError(t, err)
	assert.Equal(t, 200, input.BaseMP)
	assert.Equal(t, 200, input.MP)
	assert.Equal(t, 80, input.HP)
	require.Len(t, input.KnownSpells, 1)
	require.Len(t, input.Inventory, 1)

	_, err = newWizardInput("Luna", magic.Student, 80, 0, 5, 30, []string{"avada"}, nil)
	assert.True(t, errors.IsNotFound(err))
}

func TestRunDuel(t *testing.T) {
	svc := newTestService(t)
	var out bytes.Buffer

	require.NoError(t, runDuel(context.Background(), svc, &out, 20))

	text := out.String()
	assert.Contains(t, text, "Duelists:")
	assert.Contains(t, text, "Draco sells [Wiggenweld Draught")
	assert.Contains(t, text, "Round 1")
	assert.Contains(t, text, "Harry casts Confringo on Draco: true")
	assert.Contains(t, text, "Final state:")

	list, err := svc.ListWizards(context.Background(), &duel.ListWizardsInput{})
	require.NoError(t, err)
	assert.Len(t, list.Wizards, 2)
}

func TestRootCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"ARCANA_STORE", "ARCANA_SEED", "ARCANA_LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--store", "memory", "--seed", "7", "--log-level", "error", "duel", "--rounds", "2"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Round 2")
}

func TestNewRepositoryRedis(t *testing.T) {
	t.Cleanup(func() { redisClient = nil })
	mr := miniredis.RunT(t)
	cfg := &config.Config{Store: config.StoreRedis, RedisAddr: mr.Addr()}

	repo, closer, err := newRepository(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, repo)
	assert.NotNil(t, redisClient)
	require.NoError(t, closer())

	mr.Close()
	_, _, err = newRepository(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}

func TestRepairNeedsRedis(t *testing.T) {
	redisClient = nil

	err := repair(repairCmd, nil)
	require.Error(t, err)
	assert.True(t, errors.IsFailedPrecondition(err))
}
