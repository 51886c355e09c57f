package wizards_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arcana/internal/errors"
	"github.com/KirkDiggler/rpg-arcana/internal/repositories/wizards"
	"github.com/KirkDiggler/rpg-arcana/internal/testutils"
)

func TestRepair(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) func(wizards.RepairInput) *wizards.RepairOutput {
		t.Helper()
		client, mr := testutils.CreateTestRedisClient(t)
		repo, err := wizards.NewRedis(&wizards.RedisConfig{Client: client})
		require.NoError(t, err)

		_, err = repo.Create(ctx, wizards.CreateInput{WizardData: testutils.NewWizardData("wiz_ok", "Harry")})
		require.NoError(t, err)
		_, err = repo.Create(ctx, wizards.CreateInput{WizardData: testutils.NewWizardData("wiz_unindexed", "Ron")})
		require.NoError(t, err)
		_, err = mr.SRem("wizards:index", "wiz_unindexed")
		require.NoError(t, err)

		require.NoError(t, mr.Set(wizards.GetKey("wiz_broken"), "{not json"))
		require.NoError(t, mr.Set(wizards.GetKey("wiz_moved"), `{"id":"wiz_other"}`))
		_, err = mr.SAdd("wizards:index", "wiz_broken", "wiz_gone")
		require.NoError(t, err)

		run := func(input wizards.RepairInput) *wizards.RepairOutput {
			out, err := wizards.Repair(ctx, client, input)
			require.NoError(t, err)
			return out
		}
		return run
	}

	t.Run("reports without deleting", func(t *testing.T) {
		run := seed(t)

		out := run(wizards.RepairInput{})
		assert.Equal(t, 4, out.Checked)
		assert.Equal(t, []string{"wizard:wiz_broken", "wizard:wiz_moved"}, out.Corrupt)
		assert.Equal(t, []string{"wiz_gone"}, out.Stale)
		assert.Equal(t, []string{"wiz_unindexed"}, out.Reindexed)

		again := run(wizards.RepairInput{})
		assert.Equal(t, out.Corrupt, again.Corrupt)
		assert.Equal(t, out.Stale, again.Stale)
		assert.Empty(t, again.Reindexed)
	})

	t.Run("deletes broken entries", func(t *testing.T) {
		run := seed(t)

		out := run(wizards.RepairInput{Delete: true})
		assert.Len(t, out.Corrupt, 2)

		again := run(wizards.RepairInput{})
		assert.Equal(t, 2, again.Checked)
		assert.Empty(t, again.Corrupt)
		assert.Empty(t, again.Stale)
		assert.Empty(t, again.Reindexed)
	})

	t.Run("empty store", func(t *testing.T) {
		client, _ := testutils.CreateTestRedisClient(t)
		repo, err := wizards.NewRedis(&wizards.RedisConfig{Client: client})
		require.NoError(t, err)
		_, err = repo.Create(ctx, wizards.CreateInput{WizardData: testutils.NewWizardData("wiz_ok", "Harry")})
		require.NoError(t, err)
		require.NoError(t, testutils.FlushTestRedis(ctx, client))

		out, err := wizards.Repair(ctx, client, wizards.RepairInput{Delete: true})
		require.NoError(t, err)
		assert.Zero(t, out.Checked)
		assert.Empty(t, out.Corrupt)
		assert.Empty(t, out.Stale)
	})

	t.Run("nil client", func(t *testing.T) {
		_, err := wizards.Repair(ctx, nil, wizards.RepairInput{})
		assert.True(t, errors.IsInvalidArgument(err))
	})
}
