package magic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/magic"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

func TestLevelMana(t *testing.T) {
	expected := map[magic.Level]int{
		magic.Noob:    50,
		magic.Adept:   100,
		magic.Student: 200,
		magic.Expert:  500,
		magic.Master:  1000,
	}
	for level, mana := range expected {
		assert.Equal(t, mana, level.Mana(), level.Name())
	}
	assert.Equal(t, 0, magic.Level(9).Mana())
}

func TestLevelOrdering(t *testing.T) {
	assert.True(t, magic.Master.AtLeast(magic.Noob))
	assert.True(t, magic.Student.AtLeast(magic.Student))
	assert.False(t, magic.Adept.AtLeast(magic.Expert))
}

func TestLevelRendering(t *testing.T) {
	assert.Equal(t, "*", magic.Noob.String())
	assert.Equal(t, "*****", magic.Master.String())
	assert.Equal(t, "student", magic.Student.Name())
	assert.Equal(t, "?", magic.Level(-1).String())
}

func TestParseLevel(t *testing.T) {
	for _, level := range magic.Levels() {
		byName, err := magic.ParseLevel(level.Name())
		require.NoError(t, err)
		assert.Equal(t, level, byName)

		byStars, err := magic.ParseLevel(level.String())
		require.NoError(t, err)
		assert.Equal(t, level, byStars)
	}

	parsed, err := magic.ParseLevel("  EXPERT ")
	require.NoError(t, err)
	assert.Equal(t, magic.Expert, parsed)

	_, err = magic.ParseLevel("archmage")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestValidateManaRequest(t *testing.T) {
	assert.NoError(t, magic.ValidateManaRequest(magic.Adept, 0))
	assert.True(t, errors.IsInvalidArgument(magic.ValidateManaRequest(magic.Level(7), 1)))
	assert.True(t, errors.IsInvalidArgument(magic.ValidateManaRequest(magic.Adept, -1)))
}
