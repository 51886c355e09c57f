// Package random provides the uniform index selection behind random spell and
// item choices. Wizards receive a Picker at construction so duels can be
// replayed with a seed.
package random

import (
	"math/rand"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

// Picker selects an index uniformly from [0, n)
type Picker interface {
	Intn(n int) (int, error)
}

// Dice picks by rolling a single n-sided die with the rpg-toolkit roller
type Dice struct{}

// NewDice returns the default picker
func NewDice() *Dice {
	return &Dice{}
}

// Intn rolls 1dn and shifts the result to a zero based index
func (d *Dice) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, errors.InvalidArgumentf("cannot pick from %d choices", n)
	}
	if n == 1 {
		return 0, nil
	}

	roll, err := dice.NewRoll(1, n)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll d%d", n)
	}

	return roll.GetValue() - 1, nil
}

// Seeded is a reproducible picker backed by math/rand
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded creates a picker whose sequence is fully determined by seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))} // #nosec G404 -- game randomness
}

// Intn returns the next index of the seeded sequence
func (s *Seeded) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, errors.InvalidArgumentf("cannot pick from %d choices", n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n), nil
}

// Fixed replays a scripted list of indexes, wrapping each into range.
// Once the script is exhausted it starts over.
type Fixed struct {
	mu      sync.Mutex
	indexes []int
	next    int
}

// NewFixed creates a scripted picker. With no indexes it always picks 0.
func NewFixed(indexes ...int) *Fixed {
	return &Fixed{indexes: indexes}
}

// Intn returns the next scripted index modulo n
func (f *Fixed) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, errors.InvalidArgumentf("cannot pick from %d choices", n)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.indexes) == 0 {
		return 0, nil
	}
	idx := f.indexes[f.next%len(f.indexes)]
	f.next++
	if idx < 0 {
		idx = -idx
	}
	return idx % n, nil
}
