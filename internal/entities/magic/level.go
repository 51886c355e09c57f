// Package magic holds the shared vocabulary of the rule engine: magic levels
// and the capability interfaces a participant implements to cast, be targeted
// or trade.
package magic

import (
	"strings"

	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

// Level is the ordinal magic level of a caster or a spell requirement
type Level int

// Magic levels, lowest first
const (
	Noob Level = iota
	Adept
	Student
	Expert
	Master
)

var levelNames = [...]string{"noob", "adept", "student", "expert", "master"}

var levelMana = [...]int{50, 100, 200, 500, 1000}

// Levels returns every level in ascending order
func Levels() []Level {
	return []Level{Noob, Adept, Student, Expert, Master}
}

// Valid reports whether l is one of the five defined levels
func (l Level) Valid() bool {
	return l >= Noob && l <= Master
}

// Mana returns the minimum mana pool of the level
func (l Level) Mana() int {
	if !l.Valid() {
		return 0
	}
	return levelMana[l]
}

// AtLeast reports whether l is the same as or above other
func (l Level) AtLeast(other Level) bool {
	return l >= other
}

// Name returns the lower-case name used in snapshots and flags
func (l Level) Name() string {
	if !l.Valid() {
		return "unknown"
	}
	return levelNames[l]
}

// String renders the level as one to five asterisks
func (l Level) String() string {
	if !l.Valid() {
		return "?"
	}
	return strings.Repeat("*", int(l)+1)
}

// ParseLevel accepts a level name (case-insensitive) or its asterisk form
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range Levels() {
		if s == l.Name() || s == l.String() {
			return l, nil
		}
	}
	return 0, errors.InvalidArgumentf("unknown magic level %q", s)
}

// ValidateLevel returns an invalid argument error for undefined levels
func ValidateLevel(l Level) error {
	if !l.Valid() {
		return errors.InvalidArgumentf("magic level %d is not defined", int(l))
	}
	return nil
}
