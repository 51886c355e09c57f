package magic

import (
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

// Target is anything a spell or item can affect. Amounts must not be
// negative and percentages must lie in [0, 100]; violations are invalid
// argument errors and leave the target unchanged.
type Target interface {
	TakeDamage(amount int) error
	TakeDamagePercent(percentage int) error
	WeakenMagic(amount int) error
	WeakenMagicPercent(percentage int) error
	Heal(amount int) error
	HealPercent(percentage int) error
	EnforceMagic(amount int) error
	EnforceMagicPercent(percentage int) error

	// IsProtected reports whether the next cast of the attacking spell with
	// the given ID is nullified
	IsProtected(spellID string) bool
	SetProtection(spellIDs []string) error
	RemoveProtection(spellIDs []string) error
}

// ValidateAmount rejects negative absolute amounts
func ValidateAmount(amount int) error {
	if amount < 0 {
		return errors.InvalidArgumentf("amount %d must not be negative", amount)
	}
	return nil
}

// ValidatePercentage rejects percentages outside [0, 100]
func ValidatePercentage(percentage int) error {
	if percentage < 0 || percentage > 100 {
		return errors.InvalidArgumentf("percentage %d must be between 0 and 100", percentage)
	}
	return nil
}

// ValidateSpellIDs rejects a nil protection set
func ValidateSpellIDs(spellIDs []string) error {
	if spellIDs == nil {
		return errors.InvalidArgument("spell IDs must not be nil")
	}
	return nil
}

// NoEffect is the default Target behaviour for participants without health,
// mana or protections. Embed it by value and override what applies.
type NoEffect struct{}

var _ Target = NoEffect{}

// TakeDamage validates amount and does nothing
func (NoEffect) TakeDamage(amount int) error { return ValidateAmount(amount) }

// TakeDamagePercent validates percentage and does nothing
func (NoEffect) TakeDamagePercent(percentage int) error { return ValidatePercentage(percentage) }

// WeakenMagic validates amount and does nothing
func (NoEffect) WeakenMagic(amount int) error { return ValidateAmount(amount) }

// WeakenMagicPercent validates percentage and does nothing
func (NoEffect) WeakenMagicPercent(percentage int) error { return ValidatePercentage(percentage) }

// Heal validates amount and does nothing
func (NoEffect) Heal(amount int) error { return ValidateAmount(amount) }

// HealPercent validates percentage and does nothing
func (NoEffect) HealPercent(percentage int) error { return ValidatePercentage(percentage) }

// EnforceMagic validates amount and does nothing
func (NoEffect) EnforceMagic(amount int) error { return ValidateAmount(amount) }

// EnforceMagicPercent validates percentage and does nothing
func (NoEffect) EnforceMagicPercent(percentage int) error { return ValidatePercentage(percentage) }

// IsProtected is always false
func (NoEffect) IsProtected(string) bool { return false }

// SetProtection validates the set and does nothing
func (NoEffect) SetProtection(spellIDs []string) error { return ValidateSpellIDs(spellIDs) }

// RemoveProtection validates the set and does nothing
func (NoEffect) RemoveProtection(spellIDs []string) error { return ValidateSpellIDs(spellIDs) }
