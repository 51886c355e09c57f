package magic

// Source provides the mana needed to cast a spell.
//
// ProvideMana checks the level and mana requirements and, when both hold,
// deducts the mana in the same step. It reports whether the mana was provided.
type Source interface {
	ProvideMana(levelNeeded Level, amount int) (bool, error)
}

// SourceFunc adapts a function to the Source interface
type SourceFunc func(levelNeeded Level, amount int) (bool, error)

// ProvideMana calls f
func (f SourceFunc) ProvideMana(levelNeeded Level, amount int) (bool, error) {
	return f(levelNeeded, amount)
}

// ValidateManaRequest validates the arguments of a ProvideMana call
func ValidateManaRequest(levelNeeded Level, amount int) error {
	if err := ValidateLevel(levelNeeded); err != nil {
		return err
	}
	return ValidateAmount(amount)
}
