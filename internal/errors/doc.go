// Package errors provides the structured error type shared by every layer of
// rpg-arcana.
//
// The rule engine (spells, items, wizards) raises exactly one kind of error:
// CodeInvalidArgument, for nil references and out of range numbers. Running
// out of mana, money or capacity is not an error; those outcomes are reported
// as false return values.
//
// Storage and orchestration layers add NotFound, AlreadyExists and Internal.
//
// # Basic Usage
//
//	err := errors.InvalidArgumentf("percentage %d is outside [0,100]", p)
//	err := errors.NotFound("wizard not found").WithMeta("wizard_id", id)
//
// Wrapping keeps the original code:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load caster")
//	}
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", cfg.Name, vb)
//	errors.ValidateNonNegative("mana_cost", cfg.ManaCost, vb)
//	if err := vb.Build(); err != nil {
//	    return nil, err
//	}
package errors
