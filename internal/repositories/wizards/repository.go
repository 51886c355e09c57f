// Package wizards provides the interface for wizard snapshot persistence
package wizards

//go:generate mockgen -destination=mock/mock_repository.go -package=wizardsmock github.com/KirkDiggler/rpg-arcana/internal/repositories/wizards Repository

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/wizard"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

// Repository defines the interface for wizard persistence
type Repository interface {
	// Create stores a new wizard
	// Returns errors.InvalidArgument for nil data or an empty ID
	// Returns errors.AlreadyExists if a wizard with the same ID exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a wizard by ID
	// Returns errors.InvalidArgument for an empty ID
	// Returns errors.NotFound if the wizard doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing wizard
	// Returns errors.InvalidArgument for nil data or an empty ID
	// Returns errors.NotFound if the wizard doesn't exist
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a wizard by ID
	// Returns errors.InvalidArgument for an empty ID
	// Returns errors.NotFound if the wizard doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns every stored wizard ordered by ID
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// CreateInput defines the input for creating a wizard
type CreateInput struct {
	WizardData *wizard.Data
}

// CreateOutput defines the output for creating a wizard
type CreateOutput struct {
	WizardData *wizard.Data
}

// GetInput defines the input for getting a wizard
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a wizard
type GetOutput struct {
	WizardData *wizard.Data
}

// UpdateInput defines the input for updating a wizard
type UpdateInput struct {
	WizardData *wizard.Data
}

// UpdateOutput defines the output for updating a wizard
type UpdateOutput struct {
	WizardData *wizard.Data
}

// DeleteInput defines the input for deleting a wizard
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a wizard
type DeleteOutput struct{}

// ListInput defines the input for listing wizards
type ListInput struct{}

// ListOutput defines the output for listing wizards
type ListOutput struct {
	Wizards []*wizard.Data
}

const (
	errWizardNil     = "wizard data cannot be nil"
	errWizardIDEmpty = "wizard ID cannot be empty"
)

func validateData(data *wizard.Data) error {
	if data == nil {
		return errors.InvalidArgument(errWizardNil)
	}
	return validateID(data.ID)
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.InvalidArgument(errWizardIDEmpty)
	}
	return nil
}

func encode(data *wizard.Data) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal wizard %s", data.ID)
	}
	return raw, nil
}

func decode(raw []byte) (*wizard.Data, error) {
	var data wizard.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal wizard data")
	}
	return &data, nil
}

func sortByID(list []*wizard.Data) {
	slices.SortFunc(list, func(a, b *wizard.Data) int {
		return strings.Compare(a.ID, b.ID)
	})
}
