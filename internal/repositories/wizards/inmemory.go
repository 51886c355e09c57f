package wizards

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/wizard"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage. Stored
// snapshots are kept encoded so callers never share state with the store.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string][]byte
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string][]byte),
	}
}

// Create stores a new wizard
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateData(input.WizardData); err != nil {
		return nil, err
	}

	raw, err := encode(input.WizardData)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.WizardData.ID]; exists {
		return nil, errors.AlreadyExistsf("wizard with ID %s already exists", input.WizardData.ID)
	}
	r.store[input.WizardData.ID] = raw

	return &CreateOutput{WizardData: input.WizardData}, nil
}

// Get retrieves a wizard by ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	raw, exists := r.store[input.ID]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.NotFoundf("wizard with ID %s not found", input.ID)
	}

	data, err := decode(raw)
	if err != nil {
		return nil, err
	}
	return &GetOutput{WizardData: data}, nil
}

// Update replaces an existing wizard
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateData(input.WizardData); err != nil {
		return nil, err
	}

	raw, err := encode(input.WizardData)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.WizardData.ID]; !exists {
		return nil, errors.NotFoundf("wizard with ID %s not found", input.WizardData.ID)
	}
	r.store[input.WizardData.ID] = raw

	return &UpdateOutput{WizardData: input.WizardData}, nil
}

// Delete removes a wizard by ID
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFoundf("wizard with ID %s not found", input.ID)
	}
	delete(r.store, input.ID)

	return &DeleteOutput{}, nil
}

// List returns every stored wizard ordered by ID
func (r *InMemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*wizard.Data, 0, len(r.store))
	for _, raw := range r.store {
		data, err := decode(raw)
		if err != nil {
			return nil, err
		}
		list = append(list, data)
	}
	sortByID(list)

	return &ListOutput{Wizards: list}, nil
}
