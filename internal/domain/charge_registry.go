package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrChargeNotFound is returned when a charge is not registered.
var ErrChargeNotFound = errors.New("charge not found")

// InMemoryChargeRegistry stores charge configs in memory.
type InMemoryChargeRegistry struct {
	mu      sync.RWMutex
	charges map[string]Charge
}

// NewInMemoryChargeRegistry creates a new in-memory charge registry.
func NewInMemoryChargeRegistry() *InMemoryChargeRegistry {
	return &InMemoryChargeRegistry{
		mu:      sync.RWMutex{},
		charges: make(map[string]Charge),
	}
}

// GetCharge retrieves a charge by ID.
func (r *InMemoryChargeRegistry) GetCharge(
	_ context.Context,
	chargeID string,
) (Charge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	charge, exists := r.charges[chargeID]
	if !exists {
		return Charge{}, fmt.Errorf("%w: %s", ErrChargeNotFound, chargeID)
	}

	return charge, nil
}

// RegisterCharge adds or replaces a charge.
func (r *InMemoryChargeRegistry) RegisterCharge(
	_ context.Context,
	charge Charge,
) error {
	if charge.ID == "" {
		return errors.New("charge id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.charges[charge.ID] = charge
	return nil
}
