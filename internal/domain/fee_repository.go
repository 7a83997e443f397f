package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrFeeNotFound is returned when a fee does not exist.
var ErrFeeNotFound = errors.New("fee not found")

// InMemoryFeeRepository keeps fees in memory, indexed by charge and period.
type InMemoryFeeRepository struct {
	mu       sync.RWMutex
	fees     map[string]Fee
	byPeriod map[string][]string
}

// NewInMemoryFeeRepository creates an empty repository.
func NewInMemoryFeeRepository() *InMemoryFeeRepository {
	return &InMemoryFeeRepository{
		mu:       sync.RWMutex{},
		fees:     make(map[string]Fee),
		byPeriod: make(map[string][]string),
	}
}

// Save stores a copy of fee.
func (r *InMemoryFeeRepository) Save(_ context.Context, fee *Fee) error {
	if fee == nil {
		return errors.New("fee cannot be nil")
	}
	if fee.ID == "" {
		return errors.New("fee id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fees[fee.ID]; !exists {
		key := periodIndexKey(fee.ChargeID, fee.PeriodKey)
		r.byPeriod[key] = append(r.byPeriod[key], fee.ID)
	}
	r.fees[fee.ID] = *fee

	return nil
}

// Get returns a copy of the stored fee.
func (r *InMemoryFeeRepository) Get(_ context.Context, feeID string) (*Fee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fee, exists := r.fees[feeID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrFeeNotFound, feeID)
	}

	return &fee, nil
}

// ListByPeriod returns the fees of a charge period in insertion order.
func (r *InMemoryFeeRepository) ListByPeriod(_ context.Context, chargeID, periodKey string) ([]*Fee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byPeriod[periodIndexKey(chargeID, periodKey)]
	fees := make([]*Fee, 0, len(ids))
	for _, id := range ids {
		fee := r.fees[id]
		fees = append(fees, &fee)
	}

	return fees, nil
}

func periodIndexKey(chargeID, periodKey string) string {
	return chargeID + "|" + periodKey
}
