package domain

import (
	"context"
	"time"
)

// ChargeModel computes a fee from charge properties and a period's usage.
type ChargeModel interface {
	// Kind returns the pricing model this implementation serves.
	Kind() ChargeModelKind

	// Apply computes the fee. It never mutates its inputs.
	Apply(props ChargeProperties, agg AggregationResult) Result[ComputedFee]
}

// ModelSelector maps a charge model kind to its implementation.
type ModelSelector interface {
	// Select returns the model for kind, failing closed on unknown kinds.
	Select(kind ChargeModelKind) Result[ChargeModel]
}

// ChargeRegistry stores charge configurations.
type ChargeRegistry interface {
	// GetCharge returns the charge with the given ID.
	GetCharge(ctx context.Context, chargeID string) (Charge, error)

	// RegisterCharge adds or replaces a charge.
	RegisterCharge(ctx context.Context, charge Charge) error
}

// FeeRepository persists rounded fees.
type FeeRepository interface {
	// Save stores a fee.
	Save(ctx context.Context, fee *Fee) error

	// Get returns the fee with the given ID or ErrFeeNotFound.
	Get(ctx context.Context, feeID string) (*Fee, error)

	// ListByPeriod returns the fees of a charge for a billing period, oldest first.
	ListByPeriod(ctx context.Context, chargeID, periodKey string) ([]*Fee, error)
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}

// MetricsRecorder records engine activity.
type MetricsRecorder interface {
	// ObserveComputation records one Apply call and its outcome.
	ObserveComputation(kind ChargeModelKind, outcome string, duration time.Duration)

	// IncTrueUp counts emitted true-up fees.
	IncTrueUp(kind ChargeModelKind)
}

// License gates premium features.
type License interface {
	// IsPremium reports whether premium features are enabled.
	IsPremium() bool
}
