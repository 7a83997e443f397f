package chargemodel

import (
	"errors"

	"github.com/davidbz/chargeflow/internal/domain"
)

// prepare rejects properties of the wrong kind, invalid configuration and
// inconsistent aggregations before any arithmetic runs.
func prepare(kind domain.ChargeModelKind, props domain.ChargeProperties, agg domain.AggregationResult) domain.Failure {
	if props.Kind != kind {
		return domain.NewValidationFailure("charge_model", domain.ReasonInvalid)
	}

	configFailure := props.Validate()
	inputFailure := agg.Validate()

	switch {
	case configFailure == nil:
		return inputFailure
	case inputFailure == nil:
		return configFailure
	}

	var configValidation, inputValidation *domain.ValidationFailure
	if errors.As(configFailure, &configValidation) && errors.As(inputFailure, &inputValidation) {
		merged := &domain.ValidationFailure{}
		merged.Merge(configValidation)
		merged.Merge(inputValidation)
		return merged
	}
	return configFailure
}
