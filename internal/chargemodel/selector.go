package chargemodel

import "github.com/davidbz/chargeflow/internal/domain"

// Selector resolves a charge model kind to its implementation.
type Selector struct{}

// NewSelector creates a selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Select returns the model for kind. Unknown kinds fail closed.
func (s *Selector) Select(kind domain.ChargeModelKind) domain.Result[domain.ChargeModel] {
	switch kind {
	case domain.ChargeModelStandard:
		return domain.Success[domain.ChargeModel](Standard{})
	case domain.ChargeModelPercentage:
		return domain.Success[domain.ChargeModel](Percentage{})
	case domain.ChargeModelGraduated:
		return domain.Success[domain.ChargeModel](Graduated{})
	case domain.ChargeModelVolume:
		return domain.Success[domain.ChargeModel](Volume{})
	case domain.ChargeModelPackage:
		return domain.Success[domain.ChargeModel](Package{})
	default:
		return domain.Fail[domain.ChargeModel](domain.NewValidationFailure("charge_model", domain.ReasonInvalid))
	}
}

// Apply selects the model for props.Kind and runs it.
func (s *Selector) Apply(props domain.ChargeProperties, agg domain.AggregationResult) domain.Result[domain.ComputedFee] {
	return domain.Then(s.Select(props.Kind), func(model domain.ChargeModel) domain.Result[domain.ComputedFee] {
		return model.Apply(props, agg)
	})
}
