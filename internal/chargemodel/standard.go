package chargemodel

import "github.com/davidbz/chargeflow/internal/domain"

// Standard charges every unit of usage at a single price.
type Standard struct{}

// Kind returns domain.ChargeModelStandard.
func (Standard) Kind() domain.ChargeModelKind { return domain.ChargeModelStandard }

// Apply computes total_usage * unit_price.
func (m Standard) Apply(props domain.ChargeProperties, agg domain.AggregationResult) domain.Result[domain.ComputedFee] {
	if failure := prepare(m.Kind(), props, agg); failure != nil {
		return domain.Fail[domain.ComputedFee](failure)
	}

	amount := agg.TotalUsage * props.Standard.UnitPrice

	return domain.Success(domain.ComputedFee{
		Amount:      amount,
		Units:       agg.TotalUsage,
		UnitsBilled: agg.EventCount,
		EventsCount: agg.EventCount,
		Breakdown: []domain.FeeLine{
			{Label: "standard", Units: agg.TotalUsage, Amount: amount},
		},
	})
}
