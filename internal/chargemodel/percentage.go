package chargemodel

import (
	"math"

	"github.com/davidbz/chargeflow/internal/domain"
)

const percentBase = 100.0

// Percentage charges a share of the usage above a free threshold plus a fixed
// amount for every event that is not free.
type Percentage struct{}

// Kind returns domain.ChargeModelPercentage.
func (Percentage) Kind() domain.ChargeModelKind { return domain.ChargeModelPercentage }

// Apply computes the percentage fee.
func (m Percentage) Apply(props domain.ChargeProperties, agg domain.AggregationResult) domain.Result[domain.ComputedFee] {
	if failure := prepare(m.Kind(), props, agg); failure != nil {
		return domain.Fail[domain.ComputedFee](failure)
	}
	p := props.Percentage

	freeEvents := freeEventCount(p, agg)
	threshold := percentageThreshold(p, agg, freeEvents)

	base := math.Max(agg.TotalUsage-threshold, 0)
	percentageAmount := base * p.Rate / percentBase

	unitsBilled := max(agg.EventCount-freeEvents, 0)
	fixedAmount := float64(unitsBilled) * p.FixedAmount

	return domain.Success(domain.ComputedFee{
		Amount:            percentageAmount + fixedAmount,
		Units:             agg.TotalUsage,
		UnitsBilled:       unitsBilled,
		FreeUnitsConsumed: freeEvents,
		EventsCount:       agg.EventCount,
		Breakdown: []domain.FeeLine{
			{Label: "percentage", Units: base, Amount: percentageAmount},
			{Label: "fixed", Units: float64(unitsBilled), Amount: fixedAmount},
		},
	})
}

// freeEventCount is the number of leading events exempt from the fixed fee. The
// event bound and the cumulative-usage bound both apply; the tighter one wins.
func freeEventCount(p *domain.PercentageProperties, agg domain.AggregationResult) int {
	if p.FreeUnitsPerEvents == nil && p.FreeUnitsPerTotalAggregation == nil {
		return 0
	}

	aggFreeEvents := agg.EventCount
	if p.FreeUnitsPerTotalAggregation != nil {
		aggFreeEvents = agg.CountRunningTotalsBelow(*p.FreeUnitsPerTotalAggregation)
	}

	boundFromEvents := agg.EventCount
	if p.FreeUnitsPerEvents != nil {
		boundFromEvents = *p.FreeUnitsPerEvents
	}

	return min(boundFromEvents, aggFreeEvents, agg.EventCount)
}

// percentageThreshold is the usage exempt from the percentage part.
func percentageThreshold(p *domain.PercentageProperties, agg domain.AggregationResult, freeEvents int) float64 {
	switch {
	case p.FreeUnitsPerTotalAggregation != nil:
		return math.Min(*p.FreeUnitsPerTotalAggregation, agg.LastRunningTotal())
	case p.FreeUnitsPerEvents != nil:
		// With no free event nothing is exempt; RunningTotalAt(-1) would read as the total.
		if freeEvents == 0 {
			return 0
		}
		return agg.RunningTotalAt(freeEvents - 1)
	default:
		return 0
	}
}
