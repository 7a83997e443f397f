package chargemodel

import (
	"fmt"
	"math"

	"github.com/davidbz/chargeflow/internal/domain"
)

// Graduated slices usage across contiguous ranges, each billed at its own rate.
type Graduated struct{}

// Kind returns domain.ChargeModelGraduated.
func (Graduated) Kind() domain.ChargeModelKind { return domain.ChargeModelGraduated }

// Apply sums the charge of every range the usage reaches.
func (m Graduated) Apply(props domain.ChargeProperties, agg domain.AggregationResult) domain.Result[domain.ComputedFee] {
	if failure := prepare(m.Kind(), props, agg); failure != nil {
		return domain.Fail[domain.ComputedFee](failure)
	}
	ranges := props.Graduated.Ranges
	if failure := validateRanges(ranges); failure != nil {
		return domain.Fail[domain.ComputedFee](failure)
	}

	fee := domain.ComputedFee{
		Units:       agg.TotalUsage,
		UnitsBilled: agg.EventCount,
		EventsCount: agg.EventCount,
	}

	remaining := agg.TotalUsage
	for i, r := range ranges {
		if remaining <= 0 {
			break
		}

		width := math.Inf(1)
		if r.ToValue != nil {
			width = *r.ToValue - r.FromValue
		}
		units := math.Min(width, remaining)
		remaining -= units

		amount := units*r.PerUnitAmount + r.FlatAmount
		fee.Amount += amount
		fee.Breakdown = append(fee.Breakdown, domain.FeeLine{
			Label:  fmt.Sprintf("range_%d", i+1),
			Units:  units,
			Amount: amount,
		})
	}

	return domain.Success(fee)
}

// validateRanges requires ranges that start at 0, follow each other without gap or
// overlap, and leave only the last one open-ended.
func validateRanges(ranges []domain.GraduatedRange) domain.Failure {
	failure := &domain.ValidationFailure{}

	for i, r := range ranges {
		field := fmt.Sprintf("graduated_ranges[%d]", i)
		last := i == len(ranges)-1

		switch {
		case i == 0 && r.FromValue != 0:
			failure.Add(field+".from_value", "must_start_at_zero")
		case i > 0 && ranges[i-1].ToValue != nil && r.FromValue != *ranges[i-1].ToValue:
			failure.Add(field+".from_value", "not_contiguous")
		}

		switch {
		case r.ToValue == nil && !last:
			failure.Add(field+".to_value", domain.ReasonMandatory)
		case r.ToValue != nil && *r.ToValue <= r.FromValue:
			failure.Add(field+".to_value", "not_increasing")
		}
	}

	return failure.OrNil()
}
