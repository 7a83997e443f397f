package chargemodel

import (
	"fmt"

	"github.com/davidbz/chargeflow/internal/domain"
)

// Volume bills the whole usage at the rate of the single tier it falls in.
type Volume struct{}

// Kind returns domain.ChargeModelVolume.
func (Volume) Kind() domain.ChargeModelKind { return domain.ChargeModelVolume }

// Apply picks the highest tier whose lower bound is not above the usage.
func (m Volume) Apply(props domain.ChargeProperties, agg domain.AggregationResult) domain.Result[domain.ComputedFee] {
	if failure := prepare(m.Kind(), props, agg); failure != nil {
		return domain.Fail[domain.ComputedFee](failure)
	}
	tiers := props.Volume.Tiers
	if failure := validateTiers(tiers); failure != nil {
		return domain.Fail[domain.ComputedFee](failure)
	}

	index := -1
	for i := len(tiers) - 1; i >= 0; i-- {
		if tiers[i].FromValue <= agg.TotalUsage {
			index = i
			break
		}
	}
	if index < 0 || (tiers[index].ToValue != nil && agg.TotalUsage > *tiers[index].ToValue) {
		return domain.Fail[domain.ComputedFee](domain.NewValidationFailure("volume_ranges", "no_matching_tier"))
	}

	tier := tiers[index]
	amount := tier.FlatAmount + agg.TotalUsage*tier.PerUnitAmount

	return domain.Success(domain.ComputedFee{
		Amount:      amount,
		Units:       agg.TotalUsage,
		UnitsBilled: agg.EventCount,
		EventsCount: agg.EventCount,
		Breakdown: []domain.FeeLine{
			{Label: fmt.Sprintf("tier_%d", index+1), Units: agg.TotalUsage, Amount: amount},
		},
	})
}

// validateTiers requires strictly increasing, non-overlapping tiers with only the
// last one open-ended.
func validateTiers(tiers []domain.VolumeTier) domain.Failure {
	failure := &domain.ValidationFailure{}

	for i, t := range tiers {
		field := fmt.Sprintf("volume_ranges[%d]", i)
		last := i == len(tiers)-1

		if i > 0 {
			prev := tiers[i-1]
			switch {
			case t.FromValue <= prev.FromValue:
				failure.Add(field+".from_value", "not_increasing")
			case prev.ToValue != nil && t.FromValue < *prev.ToValue:
				failure.Add(field+".from_value", "overlapping")
			}
		}

		switch {
		case t.ToValue == nil && !last:
			failure.Add(field+".to_value", domain.ReasonMandatory)
		case t.ToValue != nil && *t.ToValue < t.FromValue:
			failure.Add(field+".to_value", "not_increasing")
		}
	}

	return failure.OrNil()
}
