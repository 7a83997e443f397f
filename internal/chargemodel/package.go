package chargemodel

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/davidbz/chargeflow/internal/domain"
)

// Package bills usage in fixed-size packages; a partial package is billed in full.
type Package struct{}

// Kind returns domain.ChargeModelPackage.
func (Package) Kind() domain.ChargeModelKind { return domain.ChargeModelPackage }

// Apply computes ceil(total_usage / package_size) packages minus the free ones.
// Free packages are reported as a breakdown line; they are not free events.
func (m Package) Apply(props domain.ChargeProperties, agg domain.AggregationResult) domain.Result[domain.ComputedFee] {
	if failure := prepare(m.Kind(), props, agg); failure != nil {
		return domain.Fail[domain.ComputedFee](failure)
	}
	p := props.Package

	// Decimal division keeps 0.3 / 0.1 at exactly 3 packages.
	count := decimal.NewFromFloat(agg.TotalUsage).
		Div(decimal.NewFromFloat(p.PackageSize)).
		Ceil()
	if count.GreaterThan(decimal.NewFromInt(math.MaxInt)) {
		return domain.Fail[domain.ComputedFee](domain.NewValidationFailure("total_usage", domain.ReasonOutOfRange))
	}
	packages := count.IntPart()

	billed := max(packages-int64(p.FreePackages), 0)
	free := packages - billed
	amount := float64(billed) * p.PackagePrice

	return domain.Success(domain.ComputedFee{
		Amount:      amount,
		Units:       agg.TotalUsage,
		UnitsBilled: int(billed),
		EventsCount: agg.EventCount,
		Breakdown: []domain.FeeLine{
			{Label: "packages", Units: float64(billed), Amount: amount},
			{Label: "free_packages", Units: float64(free)},
		},
	})
}
