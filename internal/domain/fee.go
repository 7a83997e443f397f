package domain

import "time"

// FeeLine is one component of a computed amount, e.g. a graduated range or the fixed part
// of a percentage charge.
type FeeLine struct {
	Label  string  `json:"label"`
	Units  float64 `json:"units"`
	Amount float64 `json:"amount"`
}

// ComputedFee is the pre-tax, pre-rounding output of a charge model. Amount is in the
// currency's major unit.
type ComputedFee struct {
	Amount            float64   `json:"amount"`
	Units             float64   `json:"units"`
	UnitsBilled       int       `json:"units_billed"`
	FreeUnitsConsumed int       `json:"free_units_consumed"`
	EventsCount       int       `json:"events_count"`
	Breakdown         []FeeLine `json:"breakdown,omitempty"`
}

// FeeType distinguishes usage fees from true-up top-ups.
type FeeType string

const (
	FeeTypeCharge FeeType = "charge"
	FeeTypeTrueUp FeeType = "true_up"
)

// Fee is a computed fee after rounding, as handed to persistence.
type Fee struct {
	ID                string    `json:"id"`
	ChargeID          string    `json:"charge_id"`
	PeriodKey         string    `json:"period_key"`
	FeeType           FeeType   `json:"fee_type"`
	Currency          string    `json:"currency"`
	PreciseAmount     float64   `json:"precise_amount"`
	AmountCents       int64     `json:"amount_cents"`
	Units             float64   `json:"units"`
	UnitsBilled       int       `json:"units_billed"`
	FreeUnitsConsumed int       `json:"free_units_consumed"`
	EventsCount       int       `json:"events_count"`
	TrueUpParentFeeID string    `json:"true_up_parent_fee_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// IsTrueUp reports whether the fee tops up a parent fee.
func (f Fee) IsTrueUp() bool {
	return f.FeeType == FeeTypeTrueUp
}
