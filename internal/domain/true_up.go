package domain

import "math"

// PeriodFee is a fee already computed for the billing period being reconciled.
type PeriodFee struct {
	ID       string
	Amount   float64
	IsTrueUp bool
}

// TrueUp is a supplementary fee that lifts a period up to its committed minimum.
// ParentFeeID is a back-reference only; the parent fee is not modified.
type TrueUp struct {
	Fee         ComputedFee
	ParentFeeID string
}

// TrueUpReconciler decides whether a period needs a true-up fee.
type TrueUpReconciler struct{}

// NewTrueUpReconciler creates a reconciler.
func NewTrueUpReconciler() *TrueUpReconciler {
	return &TrueUpReconciler{}
}

// Reconcile returns a nil TrueUp when the period fees already meet the commitment.
// Existing true-up fees count toward the total, so reconciling twice never emits a
// second top-up, but a true-up is never picked as parent.
func (r *TrueUpReconciler) Reconcile(fees []PeriodFee, commitment float64) Result[*TrueUp] {
	if math.IsNaN(commitment) || math.IsInf(commitment, 0) || commitment < 0 {
		return Fail[*TrueUp](NewValidationFailure("min_amount", ReasonOutOfRange))
	}

	total := 0.0
	parentID := ""
	for _, fee := range fees {
		if fee.Amount < 0 {
			return Fail[*TrueUp](NewValidationFailure("fees", ReasonOutOfRange))
		}
		total += fee.Amount
		if parentID == "" && !fee.IsTrueUp && fee.ID != "" {
			parentID = fee.ID
		}
	}

	if total >= commitment {
		return Success[*TrueUp](nil)
	}
	if parentID == "" {
		return Fail[*TrueUp](NotFoundFailure{Resource: "parent_fee"})
	}

	return Success(&TrueUp{
		Fee: ComputedFee{
			Amount: commitment - total,
			Breakdown: []FeeLine{
				{Label: "true_up", Amount: commitment - total},
			},
		},
		ParentFeeID: parentID,
	})
}
