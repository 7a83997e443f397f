package domain

import "math"

const totalTolerance = 1e-9

// AggregationResult is the usage summary of one charge over one billing period.
// RunningTotals[i] is the cumulative usage right after event i+1, in chronological
// order. The final entry may be omitted; any index at or beyond the sequence reads
// as TotalUsage.
type AggregationResult struct {
	TotalUsage    float64        `json:"total_usage"`
	EventCount    int            `json:"event_count"`
	RunningTotals []float64      `json:"running_totals,omitempty"`
	Options       map[string]any `json:"options,omitempty"`
}

// RunningTotalAt returns the cumulative usage after event i+1.
func (a AggregationResult) RunningTotalAt(i int) float64 {
	if i >= 0 && i < len(a.RunningTotals) {
		return a.RunningTotals[i]
	}
	return a.TotalUsage
}

// LastRunningTotal returns the highest cumulative usage recorded in the history.
func (a AggregationResult) LastRunningTotal() float64 {
	if len(a.RunningTotals) == 0 {
		return a.TotalUsage
	}
	return a.RunningTotals[len(a.RunningTotals)-1]
}

// CountRunningTotalsBelow counts events that happened while cumulative usage was
// still strictly below threshold.
func (a AggregationResult) CountRunningTotalsBelow(threshold float64) int {
	count := 0
	for _, total := range a.RunningTotals {
		if total < threshold {
			count++
		}
	}
	return count
}

// Validate checks the preconditions the charge models rely on.
func (a AggregationResult) Validate() Failure {
	failure := &ValidationFailure{}

	if math.IsNaN(a.TotalUsage) || math.IsInf(a.TotalUsage, 0) || a.TotalUsage < 0 {
		failure.Add("total_usage", ReasonOutOfRange)
	}
	if a.EventCount < 0 {
		failure.Add("event_count", ReasonOutOfRange)
	}
	if len(a.RunningTotals) > a.EventCount {
		failure.Add("running_totals", "exceeds_event_count")
	}

	previous := 0.0
	for _, total := range a.RunningTotals {
		switch {
		case math.IsNaN(total) || total < 0:
			failure.Add("running_totals", ReasonOutOfRange)
		case total < previous:
			failure.Add("running_totals", "not_chronological")
		case total > a.TotalUsage:
			failure.Add("running_totals", "exceeds_total_usage")
		}
		if failure.Messages["running_totals"] != nil {
			break
		}
		previous = total
	}

	// A complete history must end exactly where the total does.
	if n := len(a.RunningTotals); n > 0 && n == a.EventCount && failure.Empty() &&
		math.Abs(a.RunningTotals[n-1]-a.TotalUsage) > totalTolerance*math.Max(1, a.TotalUsage) {
		failure.Add("running_totals", "inconsistent_with_total_usage")
	}

	return failure.OrNil()
}
