package chargemodel_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/chargeflow/internal/chargemodel"
	"github.com/davidbz/chargeflow/internal/domain"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func percentageProps(rate, fixed float64, perEvents *int, perTotal *float64) domain.ChargeProperties {
	return domain.ChargeProperties{
		Kind: domain.ChargeModelPercentage,
		Percentage: &domain.PercentageProperties{
			Rate:                         rate,
			FixedAmount:                  fixed,
			FreeUnitsPerEvents:           perEvents,
			FreeUnitsPerTotalAggregation: perTotal,
		},
	}
}

func referenceAggregation(total float64) domain.AggregationResult {
	return domain.AggregationResult{
		TotalUsage:    total,
		EventCount:    4,
		RunningTotals: []float64{50, 150, 400},
	}
}

func TestPercentage_Apply(t *testing.T) {
	model := chargemodel.Percentage{}

	tests := []struct {
		name              string
		props             domain.ChargeProperties
		agg               domain.AggregationResult
		expectedAmount    float64
		expectedBilled    int
		expectedFreeUnits int
	}{
		{
			name:              "should apply both free bounds",
			props:             percentageProps(1.3, 2.0, intPtr(3), floatPtr(250)),
			agg:               referenceAggregation(800),
			expectedAmount:    (800-250)*0.013 + (4-2)*2.0, // 7.15 + 4.0
			expectedBilled:    2,
			expectedFreeUnits: 2,
		},
		{
			name:              "should apply free units per events only",
			props:             percentageProps(1.3, 2.0, intPtr(3), nil),
			agg:               referenceAggregation(800),
			expectedAmount:    (800-400)*0.013 + (4-3)*2.0, // 5.2 + 2.0
			expectedBilled:    1,
			expectedFreeUnits: 3,
		},
		{
			name:              "should apply free units per total aggregation only",
			props:             percentageProps(1.3, 2.0, nil, floatPtr(250)),
			agg:               referenceAggregation(800),
			expectedAmount:    (800-250)*0.013 + (4-2)*2.0,
			expectedBilled:    2,
			expectedFreeUnits: 2,
		},
		{
			name:              "should cap an aggregation threshold above the last running total",
			props:             percentageProps(1.3, 2.0, intPtr(3), floatPtr(500)),
			agg:               referenceAggregation(800),
			expectedAmount:    (800-400)*0.013 + (4-3)*2.0,
			expectedBilled:    1,
			expectedFreeUnits: 3,
		},
		{
			name:              "should charge everything without free units",
			props:             percentageProps(1.3, 2.0, nil, nil),
			agg:               domain.AggregationResult{TotalUsage: 800, EventCount: 4},
			expectedAmount:    800*0.013 + 4*2.0,
			expectedBilled:    4,
			expectedFreeUnits: 0,
		},
		{
			name:              "should keep the fixed fee with a zero rate",
			props:             percentageProps(0, 2.0, nil, nil),
			agg:               referenceAggregation(800),
			expectedAmount:    4 * 2.0,
			expectedBilled:    4,
			expectedFreeUnits: 0,
		},
		{
			name:              "should charge only the rate with a zero fixed amount",
			props:             percentageProps(1.3, 0, intPtr(3), floatPtr(250)),
			agg:               referenceAggregation(800),
			expectedAmount:    (800 - 250) * 0.013,
			expectedBilled:    2,
			expectedFreeUnits: 2,
		},
		{
			name:  "should waive everything when free events exceed the event count",
			props: percentageProps(1.3, 2.0, intPtr(5), nil),
			agg: domain.AggregationResult{
				TotalUsage:    400,
				EventCount:    4,
				RunningTotals: []float64{50, 150, 400},
			},
			expectedAmount:    0,
			expectedBilled:    0,
			expectedFreeUnits: 4,
		},
		{
			name:              "should exempt nothing with zero free events per count",
			props:             percentageProps(1.3, 2.0, intPtr(0), nil),
			agg:               referenceAggregation(800),
			expectedAmount:    800*0.013 + 4*2.0,
			expectedBilled:    4,
			expectedFreeUnits: 0,
		},
		{
			name:              "should charge fixed fees for zero usage with an aggregation bound",
			props:             percentageProps(1.3, 2.0, intPtr(3), floatPtr(250)),
			agg:               domain.AggregationResult{TotalUsage: 0, EventCount: 0},
			expectedAmount:    0,
			expectedBilled:    0,
			expectedFreeUnits: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := model.Apply(tt.props, tt.agg)

			require.True(t, result.IsSuccess(), "unexpected failure: %v", result.Failure())
			fee := result.Value()
			require.InDelta(t, tt.expectedAmount, fee.Amount, 1e-9)
			require.Equal(t, tt.expectedBilled, fee.UnitsBilled)
			require.Equal(t, tt.expectedFreeUnits, fee.FreeUnitsConsumed)
			require.Equal(t, tt.agg.EventCount, fee.EventsCount)
		})
	}
}

func TestPercentage_OmittedFinalRunningTotal(t *testing.T) {
	// Three free events with a three-entry history: index 2 is in range.
	// Four free events: index 3 is beyond the history and reads as total usage.
	model := chargemodel.Percentage{}
	agg := referenceAggregation(800)

	inRange := model.Apply(percentageProps(10, 0, intPtr(3), nil), agg)
	require.True(t, inRange.IsSuccess())
	require.InDelta(t, (800-400)*0.1, inRange.Value().Amount, 1e-9)

	beyond := model.Apply(percentageProps(10, 0, intPtr(4), nil), agg)
	require.True(t, beyond.IsSuccess())
	require.InDelta(t, 0.0, beyond.Value().Amount, 1e-9)
}

func TestPercentage_Failures(t *testing.T) {
	model := chargemodel.Percentage{}

	t.Run("should reject negative rate", func(t *testing.T) {
		result := model.Apply(percentageProps(-1, 2.0, nil, nil), referenceAggregation(800))

		require.True(t, result.IsFailure())
		validation, ok := result.Failure().(*domain.ValidationFailure)
		require.True(t, ok)
		require.Equal(t, []string{domain.ReasonOutOfRange}, validation.Messages["rate"])
	})

	t.Run("should reject negative fixed amount and negative free units", func(t *testing.T) {
		result := model.Apply(percentageProps(1, -2.0, intPtr(-1), floatPtr(-5)), referenceAggregation(800))

		require.True(t, result.IsFailure())
		validation, ok := result.Failure().(*domain.ValidationFailure)
		require.True(t, ok)
		require.Contains(t, validation.Messages, "fixed_amount")
		require.Contains(t, validation.Messages, "free_units_per_events")
		require.Contains(t, validation.Messages, "free_units_per_total_aggregation")
	})

	t.Run("should reject missing percentage properties", func(t *testing.T) {
		result := model.Apply(domain.ChargeProperties{Kind: domain.ChargeModelPercentage}, referenceAggregation(800))

		require.True(t, result.IsFailure())
		require.Equal(t, domain.FailureValidation, result.Failure().Kind())
	})

	t.Run("should reject properties of another model", func(t *testing.T) {
		props := domain.ChargeProperties{
			Kind:     domain.ChargeModelStandard,
			Standard: &domain.StandardProperties{UnitPrice: 1},
		}
		result := model.Apply(props, referenceAggregation(800))

		require.True(t, result.IsFailure())
		validation, ok := result.Failure().(*domain.ValidationFailure)
		require.True(t, ok)
		require.Contains(t, validation.Messages, "charge_model")
	})

	t.Run("should reject running totals out of chronological order", func(t *testing.T) {
		agg := domain.AggregationResult{
			TotalUsage:    800,
			EventCount:    4,
			RunningTotals: []float64{150, 50, 400},
		}
		result := model.Apply(percentageProps(1.3, 2.0, intPtr(3), nil), agg)

		require.True(t, result.IsFailure())
		validation, ok := result.Failure().(*domain.ValidationFailure)
		require.True(t, ok)
		require.Equal(t, []string{"not_chronological"}, validation.Messages["running_totals"])
	})

	t.Run("should reject history longer than event count", func(t *testing.T) {
		agg := domain.AggregationResult{
			TotalUsage:    800,
			EventCount:    2,
			RunningTotals: []float64{50, 150, 400},
		}
		result := model.Apply(percentageProps(1.3, 2.0, nil, nil), agg)

		require.True(t, result.IsFailure())
		require.Equal(t, domain.FailureValidation, result.Failure().Kind())
	})
}
