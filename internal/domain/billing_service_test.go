package domain_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/chargeflow/internal/chargemodel"
	"github.com/davidbz/chargeflow/internal/domain"
	"github.com/davidbz/chargeflow/internal/mocks"
)

const testPeriod = "2026-09"

func newTestService(
	charges domain.ChargeRegistry,
	fees domain.FeeRepository,
	publisher domain.EventPublisher,
	metrics domain.MetricsRecorder,
	premium bool,
) *domain.BillingService {
	return domain.NewBillingService(
		chargemodel.NewSelector(),
		charges,
		fees,
		publisher,
		metrics,
		domain.StaticLicense{Premium: premium},
		domain.BillingOptions{Rounding: domain.NewRoundingPolicy(domain.RoundHalfUp), Workers: 2},
	)
}

func committedCharge(id string, minimum float64) domain.Charge {
	charge := standardCharge(id)
	charge.MinimumCommitment = minimum
	return charge
}

func computeRequest(chargeID string, total float64, events int) domain.ComputeRequest {
	return domain.ComputeRequest{
		ChargeID:    chargeID,
		PeriodKey:   testPeriod,
		Aggregation: domain.AggregationResult{TotalUsage: total, EventCount: events},
	}
}

func TestBillingService_RegisterCharge(t *testing.T) {
	ctx := context.Background()

	t.Run("should store a valid charge", func(t *testing.T) {
		registry := domain.NewInMemoryChargeRegistry()
		service := newTestService(registry, domain.NewInMemoryFeeRepository(), nil, nil, false)

		result := service.RegisterCharge(ctx, standardCharge("c1"))

		require.True(t, result.IsSuccess())
		_, err := registry.GetCharge(ctx, "c1")
		require.NoError(t, err)
	})

	t.Run("should fill the default currency", func(t *testing.T) {
		registry := domain.NewInMemoryChargeRegistry()
		service := domain.NewBillingService(
			chargemodel.NewSelector(), registry, domain.NewInMemoryFeeRepository(),
			nil, nil, domain.StaticLicense{},
			domain.BillingOptions{DefaultCurrency: "EUR"},
		)
		charge := standardCharge("c1")
		charge.Currency = ""

		result := service.RegisterCharge(ctx, charge)

		require.True(t, result.IsSuccess())
		require.Equal(t, "EUR", result.Value().Currency)
	})

	t.Run("should reject invalid configuration", func(t *testing.T) {
		service := newTestService(domain.NewInMemoryChargeRegistry(), domain.NewInMemoryFeeRepository(), nil, nil, true)
		charge := standardCharge("c1")
		charge.Properties.Standard.UnitPrice = -1

		result := service.RegisterCharge(ctx, charge)

		require.True(t, result.IsFailure())
		require.Equal(t, domain.FailureValidation, result.Failure().Kind())
	})

	t.Run("should require premium for a minimum commitment", func(t *testing.T) {
		service := newTestService(domain.NewInMemoryChargeRegistry(), domain.NewInMemoryFeeRepository(), nil, nil, false)

		result := service.RegisterCharge(ctx, committedCharge("c1", 10))

		require.True(t, result.IsFailure())
		require.Equal(t, domain.ForbiddenFailure{Code: "feature_unavailable"}, result.Failure())
	})

	t.Run("should allow a minimum commitment on premium", func(t *testing.T) {
		service := newTestService(domain.NewInMemoryChargeRegistry(), domain.NewInMemoryFeeRepository(), nil, nil, true)

		require.True(t, service.RegisterCharge(ctx, committedCharge("c1", 10)).IsSuccess())
	})

	t.Run("should report storage errors as unexpected", func(t *testing.T) {
		registry := mocks.NewMockChargeRegistry(t)
		registry.EXPECT().RegisterCharge(mock.Anything, mock.Anything).Return(errors.New("disk full"))
		service := newTestService(registry, domain.NewInMemoryFeeRepository(), nil, nil, true)

		result := service.RegisterCharge(ctx, standardCharge("c1"))

		require.True(t, result.IsFailure())
		require.False(t, domain.IsHandled(result.Failure()))
	})
}

func TestBillingService_ComputeFee(t *testing.T) {
	ctx := context.Background()

	t.Run("should compute, round, store and publish", func(t *testing.T) {
		registry := domain.NewInMemoryChargeRegistry()
		require.NoError(t, registry.RegisterCharge(ctx, standardCharge("c1")))
		fees := domain.NewInMemoryFeeRepository()

		publisher := mocks.NewMockEventPublisher(t)
		publisher.EXPECT().
			Publish(mock.Anything, domain.EventFeeComputed, mock.MatchedBy(func(data map[string]interface{}) bool {
				return data["charge_id"] == "c1" && data["amount_cents"] == int64(350)
			})).
			Return().
			Once()

		metrics := mocks.NewMockMetricsRecorder(t)
		metrics.EXPECT().ObserveComputation(domain.ChargeModelStandard, "success", mock.Anything).Return().Once()

		service := newTestService(registry, fees, publisher, metrics, false)

		result := service.ComputeFee(ctx, computeRequest("c1", 7, 3))

		require.True(t, result.IsSuccess(), "unexpected failure: %v", result.Failure())
		billed := result.Value()
		require.InDelta(t, 3.5, billed.Computed.Amount, 1e-9)
		require.Equal(t, int64(350), billed.Fee.AmountCents)
		require.Equal(t, domain.FeeTypeCharge, billed.Fee.FeeType)
		require.Equal(t, testPeriod, billed.Fee.PeriodKey)
		require.Nil(t, billed.TrueUp)

		stored, err := fees.Get(ctx, billed.Fee.ID)
		require.NoError(t, err)
		require.Equal(t, billed.Fee.AmountCents, stored.AmountCents)
	})

	t.Run("should require charge and period", func(t *testing.T) {
		service := newTestService(domain.NewInMemoryChargeRegistry(), domain.NewInMemoryFeeRepository(), nil, nil, false)

		result := service.ComputeFee(ctx, domain.ComputeRequest{})

		messages := validationMessages(t, result.Failure())
		require.Contains(t, messages, "charge_id")
		require.Contains(t, messages, "period_key")
	})

	t.Run("should report an unknown charge as not found", func(t *testing.T) {
		service := newTestService(domain.NewInMemoryChargeRegistry(), domain.NewInMemoryFeeRepository(), nil, nil, false)

		result := service.ComputeFee(ctx, computeRequest("missing", 1, 1))

		require.Equal(t, domain.NotFoundFailure{Resource: "charge"}, result.Failure())
	})

	t.Run("should record and return model failures", func(t *testing.T) {
		registry := domain.NewInMemoryChargeRegistry()
		require.NoError(t, registry.RegisterCharge(ctx, standardCharge("c1")))
		fees := mocks.NewMockFeeRepository(t)

		metrics := mocks.NewMockMetricsRecorder(t)
		metrics.EXPECT().ObserveComputation(domain.ChargeModelStandard, "validation", mock.Anything).Return().Once()

		service := newTestService(registry, fees, nil, metrics, false)

		result := service.ComputeFee(ctx, computeRequest("c1", -5, 1))

		require.True(t, result.IsFailure())
		require.Equal(t, domain.FailureValidation, result.Failure().Kind())
		fees.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("should report storage errors as unexpected", func(t *testing.T) {
		registry := domain.NewInMemoryChargeRegistry()
		require.NoError(t, registry.RegisterCharge(ctx, standardCharge("c1")))
		fees := mocks.NewMockFeeRepository(t)
		fees.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("connection reset"))

		service := newTestService(registry, fees, nil, nil, false)

		result := service.ComputeFee(ctx, computeRequest("c1", 1, 1))

		require.True(t, result.IsFailure())
		require.Equal(t, domain.FailureUnexpected, result.Failure().Kind())
	})
}

func TestBillingService_TrueUp(t *testing.T) {
	ctx := context.Background()

	t.Run("should top up the first fee once per period", func(t *testing.T) {
		registry := domain.NewInMemoryChargeRegistry()
		require.NoError(t, registry.RegisterCharge(ctx, committedCharge("c1", 10)))
		fees := domain.NewInMemoryFeeRepository()

		metrics := mocks.NewMockMetricsRecorder(t)
		metrics.EXPECT().ObserveComputation(domain.ChargeModelStandard, "success", mock.Anything).Return().Times(2)
		metrics.EXPECT().IncTrueUp(domain.ChargeModelStandard).Return().Once()

		service := newTestService(registry, fees, nil, metrics, true)

		first := service.ComputeFee(ctx, computeRequest("c1", 6, 2))
		require.True(t, first.IsSuccess(), "unexpected failure: %v", first.Failure())
		require.NotNil(t, first.Value().TrueUp)
		require.Equal(t, domain.FeeTypeTrueUp, first.Value().TrueUp.FeeType)
		require.Equal(t, first.Value().Fee.ID, first.Value().TrueUp.TrueUpParentFeeID)
		require.Equal(t, int64(700), first.Value().TrueUp.AmountCents)
		require.Equal(t, int64(300), first.Value().Fee.AmountCents, "parent fee is left untouched")

		second := service.ComputeFee(ctx, computeRequest("c1", 6, 2))
		require.True(t, second.IsSuccess())
		require.Nil(t, second.Value().TrueUp)

		periodFees, err := fees.ListByPeriod(ctx, "c1", testPeriod)
		require.NoError(t, err)
		require.Len(t, periodFees, 3)
	})

	t.Run("should not true up when usage meets the commitment", func(t *testing.T) {
		registry := domain.NewInMemoryChargeRegistry()
		require.NoError(t, registry.RegisterCharge(ctx, committedCharge("c1", 10)))
		service := newTestService(registry, domain.NewInMemoryFeeRepository(), nil, nil, true)

		result := service.ComputeFee(ctx, computeRequest("c1", 40, 2))

		require.True(t, result.IsSuccess())
		require.Nil(t, result.Value().TrueUp)
	})

	t.Run("should issue a single true-up for concurrent computations", func(t *testing.T) {
		registry := domain.NewInMemoryChargeRegistry()
		require.NoError(t, registry.RegisterCharge(ctx, committedCharge("c1", 100)))
		fees := domain.NewInMemoryFeeRepository()
		service := newTestService(registry, fees, nil, nil, true)

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				service.ComputeFee(ctx, computeRequest("c1", 2, 1))
			}()
		}
		wg.Wait()

		periodFees, err := fees.ListByPeriod(ctx, "c1", testPeriod)
		require.NoError(t, err)

		trueUps := 0
		for _, fee := range periodFees {
			if fee.IsTrueUp() {
				trueUps++
			}
		}
		require.Equal(t, 1, trueUps)
		require.Len(t, periodFees, 21)
		require.Zero(t, service.PeriodLockCount())
	})

	t.Run("should release period locks once computations finish", func(t *testing.T) {
		registry := domain.NewInMemoryChargeRegistry()
		require.NoError(t, registry.RegisterCharge(ctx, committedCharge("c1", 100)))
		service := newTestService(registry, domain.NewInMemoryFeeRepository(), nil, nil, true)

		succeeded := make([]bool, 200)
		var wg sync.WaitGroup
		for i := range succeeded {
			wg.Add(1)
			go func() {
				defer wg.Done()
				req := computeRequest("c1", 2, 1)
				req.PeriodKey = fmt.Sprintf("2026-%03d", i)
				succeeded[i] = service.ComputeFee(ctx, req).IsSuccess()
			}()
		}
		wg.Wait()

		require.NotContains(t, succeeded, false)
		require.Zero(t, service.PeriodLockCount())
	})
}

func TestBillingService_ComputeBatch(t *testing.T) {
	ctx := context.Background()
	registry := domain.NewInMemoryChargeRegistry()
	require.NoError(t, registry.RegisterCharge(ctx, standardCharge("c1")))
	require.NoError(t, registry.RegisterCharge(ctx, standardCharge("c2")))

	t.Run("should keep input order and isolate failures", func(t *testing.T) {
		service := newTestService(registry, domain.NewInMemoryFeeRepository(), nil, nil, false)
		reqs := []domain.ComputeRequest{
			computeRequest("c1", 2, 1),
			computeRequest("missing", 2, 1),
			computeRequest("c2", 10, 1),
			computeRequest("c1", -1, 1),
		}

		results, err := service.ComputeBatch(ctx, reqs)

		require.NoError(t, err)
		require.Len(t, results, 4)
		require.Equal(t, int64(100), results[0].Value().Fee.AmountCents)
		require.Equal(t, domain.FailureNotFound, results[1].Failure().Kind())
		require.Equal(t, int64(500), results[2].Value().Fee.AmountCents)
		require.Equal(t, domain.FailureValidation, results[3].Failure().Kind())
	})

	t.Run("should abort the batch on a cancelled context", func(t *testing.T) {
		service := newTestService(registry, domain.NewInMemoryFeeRepository(), nil, nil, false)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		results, err := service.ComputeBatch(cancelled, []domain.ComputeRequest{computeRequest("c1", 1, 1)})

		require.ErrorIs(t, err, context.Canceled)
		require.Nil(t, results)
	})
}

func TestBillingService_GetFee(t *testing.T) {
	ctx := context.Background()
	fees := domain.NewInMemoryFeeRepository()
	require.NoError(t, fees.Save(ctx, &domain.Fee{ID: "f1", ChargeID: "c1", PeriodKey: testPeriod}))
	service := newTestService(domain.NewInMemoryChargeRegistry(), fees, nil, nil, false)

	require.Equal(t, "f1", service.GetFee(ctx, "f1").Value().ID)
	require.Equal(t, domain.NotFoundFailure{Resource: "fee"}, service.GetFee(ctx, "f2").Failure())
	require.Equal(t, domain.FailureValidation, service.GetFee(ctx, "").Failure().Kind())
}
