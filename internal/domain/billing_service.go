package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/davidbz/chargeflow/internal/observability"
)

const (
	defaultWorkers = 4

	outcomeSuccess = "success"

	EventFeeComputed  = "fee.computed"
	EventTrueUpIssued = "fee.true_up_issued"
)

// ComputeRequest asks for the fee of one charge over one billing period.
type ComputeRequest struct {
	ChargeID    string            `json:"charge_id"`
	PeriodKey   string            `json:"period_key"`
	Aggregation AggregationResult `json:"aggregation"`
}

// BilledCharge is the outcome of ComputeFee.
type BilledCharge struct {
	Computed ComputedFee `json:"computed"`
	Fee      *Fee        `json:"fee"`
	TrueUp   *Fee        `json:"true_up,omitempty"`
}

// BillingOptions tunes the billing service.
type BillingOptions struct {
	Rounding        RoundingPolicy
	Workers         int
	DefaultCurrency string
}

// BillingService turns period usage into persisted fees.
type BillingService struct {
	selector   ModelSelector
	charges    ChargeRegistry
	fees       FeeRepository
	reconciler *TrueUpReconciler
	publisher  EventPublisher
	metrics    MetricsRecorder
	license    License
	rounding   RoundingPolicy
	workers    int
	currency   string
	locks      *periodLocks
}

// NewBillingService creates a new billing service (DI constructor).
func NewBillingService(
	selector ModelSelector,
	charges ChargeRegistry,
	fees FeeRepository,
	publisher EventPublisher,
	metrics MetricsRecorder,
	license License,
	opts BillingOptions,
) *BillingService {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	return &BillingService{
		selector:   selector,
		charges:    charges,
		fees:       fees,
		reconciler: NewTrueUpReconciler(),
		publisher:  publisher,
		metrics:    metrics,
		license:    license,
		rounding:   NewRoundingPolicy(opts.Rounding.Mode),
		workers:    workers,
		currency:   opts.DefaultCurrency,
		locks:      newPeriodLocks(),
	}
}

// RegisterCharge validates and stores a charge configuration. A charge without a
// currency gets the configured default.
func (s *BillingService) RegisterCharge(ctx context.Context, charge Charge) Result[Charge] {
	if charge.Currency == "" {
		charge.Currency = s.currency
	}

	if failure := charge.Validate(); failure != nil {
		return Fail[Charge](failure)
	}

	if selected := s.selector.Select(charge.Properties.Kind); selected.IsFailure() {
		return Fail[Charge](selected.Failure())
	}

	// Minimum commitments are a premium feature.
	if charge.MinimumCommitment > 0 && (s.license == nil || !s.license.IsPremium()) {
		return Fail[Charge](ForbiddenFailure{Code: "feature_unavailable"})
	}

	if err := s.charges.RegisterCharge(ctx, charge); err != nil {
		return Fail[Charge](Unexpected(fmt.Errorf("failed to register charge: %w", err)))
	}

	observability.FromContext(ctx).Info("charge registered",
		observability.String("charge_id", charge.ID),
		observability.String("charge_model", string(charge.Properties.Kind)))

	return Success(charge)
}

// ComputeFee computes, rounds and stores the fee of a charge period, then tops it up
// to the charge minimum when needed.
func (s *BillingService) ComputeFee(ctx context.Context, req ComputeRequest) Result[*BilledCharge] {
	missing := &ValidationFailure{}
	if req.ChargeID == "" {
		missing.Add("charge_id", ReasonMandatory)
	}
	if req.PeriodKey == "" {
		missing.Add("period_key", ReasonMandatory)
	}
	if !missing.Empty() {
		return Fail[*BilledCharge](missing)
	}

	ctx = observability.WithChargeID(ctx, req.ChargeID)

	charge, err := s.charges.GetCharge(ctx, req.ChargeID)
	if err != nil {
		if errors.Is(err, ErrChargeNotFound) {
			return Fail[*BilledCharge](NotFoundFailure{Resource: "charge"})
		}
		return Fail[*BilledCharge](Unexpected(fmt.Errorf("failed to load charge: %w", err)))
	}

	kind := charge.Properties.Kind
	ctx = observability.WithChargeModel(ctx, string(kind))
	logger := observability.FromContext(ctx)

	started := time.Now()
	computed := Then(s.selector.Select(kind), func(model ChargeModel) Result[ComputedFee] {
		return model.Apply(charge.Properties, req.Aggregation)
	})
	s.observe(kind, computed.Failure(), time.Since(started))

	if computed.IsFailure() {
		logger.Warn("fee computation failed", observability.Error(computed.Failure()))
		return Fail[*BilledCharge](computed.Failure())
	}

	unlock := s.lockPeriod(req.ChargeID, req.PeriodKey)
	defer unlock()

	feeResult := s.buildFee(charge, req.PeriodKey, FeeTypeCharge, computed.Value(), "")
	if feeResult.IsFailure() {
		return Fail[*BilledCharge](feeResult.Failure())
	}
	fee := feeResult.Value()

	if err := s.fees.Save(ctx, fee); err != nil {
		return Fail[*BilledCharge](Unexpected(fmt.Errorf("failed to save fee: %w", err)))
	}

	logger.Info("fee computed",
		observability.String("fee_id", fee.ID),
		observability.Float64("amount", fee.PreciseAmount),
		observability.Int64("amount_cents", fee.AmountCents),
		observability.Int("units_billed", fee.UnitsBilled))

	s.publish(ctx, EventFeeComputed, fee)

	billed := &BilledCharge{Computed: computed.Value(), Fee: fee}

	if charge.MinimumCommitment > 0 {
		trueUp := s.trueUp(ctx, charge, req.PeriodKey)
		if trueUp.IsFailure() {
			return Fail[*BilledCharge](trueUp.Failure())
		}
		billed.TrueUp = trueUp.Value()
	}

	return Success(billed)
}

// ComputeBatch computes every request on a bounded worker pool. Results keep the
// input order; only cancellation of ctx aborts the batch.
func (s *BillingService) ComputeBatch(ctx context.Context, reqs []ComputeRequest) ([]Result[*BilledCharge], error) {
	results := make([]Result[*BilledCharge], len(reqs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)

	for i, req := range reqs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = s.ComputeFee(groupCtx, req)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("batch computation aborted: %w", err)
	}

	observability.FromContext(ctx).Info("batch computed",
		observability.Int("requests", len(reqs)),
		observability.Int("workers", s.workers))

	return results, nil
}

// GetFee returns a stored fee.
func (s *BillingService) GetFee(ctx context.Context, feeID string) Result[*Fee] {
	if feeID == "" {
		return Fail[*Fee](NewValidationFailure("id", ReasonMandatory))
	}

	fee, err := s.fees.Get(ctx, feeID)
	if err != nil {
		if errors.Is(err, ErrFeeNotFound) {
			return Fail[*Fee](NotFoundFailure{Resource: "fee"})
		}
		return Fail[*Fee](Unexpected(fmt.Errorf("failed to load fee: %w", err)))
	}

	return Success(fee)
}

// trueUp reconciles every fee of the charge period against the charge minimum.
// Callers must hold the period lock.
func (s *BillingService) trueUp(ctx context.Context, charge Charge, periodKey string) Result[*Fee] {
	stored, err := s.fees.ListByPeriod(ctx, charge.ID, periodKey)
	if err != nil {
		return Fail[*Fee](Unexpected(fmt.Errorf("failed to list period fees: %w", err)))
	}

	periodFees := make([]PeriodFee, 0, len(stored))
	for _, fee := range stored {
		periodFees = append(periodFees, PeriodFee{
			ID:       fee.ID,
			Amount:   fee.PreciseAmount,
			IsTrueUp: fee.IsTrueUp(),
		})
	}

	reconciled := s.reconciler.Reconcile(periodFees, charge.MinimumCommitment)
	if reconciled.IsFailure() {
		return Fail[*Fee](reconciled.Failure())
	}
	if reconciled.Value() == nil {
		return Success[*Fee](nil)
	}

	trueUp := reconciled.Value()
	feeResult := s.buildFee(charge, periodKey, FeeTypeTrueUp, trueUp.Fee, trueUp.ParentFeeID)
	if feeResult.IsFailure() {
		return feeResult
	}
	fee := feeResult.Value()

	if err := s.fees.Save(ctx, fee); err != nil {
		return Fail[*Fee](Unexpected(fmt.Errorf("failed to save true-up fee: %w", err)))
	}

	if s.metrics != nil {
		s.metrics.IncTrueUp(charge.Properties.Kind)
	}

	observability.FromContext(ctx).Info("true-up fee issued",
		observability.String("fee_id", fee.ID),
		observability.String("parent_fee_id", fee.TrueUpParentFeeID),
		observability.Int64("amount_cents", fee.AmountCents))

	s.publish(ctx, EventTrueUpIssued, fee)

	return Success(fee)
}

func (s *BillingService) buildFee(
	charge Charge,
	periodKey string,
	feeType FeeType,
	computed ComputedFee,
	parentID string,
) Result[*Fee] {
	return Map(s.rounding.ToMinorUnits(computed.Amount, charge.Currency), func(cents int64) *Fee {
		return &Fee{
			ID:                uuid.New().String(),
			ChargeID:          charge.ID,
			PeriodKey:         periodKey,
			FeeType:           feeType,
			Currency:          charge.Currency,
			PreciseAmount:     computed.Amount,
			AmountCents:       cents,
			Units:             computed.Units,
			UnitsBilled:       computed.UnitsBilled,
			FreeUnitsConsumed: computed.FreeUnitsConsumed,
			EventsCount:       computed.EventsCount,
			TrueUpParentFeeID: parentID,
			CreatedAt:         time.Now().UTC(),
		}
	})
}

func (s *BillingService) lockPeriod(chargeID, periodKey string) func() {
	return s.locks.lock(periodIndexKey(chargeID, periodKey))
}

func (s *BillingService) observe(kind ChargeModelKind, failure Failure, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	outcome := outcomeSuccess
	if failure != nil {
		outcome = string(failure.Kind())
	}
	s.metrics.ObserveComputation(kind, outcome, elapsed)
}

func (s *BillingService) publish(ctx context.Context, eventType string, fee *Fee) {
	if s.publisher == nil {
		return
	}
	data := map[string]interface{}{
		"fee_id":       fee.ID,
		"charge_id":    fee.ChargeID,
		"period_key":   fee.PeriodKey,
		"fee_type":     string(fee.FeeType),
		"currency":     fee.Currency,
		"amount_cents": fee.AmountCents,
	}
	if fee.TrueUpParentFeeID != "" {
		data["true_up_parent_fee_id"] = fee.TrueUpParentFeeID
	}
	s.publisher.Publish(ctx, eventType, data)
}
