package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/davidbz/chargeflow/internal/domain"
	"github.com/davidbz/chargeflow/internal/observability"
)

const (
	maxBodyBytes     = 1 << 20
	maxBatchRequests = 1000

	codeInvalidBody      = "invalid_request_body"
	codeMethodNotAllowed = "method_not_allowed"
)

// BatchRequest is the body of POST /v1/fees/batch.
type BatchRequest struct {
	Requests []domain.ComputeRequest `json:"requests"`
}

// BatchItem is one entry of a batch response: either a billed charge or an error.
type BatchItem struct {
	Status int                  `json:"status"`
	Result *domain.BilledCharge `json:"result,omitempty"`
	Error  *ErrorResponse       `json:"error,omitempty"`
}

// BatchResponse keeps the order of the submitted requests.
type BatchResponse struct {
	Results []BatchItem `json:"results"`
}

// Handler handles HTTP requests.
type Handler struct {
	billing *domain.BillingService
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(billing *domain.BillingService) *Handler {
	return &Handler{
		billing: billing,
	}
}

// HandleRegisterCharge stores a charge configuration.
func (h *Handler) HandleRegisterCharge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !allowMethod(ctx, w, r, http.MethodPost) {
		return
	}

	var charge domain.Charge
	if !decodeBody(ctx, w, r, &charge) {
		return
	}

	ctx = observability.WithChargeID(ctx, charge.ID)
	ctx = observability.WithChargeModel(ctx, string(charge.Properties.Kind))

	result := h.billing.RegisterCharge(ctx, charge)
	if result.IsFailure() {
		renderFailure(ctx, w, result.Failure())
		return
	}

	writeJSON(ctx, w, http.StatusCreated, result.Value())
}

// HandleComputeFee computes and stores the fee of one charge period.
func (h *Handler) HandleComputeFee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !allowMethod(ctx, w, r, http.MethodPost) {
		return
	}

	var req domain.ComputeRequest
	if !decodeBody(ctx, w, r, &req) {
		return
	}

	ctx = observability.WithChargeID(ctx, req.ChargeID)
	logger := observability.FromContext(ctx)
	logger.Info("fee computation requested",
		observability.String("period_key", req.PeriodKey),
		observability.Float64("total_usage", req.Aggregation.TotalUsage),
		observability.Int("event_count", req.Aggregation.EventCount))

	result := h.billing.ComputeFee(ctx, req)
	if result.IsFailure() {
		renderFailure(ctx, w, result.Failure())
		return
	}

	writeJSON(ctx, w, http.StatusCreated, result.Value())
}

// HandleComputeBatch computes many charge periods in one call. Each item carries
// its own status; the call itself fails only on malformed input or cancellation.
func (h *Handler) HandleComputeBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !allowMethod(ctx, w, r, http.MethodPost) {
		return
	}

	var batch BatchRequest
	if !decodeBody(ctx, w, r, &batch) {
		return
	}

	if len(batch.Requests) == 0 {
		renderFailure(ctx, w, domain.NewValidationFailure("requests", domain.ReasonMandatory))
		return
	}
	if len(batch.Requests) > maxBatchRequests {
		renderFailure(ctx, w, domain.NewValidationFailure("requests", domain.ReasonOutOfRange))
		return
	}

	results, err := h.billing.ComputeBatch(ctx, batch.Requests)
	if err != nil {
		renderFailure(ctx, w, domain.Unexpected(fmt.Errorf("batch failed: %w", err)))
		return
	}

	resp := BatchResponse{Results: make([]BatchItem, 0, len(results))}
	for _, result := range results {
		if result.IsFailure() {
			errResp := failureResponse(ctx, result.Failure())
			resp.Results = append(resp.Results, BatchItem{Status: errResp.Status, Error: &errResp})
			continue
		}
		resp.Results = append(resp.Results, BatchItem{Status: http.StatusCreated, Result: result.Value()})
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}

// HandleGetFee returns a stored fee.
func (h *Handler) HandleGetFee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !allowMethod(ctx, w, r, http.MethodGet) {
		return
	}

	result := h.billing.GetFee(ctx, r.PathValue("id"))
	if result.IsFailure() {
		renderFailure(ctx, w, result.Failure())
		return
	}

	writeJSON(ctx, w, http.StatusOK, result.Value())
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func allowMethod(ctx context.Context, w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	renderFailure(ctx, w, domain.MethodNotAllowedFailure{Code: codeMethodNotAllowed})
	return false
}

func decodeBody(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		observability.FromContext(ctx).Warn("invalid request body", observability.Error(err))
		renderBadRequest(ctx, w, codeInvalidBody)
		return false
	}
	return true
}
