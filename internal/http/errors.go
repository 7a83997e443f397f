package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/davidbz/chargeflow/internal/domain"
	"github.com/davidbz/chargeflow/internal/observability"
)

const codeValidationErrors = "validation_errors"

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Status       int                 `json:"status"`
	Error        string              `json:"error"`
	Code         string              `json:"code,omitempty"`
	ErrorDetails map[string][]string `json:"error_details,omitempty"`
}

// renderFailure writes the HTTP rendering of failure.
func renderFailure(ctx context.Context, w http.ResponseWriter, failure domain.Failure) {
	writeError(ctx, w, failureResponse(ctx, failure))
}

// failureResponse maps a domain failure to its HTTP status and body. Failures that
// are not handled at the boundary are logged and reported as 500.
func failureResponse(ctx context.Context, failure domain.Failure) ErrorResponse {
	var validation *domain.ValidationFailure
	var notFound domain.NotFoundFailure
	var forbidden domain.ForbiddenFailure
	var notAllowed domain.MethodNotAllowedFailure

	var resp ErrorResponse
	switch {
	case errors.As(failure, &validation):
		resp = ErrorResponse{
			Status:       http.StatusUnprocessableEntity,
			Code:         codeValidationErrors,
			ErrorDetails: validation.Messages,
		}
	case errors.As(failure, &notFound):
		resp = ErrorResponse{Status: http.StatusNotFound, Code: notFound.Code()}
	case errors.As(failure, &forbidden):
		resp = ErrorResponse{Status: http.StatusForbidden, Code: forbidden.Code}
	case errors.As(failure, &notAllowed):
		resp = ErrorResponse{Status: http.StatusMethodNotAllowed, Code: notAllowed.Code}
	default:
		observability.FromContext(ctx).Error("unhandled failure", observability.Error(failure))
		resp = ErrorResponse{Status: http.StatusInternalServerError}
	}

	resp.Error = http.StatusText(resp.Status)
	return resp
}

// renderBadRequest reports a body that could not be decoded.
func renderBadRequest(ctx context.Context, w http.ResponseWriter, code string) {
	writeError(ctx, w, ErrorResponse{Status: http.StatusBadRequest, Code: code})
}

func writeError(ctx context.Context, w http.ResponseWriter, resp ErrorResponse) {
	resp.Error = http.StatusText(resp.Status)
	writeJSON(ctx, w, resp.Status, resp)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Status is already written; just log.
		observability.FromContext(ctx).Error("failed to encode response", observability.Error(err))
	}
}
