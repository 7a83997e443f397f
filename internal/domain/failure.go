package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// FailureKind classifies a failed computation.
type FailureKind string

const (
	FailureNotFound         FailureKind = "not_found"
	FailureValidation       FailureKind = "validation"
	FailureForbidden        FailureKind = "forbidden"
	FailureMethodNotAllowed FailureKind = "method_not_allowed"
	FailureUnexpected       FailureKind = "unexpected"
)

// Validation reason codes.
const (
	ReasonMandatory  = "value_is_mandatory"
	ReasonOutOfRange = "value_is_out_of_range"
	ReasonInvalid    = "value_is_invalid"
)

// Failure is the error half of a Result.
type Failure interface {
	error
	Kind() FailureKind
}

// NotFoundFailure reports a missing resource.
type NotFoundFailure struct {
	Resource string
}

func (f NotFoundFailure) Error() string     { return f.Code() }
func (f NotFoundFailure) Kind() FailureKind { return FailureNotFound }

// Code returns the machine-readable code, e.g. "charge_not_found".
func (f NotFoundFailure) Code() string { return f.Resource + "_not_found" }

// ValidationFailure carries per-field reasons for malformed input or configuration.
type ValidationFailure struct {
	Messages map[string][]string
}

// NewValidationFailure creates a failure with a single field reason.
func NewValidationFailure(field, reason string) *ValidationFailure {
	f := &ValidationFailure{Messages: make(map[string][]string)}
	f.Add(field, reason)
	return f
}

// Add appends a reason for field.
func (f *ValidationFailure) Add(field, reason string) {
	if f.Messages == nil {
		f.Messages = make(map[string][]string)
	}
	f.Messages[field] = append(f.Messages[field], reason)
}

// Merge folds other's messages into f.
func (f *ValidationFailure) Merge(other *ValidationFailure) {
	if other == nil {
		return
	}
	for field, reasons := range other.Messages {
		for _, reason := range reasons {
			f.Add(field, reason)
		}
	}
}

// Empty reports whether no reason was recorded.
func (f *ValidationFailure) Empty() bool {
	return f == nil || len(f.Messages) == 0
}

// OrNil returns f as a Failure, or nil when nothing was recorded.
func (f *ValidationFailure) OrNil() Failure {
	if f.Empty() {
		return nil
	}
	return f
}

func (f *ValidationFailure) Kind() FailureKind { return FailureValidation }

func (f *ValidationFailure) Error() string {
	fields := make([]string, 0, len(f.Messages))
	for field := range f.Messages {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(f.Messages[field], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ForbiddenFailure reports an action the caller is not entitled to.
type ForbiddenFailure struct {
	Code string
}

func (f ForbiddenFailure) Error() string     { return "forbidden: " + f.Code }
func (f ForbiddenFailure) Kind() FailureKind { return FailureForbidden }

// MethodNotAllowedFailure reports an operation that is not allowed on the resource.
type MethodNotAllowedFailure struct {
	Code string
}

func (f MethodNotAllowedFailure) Error() string     { return "method not allowed: " + f.Code }
func (f MethodNotAllowedFailure) Kind() FailureKind { return FailureMethodNotAllowed }

// UnexpectedFailure wraps a non-business error. It is never handled locally.
type UnexpectedFailure struct {
	Err error
}

func (f UnexpectedFailure) Error() string {
	if f.Err == nil {
		return "unexpected failure"
	}
	return "unexpected failure: " + f.Err.Error()
}

func (f UnexpectedFailure) Kind() FailureKind { return FailureUnexpected }
func (f UnexpectedFailure) Unwrap() error     { return f.Err }

// Unexpected wraps err into a Failure, keeping an existing Failure as is.
func Unexpected(err error) Failure {
	var failure Failure
	if errors.As(err, &failure) {
		return failure
	}
	return UnexpectedFailure{Err: err}
}

// IsHandled reports whether f is one of the failure kinds mapped at the boundary.
// Anything else must be re-raised to the caller's fault boundary.
func IsHandled(f Failure) bool {
	if f == nil {
		return false
	}
	switch f.Kind() {
	case FailureNotFound, FailureValidation, FailureForbidden, FailureMethodNotAllowed:
		return true
	default:
		return false
	}
}
