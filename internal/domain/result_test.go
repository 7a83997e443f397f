package domain_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/chargeflow/internal/domain"
)

func TestResult(t *testing.T) {
	t.Run("should hold a value and no failure on success", func(t *testing.T) {
		result := domain.Success(42)

		require.True(t, result.IsSuccess())
		require.False(t, result.IsFailure())
		require.Equal(t, 42, result.Value())
		require.NoError(t, result.Failure())
	})

	t.Run("should hold a failure and the zero value on failure", func(t *testing.T) {
		result := domain.Fail[int](domain.NotFoundFailure{Resource: "charge"})

		value, failure := result.Unwrap()
		require.True(t, result.IsFailure())
		require.Zero(t, value)
		require.Equal(t, domain.FailureNotFound, failure.Kind())
	})

	t.Run("should promote a nil failure to unexpected", func(t *testing.T) {
		result := domain.Fail[int](nil)

		require.True(t, result.IsFailure())
		require.Equal(t, domain.FailureUnexpected, result.Failure().Kind())
	})
}

func TestResult_Combinators(t *testing.T) {
	toString := func(v int) string { return strconv.Itoa(v) }
	half := func(v int) domain.Result[int] {
		if v%2 != 0 {
			return domain.Fail[int](domain.NewValidationFailure("value", domain.ReasonInvalid))
		}
		return domain.Success(v / 2)
	}

	t.Run("should transform success with map", func(t *testing.T) {
		require.Equal(t, "7", domain.Map(domain.Success(7), toString).Value())
	})

	t.Run("should keep failure through map", func(t *testing.T) {
		failed := domain.Map(domain.Fail[int](domain.ForbiddenFailure{Code: "feature_unavailable"}), toString)

		require.Equal(t, domain.FailureForbidden, failed.Failure().Kind())
	})

	t.Run("should chain fallible steps with then", func(t *testing.T) {
		require.Equal(t, 2, domain.Then(domain.Success(4), half).Value())
	})

	t.Run("should short-circuit then on the first failure", func(t *testing.T) {
		calls := 0
		counting := func(v int) domain.Result[int] {
			calls++
			return half(v)
		}

		result := domain.Then(domain.Then(domain.Success(3), half), counting)

		require.True(t, result.IsFailure())
		require.Equal(t, 0, calls)
	})
}

func TestFailures(t *testing.T) {
	t.Run("should build the not found code from the resource name", func(t *testing.T) {
		failure := domain.NotFoundFailure{Resource: "charge"}

		require.Equal(t, "charge_not_found", failure.Code())
		require.Equal(t, "charge_not_found", failure.Error())
	})

	t.Run("should collect validation reasons per field", func(t *testing.T) {
		failure := domain.NewValidationFailure("rate", domain.ReasonOutOfRange)
		failure.Add("rate", domain.ReasonInvalid)
		failure.Merge(domain.NewValidationFailure("fixed_amount", domain.ReasonOutOfRange))

		require.Equal(t, []string{domain.ReasonOutOfRange, domain.ReasonInvalid}, failure.Messages["rate"])
		require.Equal(t, []string{domain.ReasonOutOfRange}, failure.Messages["fixed_amount"])
		require.Equal(t,
			"validation failed: fixed_amount: value_is_out_of_range; rate: value_is_out_of_range, value_is_invalid",
			failure.Error())
	})

	t.Run("should treat an empty validation failure as nil", func(t *testing.T) {
		require.NoError(t, (&domain.ValidationFailure{}).OrNil())
	})

	t.Run("should wrap errors and keep failures as unexpected", func(t *testing.T) {
		cause := errors.New("boom")
		wrapped := domain.Unexpected(cause)

		require.Equal(t, domain.FailureUnexpected, wrapped.Kind())
		require.ErrorIs(t, wrapped, cause)

		forbidden := domain.ForbiddenFailure{Code: "feature_unavailable"}
		require.Equal(t, forbidden, domain.Unexpected(forbidden))
	})

	t.Run("should handle only boundary kinds", func(t *testing.T) {
		require.True(t, domain.IsHandled(domain.NotFoundFailure{Resource: "fee"}))
		require.True(t, domain.IsHandled(domain.NewValidationFailure("id", domain.ReasonMandatory)))
		require.True(t, domain.IsHandled(domain.ForbiddenFailure{Code: "x"}))
		require.True(t, domain.IsHandled(domain.MethodNotAllowedFailure{Code: "x"}))
		require.False(t, domain.IsHandled(domain.UnexpectedFailure{Err: errors.New("boom")}))
		require.False(t, domain.IsHandled(nil))
	})
}
