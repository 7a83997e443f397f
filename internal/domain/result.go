package domain

// Result carries either a value or a Failure, never both.
type Result[T any] struct {
	value   T
	failure Failure
}

// Success wraps a computed value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail wraps a failure. A nil failure is promoted to UnexpectedFailure so that
// a Result can never be neither.
func Fail[T any](failure Failure) Result[T] {
	if failure == nil {
		failure = UnexpectedFailure{}
	}
	return Result[T]{failure: failure}
}

// IsSuccess reports whether the result holds a value.
func (r Result[T]) IsSuccess() bool { return r.failure == nil }

// IsFailure reports whether the result holds a failure.
func (r Result[T]) IsFailure() bool { return r.failure != nil }

// Value returns the payload; it is the zero value on failure.
func (r Result[T]) Value() T { return r.value }

// Failure returns the failure, or nil on success.
func (r Result[T]) Failure() Failure { return r.failure }

// Unwrap returns both halves for explicit propagation at call sites.
func (r Result[T]) Unwrap() (T, Failure) { return r.value, r.failure }

// Then chains a computation that itself may fail. Failures short-circuit unchanged.
func Then[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.failure != nil {
		return Fail[U](r.failure)
	}
	return fn(r.value)
}

// Map transforms a successful value. Failures short-circuit unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.failure != nil {
		return Fail[U](r.failure)
	}
	return Success(fn(r.value))
}
