package inference

// Outcome is the result of a remote call: either a value or the reason it failed.
// Callers substitute their fallback explicitly with ValueOr.
type Outcome[T any] struct {
	value T
	err   error
}

// Success wraps a value returned by the remote service.
func Success[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

// Failure wraps the reason a remote call produced no usable value.
func Failure[T any](err error) Outcome[T] {
	return Outcome[T]{err: err}
}

// Ok reports whether the call succeeded.
func (o Outcome[T]) Ok() bool { return o.err == nil }

// Err returns the failure reason, or nil on success.
func (o Outcome[T]) Err() error { return o.err }

// Value returns the value and whether it is valid.
func (o Outcome[T]) Value() (T, bool) { return o.value, o.err == nil }

// ValueOr returns the value on success and fallback otherwise.
func (o Outcome[T]) ValueOr(fallback T) T {
	if o.err != nil {
		return fallback
	}
	return o.value
}
