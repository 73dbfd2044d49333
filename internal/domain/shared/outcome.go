package shared

// Unit is the success value of operations that produce nothing
type Unit struct{}

// Outcome is either a success carrying a value or a failure carrying one or
// more classified errors. An Ok outcome never carries errors.
type Outcome[T any] struct {
	value T
	errs  []*Error
}

// Ok wraps a successful value
func Ok[T any](value T) Outcome[T] {
	return Outcome[T]{value: value}
}

// Fail builds a failed outcome. Nil errors are dropped and duplicates removed;
// a call without any error yields a single generic error so that a failure
// always explains itself.
func Fail[T any](errs ...*Error) Outcome[T] {
	merged := mergeErrors(nil, errs)
	if len(merged) == 0 {
		merged = []*Error{NewGenericError("The operation failed for an unknown reason.")}
	}
	return Outcome[T]{errs: merged}
}

// OkUnit is shorthand for Ok(Unit{})
func OkUnit() Outcome[Unit] {
	return Ok(Unit{})
}

// IsOk reports whether the outcome is a success
func (o Outcome[T]) IsOk() bool {
	return len(o.errs) == 0
}

// IsFailed reports whether the outcome is a failure
func (o Outcome[T]) IsFailed() bool {
	return len(o.errs) > 0
}

// Value returns the success value, or the zero value for a failure
func (o Outcome[T]) Value() T {
	return o.value
}

// Errors returns a copy of the carried errors
func (o Outcome[T]) Errors() []*Error {
	if len(o.errs) == 0 {
		return nil
	}
	out := make([]*Error, len(o.errs))
	copy(out, o.errs)
	return out
}

// ErrorsOfKind filters the carried errors by kind
func (o Outcome[T]) ErrorsOfKind(kind ErrorKind) []*Error {
	var out []*Error
	for _, e := range o.errs {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// HasKind reports whether any carried error has the given kind
func (o Outcome[T]) HasKind(kind ErrorKind) bool {
	for _, e := range o.errs {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Err returns the failure as a single error value, nil on success.
// It is meant for logging; callers branch on IsOk.
func (o Outcome[T]) Err() error {
	switch len(o.errs) {
	case 0:
		return nil
	case 1:
		return o.errs[0]
	default:
		return joinedError(o.Errors())
	}
}

// Map applies f to a successful value. A failure passes through and f is
// never called.
func Map[T, U any](o Outcome[T], f func(T) U) Outcome[U] {
	if o.IsFailed() {
		return Outcome[U]{errs: o.errs}
	}
	return Ok(f(o.value))
}

// Bind chains an operation that can itself fail
func Bind[T, U any](o Outcome[T], f func(T) Outcome[U]) Outcome[U] {
	if o.IsFailed() {
		return Outcome[U]{errs: o.errs}
	}
	return f(o.value)
}

// Recast re-types a failed outcome. Calling it on a success is a programming
// error and yields a generic failure.
func Recast[U, T any](o Outcome[T]) Outcome[U] {
	if o.IsOk() {
		return Fail[U](NewGenericError("Attempted to recast a successful outcome."))
	}
	return Outcome[U]{errs: o.errs}
}

// Combine merges the errors of several outcomes, keeping first-seen order and
// dropping duplicates by kind and message. The result is Ok when none failed.
func Combine[T any](outcomes ...Outcome[T]) Outcome[Unit] {
	var errs []*Error
	for _, o := range outcomes {
		errs = mergeErrors(errs, o.errs)
	}
	if len(errs) == 0 {
		return OkUnit()
	}
	return Outcome[Unit]{errs: errs}
}

// Collect turns a list of outcomes into an outcome of a list. All errors are
// gathered when at least one outcome failed.
func Collect[T any](outcomes []Outcome[T]) Outcome[[]T] {
	if combined := Combine(outcomes...); combined.IsFailed() {
		return Outcome[[]T]{errs: combined.errs}
	}
	values := make([]T, 0, len(outcomes))
	for _, o := range outcomes {
		values = append(values, o.value)
	}
	return Ok(values)
}

// DedupeErrors removes nil and duplicate (kind, message) errors, keeping order
func DedupeErrors(errs []*Error) []*Error {
	return mergeErrors(nil, errs)
}

func mergeErrors(dst, src []*Error) []*Error {
	for _, e := range src {
		if e == nil || containsError(dst, e) {
			continue
		}
		dst = append(dst, e)
	}
	return dst
}

func containsError(list []*Error, e *Error) bool {
	for _, existing := range list {
		if existing.Equal(e) {
			return true
		}
	}
	return false
}
