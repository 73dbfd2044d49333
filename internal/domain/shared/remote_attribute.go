package shared

import (
	"context"
	"errors"
	"sync"
)

// AttributeState is the lifecycle state of a RemoteAttribute
type AttributeState int

const (
	// AttributeNotStarted means nobody has read the attribute yet, or the
	// last fetch was cancelled by its caller
	AttributeNotStarted AttributeState = iota
	// AttributePending means a fetch is in flight
	AttributePending
	// AttributeReady means the value is memoized
	AttributeReady
	// AttributeFailed means the fetch failed and the failure is memoized
	AttributeFailed
)

// String returns the state name
func (s AttributeState) String() string {
	switch s {
	case AttributePending:
		return "Pending"
	case AttributeReady:
		return "Ready"
	case AttributeFailed:
		return "Failed"
	default:
		return "NotStarted"
	}
}

// FetchFunc resolves a remote attribute
type FetchFunc[T any] func(ctx context.Context) (T, error)

// RemoteAttribute is a lazily fetched, memoized value owned by another
// service. It is bound to its fetch function at construction and evaluated
// at most once per instance: concurrent readers share one in-flight fetch.
// A fetch cancelled by its caller leaves the attribute NotStarted so a later
// read can try again; any other fetch error is memoized as an
// UnreachableDependency failure.
type RemoteAttribute[T any] struct {
	key        string
	dependency string
	fetch      FetchFunc[T]

	mu    sync.Mutex
	state AttributeState
	value T
	err   *Error
	done  chan struct{}
}

// NewRemoteAttribute binds a fetch function to an attribute key.
// dependency names the remote owner and is used in failure messages.
func NewRemoteAttribute[T any](key, dependency string, fetch FetchFunc[T]) *RemoteAttribute[T] {
	return &RemoteAttribute[T]{
		key:        key,
		dependency: dependency,
		fetch:      fetch,
	}
}

// ResolvedAttribute returns an attribute that is already Ready with value
func ResolvedAttribute[T any](key string, value T) *RemoteAttribute[T] {
	return &RemoteAttribute[T]{key: key, state: AttributeReady, value: value}
}

// Key returns the attribute key
func (a *RemoteAttribute[T]) Key() string {
	return a.key
}

// State returns the current lifecycle state
func (a *RemoteAttribute[T]) State() AttributeState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Get returns the attribute value, fetching it on first use
func (a *RemoteAttribute[T]) Get(ctx context.Context) Outcome[T] {
	for {
		a.mu.Lock()
		switch a.state {
		case AttributeReady:
			v := a.value
			a.mu.Unlock()
			return Ok(v)
		case AttributeFailed:
			err := a.err
			a.mu.Unlock()
			return Fail[T](err)
		case AttributePending:
			done := a.done
			a.mu.Unlock()
			select {
			case <-done:
				// re-evaluate: the fetch may have been cancelled
				continue
			case <-ctx.Done():
				return Fail[T](cancelledError(a.dependency))
			}
		default:
			a.state = AttributePending
			a.done = make(chan struct{})
			a.mu.Unlock()
			return a.run(ctx)
		}
	}
}

func (a *RemoteAttribute[T]) run(ctx context.Context) Outcome[T] {
	value, err := a.safeFetch(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	defer close(a.done)

	if err != nil {
		if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			a.state = AttributeNotStarted
			return Fail[T](cancelledError(a.dependency))
		}
		a.state = AttributeFailed
		a.err = NewUnreachableError(a.dependency).WithCause(AsError(err))
		return Fail[T](a.err)
	}

	a.state = AttributeReady
	a.value = value
	return Ok(value)
}

// safeFetch turns a panicking fetch into an error so done is always closed
func (a *RemoteAttribute[T]) safeFetch(ctx context.Context) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewGenericError("remote attribute fetch panicked")
		}
	}()
	if a.fetch == nil {
		return value, NewGenericError("remote attribute has no fetch function")
	}
	return a.fetch(ctx)
}

func cancelledError(dependency string) *Error {
	return NewGenericError("The request was cancelled while waiting for " + dependency + ".")
}
