package shared

import (
	"context"
)

// Repository is the storage port for an aggregate.
//
// Business failures, such as a missing id, are reported through the Outcome.
// The error return is reserved for unexpected infrastructure faults; it is
// classified once, by the dispatcher.
type Repository[T any] interface {
	// GetByID returns the aggregate or a NotFound failure
	GetByID(ctx context.Context, id int64) (Outcome[T], error)
	// GetAll returns every stored aggregate
	GetAll(ctx context.Context) (Outcome[[]T], error)
	// Add stores a new aggregate and returns it as stored, with its new id
	Add(ctx context.Context, entity T) (Outcome[T], error)
	// Update overwrites an existing aggregate and returns it as stored
	Update(ctx context.Context, entity T) (Outcome[T], error)
	// Remove deletes the aggregate or returns a NotFound failure
	Remove(ctx context.Context, id int64) (Outcome[Unit], error)
}
