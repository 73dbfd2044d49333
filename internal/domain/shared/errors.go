package shared

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failure. The transport layer chooses the response
// status from it and the dispatcher chooses the log severity.
type ErrorKind int

const (
	// KindGeneric is the catch-all for failures nobody classified more precisely
	KindGeneric ErrorKind = iota
	// KindValidation means the request itself is malformed
	KindValidation
	// KindNotFound means a referenced resource does not exist
	KindNotFound
	// KindConflict means the request collides with existing state
	KindConflict
	// KindUnauthorized means the caller's credentials or role are insufficient
	KindUnauthorized
	// KindUnreachableDependency means a remote collaborator could not be reached
	KindUnreachableDependency
)

// String returns the human readable kind name
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "Validation"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	case KindUnauthorized:
		return "Unauthorized"
	case KindUnreachableDependency:
		return "UnreachableDependency"
	default:
		return "Generic"
	}
}

// Code returns the stable machine readable code exposed to API clients
func (k ErrorKind) Code() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindUnreachableDependency:
		return "BAD_GATEWAY"
	default:
		return "INTERNAL_ERROR"
	}
}

// Error is an immutable, classified failure.
// Two errors are equal when their kind and message are equal.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	// Field is only set on validation errors
	Field string `json:"field,omitempty"`
	Cause *Error `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is / errors.As
func (e *Error) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

// Is reports structural equality (kind + message)
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Equal(other)
}

// Equal reports whether both errors share kind and message
func (e *Error) Equal(other *Error) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Kind == other.Kind && e.Message == other.Message
}

// WithCause returns a copy of e carrying cause
func (e *Error) WithCause(cause *Error) *Error {
	cp := *e
	cp.Cause = cause
	return &cp
}

// NewError creates an error of the given kind
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewValidationError creates a validation error bound to a request field
func NewValidationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(message string) *Error {
	return NewError(KindNotFound, message)
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *Error {
	return NewError(KindConflict, message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *Error {
	return NewError(KindUnauthorized, message)
}

// NewUnreachableError creates an unreachable-dependency error naming the dependency
func NewUnreachableError(dependency string) *Error {
	return NewError(KindUnreachableDependency, fmt.Sprintf("%s is unreachable.", dependency))
}

// NewGenericError creates a generic error
func NewGenericError(message string) *Error {
	return NewError(KindGeneric, message)
}

// AsError converts any error into a *Error, keeping classified errors intact.
// Unclassified errors become generic errors carrying the original text.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewGenericError(err.Error())
}

// Messages flattens errors into their display strings
func Messages(errs []*Error) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}

// joinedError lets a list of *Error travel as a single error value
type joinedError []*Error

func (j joinedError) Error() string {
	return strings.Join(Messages(j), "; ")
}

func (j joinedError) Unwrap() []error {
	out := make([]error, len(j))
	for i, e := range j {
		out[i] = e
	}
	return out
}
