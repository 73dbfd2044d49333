package dispatch

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/storefront/backend/internal/domain/shared"
)

// Rules is a set of pure checks over one request type. Rules never perform
// I/O and never depend on mutable state.
type Rules[R any] interface {
	Validate(req R) []*shared.Error
}

// RuleFunc adapts a function to Rules
type RuleFunc[R any] func(req R) []*shared.Error

// Validate implements Rules
func (f RuleFunc[R]) Validate(req R) []*shared.Error {
	return f(req)
}

// Validate runs every rule set against req and returns all violations,
// deduplicated, in the order they were found. No rules means no violations.
func Validate[R any](req R, rules ...Rules[R]) []*shared.Error {
	var errs []*shared.Error
	for _, r := range rules {
		if r == nil {
			continue
		}
		errs = append(errs, r.Validate(req)...)
	}
	return shared.DedupeErrors(errs)
}

// Violation builds a validation error for field
func Violation(field, format string, args ...any) *shared.Error {
	return shared.NewValidationError(field, fmt.Sprintf(format, args...))
}

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

// engine returns the shared validator, reporting fields by their json names
func engine() *validator.Validate {
	structValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		structValidator = v
	})
	return structValidator
}

// StructRules validates a request through its `validate` struct tags
type StructRules[R any] struct{}

// Validate implements Rules
func (StructRules[R]) Validate(req R) []*shared.Error {
	err := engine().Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// only reachable when R is not a struct
		return []*shared.Error{shared.NewValidationError("", "The request could not be validated.")}
	}

	out := make([]*shared.Error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, shared.NewValidationError(fe.Field(), fieldMessage(fe)))
	}
	return out
}

// fieldMessage returns a human readable message naming the field
func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid e-mail address"
	case "min":
		if fe.Kind() == reflect.String {
			return field + " must be at least " + fe.Param() + " characters"
		}
		return field + " must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return field + " must be at most " + fe.Param() + " characters"
		}
		return field + " must be at most " + fe.Param()
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "gte":
		return field + " must be greater than or equal to " + fe.Param()
	case "lte":
		return field + " must be less than or equal to " + fe.Param()
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "lt":
		return field + " must be less than " + fe.Param()
	default:
		return field + " is invalid"
	}
}
