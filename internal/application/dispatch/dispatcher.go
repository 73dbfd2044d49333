// Package dispatch routes requests to their handlers through the validation
// stage and converts unexpected failures into classified outcomes.
package dispatch

import (
	"context"
	"fmt"
	"reflect"
	"runtime/debug"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Handler is the business logic bound to one request type. Business failures
// are returned in the Outcome; a non-nil error is an unexpected fault and is
// classified by the dispatcher.
type Handler[R, T any] func(ctx context.Context, req R) (shared.Outcome[T], error)

type route[R, T any] struct {
	handle Handler[R, T]
	rules  []Rules[R]
}

// Dispatcher is the registry of request handlers. Handlers are registered at
// start-up; Register must not be called concurrently with Dispatch.
type Dispatcher struct {
	routes      map[reflect.Type]any
	classifiers []Classifier
	logger      *zap.Logger
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithClassifier adds a classifier consulted before the built-in ones
func WithClassifier(c Classifier) Option {
	return func(d *Dispatcher) {
		d.classifiers = append(d.classifiers, c)
	}
}

// New creates an empty dispatcher
func New(log *zap.Logger, opts ...Option) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		routes: make(map[reflect.Type]any),
		logger: log.Named("dispatch"),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.classifiers = append(d.classifiers, ClassifyCommon)
	return d
}

// Register binds handler and its rule sets to request type R
func Register[R, T any](d *Dispatcher, handler Handler[R, T], rules ...Rules[R]) error {
	key := reflect.TypeFor[R]()
	if handler == nil {
		return fmt.Errorf("dispatch: nil handler for %s", key)
	}
	if _, exists := d.routes[key]; exists {
		return fmt.Errorf("dispatch: handler already registered for %s", key)
	}
	d.routes[key] = route[R, T]{handle: handler, rules: rules}
	return nil
}

// MustRegister is Register that panics on a configuration error
func MustRegister[R, T any](d *Dispatcher, handler Handler[R, T], rules ...Rules[R]) {
	if err := Register(d, handler, rules...); err != nil {
		panic(err)
	}
}

// Registered reports whether a handler exists for request type R
func Registered[R any](d *Dispatcher) bool {
	_, ok := d.routes[reflect.TypeFor[R]()]
	return ok
}

// Dispatch validates req and runs the handler registered for its type.
// It never panics and never returns a raw error: every failure is a Failed
// outcome.
func Dispatch[R, T any](ctx context.Context, d *Dispatcher, req R) shared.Outcome[T] {
	key := reflect.TypeFor[R]()
	name := key.String()

	entry, ok := d.routes[key]
	if !ok {
		d.logger.Error("No handler registered", zap.String("request", name))
		return shared.Fail[T](shared.NewGenericError(fmt.Sprintf("No handler is registered for %s.", name)))
	}
	r, ok := entry.(route[R, T])
	if !ok {
		d.logger.Error("Handler result type mismatch",
			zap.String("request", name),
			zap.String("expected", reflect.TypeFor[T]().String()),
		)
		return shared.Fail[T](shared.NewGenericError(fmt.Sprintf("The handler for %s does not produce %s.", name, reflect.TypeFor[T]())))
	}

	ctx, span := telemetry.StartSpan(ctx, "dispatch "+name, telemetry.WithAttribute("request.type", name))
	defer span.End()
	log := logger.WithLogger(ctx, d.logger).With(zap.String("request", name))

	var (
		out      shared.Outcome[T]
		rejected bool
	)
	telemetry.WithProfilingLabels(ctx, map[string]string{telemetry.ProfilingLabelOperation: name}, func(ctx context.Context) {
		out, rejected = invoke(ctx, d, log, r, req)
	})
	if rejected {
		log.Debug("Request rejected by validation", zap.Strings("errors", shared.Messages(out.Errors())))
		telemetry.SetAttribute(span, "outcome", "invalid")
		return out
	}
	if out.IsFailed() {
		telemetry.SetAttribute(span, "outcome", "failed")
		if out.HasKind(shared.KindGeneric) {
			telemetry.RecordError(span, out.Err())
			log.Error("Request failed", zap.Strings("errors", shared.Messages(out.Errors())))
			return out
		}
		log.Warn("Request failed", zap.Strings("errors", shared.Messages(out.Errors())))
		return out
	}

	telemetry.SetOK(span)
	return out
}

// invoke is the single recovery boundary for rule sets and handlers.
// rejected reports that validation failed and the handler never ran.
func invoke[R, T any](ctx context.Context, d *Dispatcher, log *logger.ContextLogger, r route[R, T], req R) (out shared.Outcome[T], rejected bool) {
	defer func() {
		if rec := recover(); rec != nil {
			err := panicError(rec)
			log.Error("Request processing panicked",
				zap.Error(err),
				zap.ByteString("stacktrace", debug.Stack()),
			)
			out, rejected = shared.Fail[T](classify(d.classifiers, err)), false
		}
	}()

	if errs := Validate(req, r.rules...); len(errs) > 0 {
		return shared.Fail[T](errs...), true
	}

	result, err := r.handle(ctx, req)
	if err != nil {
		classified := classify(d.classifiers, err)
		log.Error("Handler returned an unexpected error",
			zap.Error(err),
			zap.String("kind", classified.Kind.String()),
		)
		return shared.Fail[T](classified), false
	}
	return result, false
}

func panicError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", rec)
}
