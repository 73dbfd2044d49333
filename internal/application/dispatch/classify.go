package dispatch

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/storefront/backend/internal/domain/shared"
)

// Messages for errors nobody expected
const (
	MsgUnexpected = "An unexpected error occurred on our end. We are looking into it. In the mean time, try the request again."
	MsgTimeout    = "The operation timed out. Try the request again."
	MsgCancelled  = "The request was cancelled."
	MsgNetwork    = "A network connectivity problem occurred while trying to contact an external service required to handle this request."
)

// Classifier maps an unexpected error to a classified one. ok is false when
// the classifier does not recognise err.
type Classifier func(err error) (classified *shared.Error, ok bool)

// ClassifyCommon recognises classified errors, timeouts, cancellation and
// network faults
func ClassifyCommon(err error) (*shared.Error, bool) {
	var classified *shared.Error
	if errors.As(err, &classified) {
		return classified, true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return shared.NewGenericError(MsgTimeout), true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return shared.NewGenericError(MsgTimeout), true
	}
	if errors.Is(err, context.Canceled) {
		return shared.NewGenericError(MsgCancelled), true
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &opErr),
		errors.As(err, &dnsErr),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EPIPE):
		return shared.NewError(shared.KindUnreachableDependency, MsgNetwork), true
	}

	return nil, false
}

// Unexpected is the catch-all classification
func Unexpected() *shared.Error {
	return shared.NewGenericError(MsgUnexpected)
}

// classify runs the classifiers in order and falls back to Unexpected
func classify(classifiers []Classifier, err error) *shared.Error {
	for _, c := range classifiers {
		if c == nil {
			continue
		}
		if classified, ok := c(err); ok {
			return classified
		}
	}
	return Unexpected()
}
