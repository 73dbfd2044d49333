package dto

import (
	"net/http"

	"github.com/storefront/backend/internal/domain/shared"
)

// ProblemDetail is the detail carried by every problem payload
const ProblemDetail = "One or more errors occurred."

// Problem is the failure payload, shaped after RFC 9457 problem details
type Problem struct {
	Type      string   `json:"type"`
	Title     string   `json:"title"`
	Status    int      `json:"status"`
	Detail    string   `json:"detail"`
	Instance  string   `json:"instance"`
	Errors    []string `json:"errors"`
	RequestID string   `json:"requestId,omitempty"`
}

// statusPriority lists the kinds that choose the response status, highest first
var statusPriority = []struct {
	kind   shared.ErrorKind
	status int
}{
	{shared.KindValidation, http.StatusBadRequest},
	{shared.KindUnauthorized, http.StatusForbidden},
	{shared.KindNotFound, http.StatusNotFound},
	{shared.KindConflict, http.StatusConflict},
	{shared.KindUnreachableDependency, http.StatusBadGateway},
}

// StatusFor picks the response status of a failure: the first kind in
// priority order that is present wins, anything else is a 500
func StatusFor(errs []*shared.Error) int {
	for _, p := range statusPriority {
		for _, e := range errs {
			if e != nil && e.Kind == p.kind {
				return p.status
			}
		}
	}
	return http.StatusInternalServerError
}

// TitleFor returns the problem title of a status
func TitleFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Validation Error"
	case http.StatusUnauthorized:
		return "Authentication Required"
	case http.StatusForbidden:
		return "You dont have permission to access this resource."
	case http.StatusNotFound:
		return "Resource Not Found."
	case http.StatusConflict:
		return "A resource with the same content already exists."
	case http.StatusRequestEntityTooLarge:
		return "Request Too Large"
	case http.StatusBadGateway:
		return "Bad Gateway"
	default:
		return "Internal Server Error"
	}
}

// TypeFor returns the problem type URI of a status
func TypeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "https://www.rfc-editor.org/rfc/rfc9110#section-15.5.1"
	case http.StatusUnauthorized:
		return "https://www.rfc-editor.org/rfc/rfc9110#section-15.5.2"
	case http.StatusForbidden:
		return "https://www.rfc-editor.org/rfc/rfc9110#section-15.5.4"
	case http.StatusNotFound:
		return "https://www.rfc-editor.org/rfc/rfc9110#section-15.5.5"
	case http.StatusConflict:
		return "https://www.rfc-editor.org/rfc/rfc9110#section-15.5.10"
	case http.StatusRequestEntityTooLarge:
		return "https://www.rfc-editor.org/rfc/rfc9110#section-15.5.14"
	case http.StatusBadGateway:
		return "https://www.rfc-editor.org/rfc/rfc9110#section-15.6.3"
	default:
		return "https://www.rfc-editor.org/rfc/rfc9110#section-15.6.1"
	}
}

// NewProblem builds the payload of a failed outcome
func NewProblem(errs []*shared.Error, instance, requestID string) Problem {
	return NewStatusProblem(StatusFor(errs), shared.Messages(errs), instance, requestID)
}

// NewStatusProblem builds a payload for a status chosen outside the outcome
// mapping, such as an authentication failure in middleware
func NewStatusProblem(status int, messages []string, instance, requestID string) Problem {
	if messages == nil {
		messages = []string{}
	}
	return Problem{
		Type:      TypeFor(status),
		Title:     TitleFor(status),
		Status:    status,
		Detail:    ProblemDetail,
		Instance:  instance,
		Errors:    messages,
		RequestID: requestID,
	}
}
