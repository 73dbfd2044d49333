// Package dto holds the JSON envelopes shared by every endpoint.
package dto

// Response is the success envelope
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// NewSuccessResponse wraps data in the success envelope
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}
