// Package handler adapts gin requests to dispatcher requests and dispatcher
// outcomes to HTTP responses.
package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/application/dispatch"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// Builder constructs a typed request from the incoming HTTP request.
// Returned errors are reported as validation failures.
type Builder[R any] func(c *gin.Context) (R, []*shared.Error)

// NoParams builds a request that carries nothing
func NoParams[R any]() Builder[R] {
	return func(*gin.Context) (R, []*shared.Error) {
		var req R
		return req, nil
	}
}

// FromID builds a request from the numeric path parameter param
func FromID[R any](param string, build func(id int64) R) Builder[R] {
	return func(c *gin.Context) (R, []*shared.Error) {
		id, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil {
			var zero R
			return zero, []*shared.Error{shared.NewValidationError(param, param+" must be an integer")}
		}
		return build(id), nil
	}
}

// FromBody decodes the JSON body into D and maps it onto the request
func FromBody[D, R any](mapTo func(D) R) Builder[R] {
	return func(c *gin.Context) (R, []*shared.Error) {
		var body D
		if err := c.ShouldBindJSON(&body); err != nil {
			var zero R
			return zero, []*shared.Error{bodyError(err)}
		}
		return mapTo(body), nil
	}
}

// Same is the shape function of responses returned as they are
func Same[T any](v T) T {
	return v
}

// Empty is the shape function of commands without a response body
func Empty(shared.Unit) any {
	return nil
}

// Handle builds the request, dispatches it and writes the outcome: 200 with
// the shaped value on success, a problem payload otherwise
func Handle[R, T, Resp any](d *dispatch.Dispatcher, build Builder[R], shape func(T) Resp) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, errs := build(c)
		if len(errs) > 0 {
			writeFailure(c, errs)
			return
		}

		out := dispatch.Dispatch[R, T](c.Request.Context(), d, req)
		if out.IsFailed() {
			writeFailure(c, out.Errors())
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(shape(out.Value())))
	}
}

func writeFailure(c *gin.Context, errs []*shared.Error) {
	problem := dto.NewProblem(errs, c.Request.URL.Path, middleware.GetRequestID(c))
	_ = c.Error(shared.Fail[shared.Unit](errs...).Err())
	c.AbortWithStatusJSON(problem.Status, problem)
}

func bodyError(err error) *shared.Error {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return shared.NewValidationError("body", "A request body is required.")
	case errors.As(err, &maxBytes):
		return shared.NewValidationError("body", "The request body is too large.")
	default:
		return shared.NewValidationError("body", "The request body is not valid JSON.")
	}
}
