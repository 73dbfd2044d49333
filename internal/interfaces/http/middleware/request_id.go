// Package middleware provides the gin middleware of the storefront API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// Request id keys
const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
	// MaxRequestIDLength caps client supplied ids
	MaxRequestIDLength = 128
)

// RequestID reuses the caller's X-Request-ID when it is usable and generates
// a uuid otherwise. The id is echoed in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > MaxRequestIDLength {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID returns the id set by RequestID
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// AbortWithProblem stops the chain with a problem payload
func AbortWithProblem(c *gin.Context, status int, messages ...string) {
	c.AbortWithStatusJSON(status, dto.NewStatusProblem(status, messages, c.Request.URL.Path, GetRequestID(c)))
}

// NoRoute answers unknown paths with a problem payload
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		AbortWithProblem(c, http.StatusNotFound, "No endpoint matches "+c.Request.Method+" "+c.Request.URL.Path+".")
	}
}
