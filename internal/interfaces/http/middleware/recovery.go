package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// MsgPanic is reported to the caller when a request panicked outside the dispatcher
const MsgPanic = "An unexpected error occurred on our end. We are looking into it. In the mean time, try the request again."

// Recovery is the outermost safety net. Handler panics are already recovered
// by the dispatcher; this catches the ones raised in middleware and binding.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				reqLog := log
				if l, ok := c.Get(logger.GinContextKey); ok {
					if scoped, ok := l.(*zap.Logger); ok {
						reqLog = scoped
					}
				}
				reqLog.Error("Panic recovered",
					zap.String("panic", fmt.Sprint(rec)),
					zap.ByteString("stacktrace", debug.Stack()),
				)
				if c.Writer.Written() {
					c.Abort()
					return
				}
				AbortWithProblem(c, http.StatusInternalServerError, MsgPanic)
			}
		}()
		c.Next()
	}
}
