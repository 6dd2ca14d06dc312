package middleware

import (
	"errors"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery converts a handler panic into a logged HTTP 500 instead of
// dropping the connection. Panics from writing to a peer that already hung
// up (common when a spectator closes mid-stream) abort without a response.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			fields := []zap.Field{
				zap.Any("error", r),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("trace_id", GetTraceID(c)),
			}
			if isClientGone(r) {
				log.Warn("client gone during handler", fields...)
				c.Abort()
				return
			}
			log.Error("panic recovered", append(fields, zap.Stack("stack"))...)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "internal server error",
			})
		}()
		c.Next()
	}
}

// isClientGone reports whether the panic came from writing to a closed peer.
func isClientGone(r any) bool {
	err, ok := r.(error)
	if !ok {
		return false
	}
	var op *net.OpError
	if !errors.As(err, &op) {
		return false
	}
	var sys *os.SyscallError
	if !errors.As(op.Err, &sys) {
		return false
	}
	msg := strings.ToLower(sys.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
