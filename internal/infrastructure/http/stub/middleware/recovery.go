// Package middleware provides gin middleware for the inventory API stub.
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"stockroom/internal/core/apperror"
	"stockroom/pkg/logger"
)

// Recovery turns a handler panic into a 500 response.
// The stack is logged, never returned.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithContext(c.Request.Context()).Errorw("panic recovered",
					"error", r,
					"stack", string(debug.Stack()),
				)

				appErr := withTraceDetails(c.Request.Context(), apperror.NewInternal(fmt.Errorf("panic: %v", r)))
				_ = c.Error(appErr)
				// ErrorHandler is unwound by the panic, so respond here.
				c.AbortWithStatusJSON(appErr.HTTPStatus, gin.H{
					"code":    appErr.Code,
					"message": appErr.Message,
					"details": appErr.Details,
				})
			}
		}()
		c.Next()
	}
}
