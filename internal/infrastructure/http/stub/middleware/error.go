package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockroom/internal/core/apperror"
	appctx "stockroom/internal/core/context"
	"stockroom/pkg/logger"
)

// ErrorHandler renders the last error recorded on the gin context as JSON.
// Unknown errors become a generic 500.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := apperror.AsAppError(err)
		if !ok {
			appErr = withTraceDetails(c.Request.Context(), apperror.NewInternal(err))
		}
		if appErr.Err != nil {
			log.WithContext(c.Request.Context()).Errorw("request error",
				"code", appErr.Code,
				"cause", appErr.Err,
			)
		}

		c.JSON(statusFor(appErr), gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
			"details": appErr.Details,
		})
	}
}

// withTraceDetails attaches the request and trace IDs so a client can
// correlate a 500 with the stub's logs.
func withTraceDetails(ctx context.Context, appErr *apperror.AppError) *apperror.AppError {
	return appErr.
		WithDetail("request_id", appctx.GetRequestID(ctx)).
		WithDetail("trace_id", appctx.GetTraceID(ctx))
}

func statusFor(appErr *apperror.AppError) int {
	if appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	if appErr.Code == apperror.CodeInvalidInput {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
