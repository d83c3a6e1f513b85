package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"stockroom/internal/core/apperror"
	appctx "stockroom/internal/core/context"
	"stockroom/pkg/logger"
)

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewFromZap(zap.New(core))

	r := gin.New()
	r.Use(Recovery(log), Trace(), Logger(log), ErrorHandler(log))
	r.GET("/panic", func(c *gin.Context) {
		panic("shelf collapsed")
	})
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("disk full"))
	})
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(apperror.NewNotFound("Product", "p-1"))
	})
	r.GET("/ok", func(c *gin.Context) {
		logger.Debug(c.Request.Context(), "handler reached")
		c.Status(http.StatusNoContent)
	})
	return r, logs
}

func serve(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, errorBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(appctx.HeaderRequestID, "req-42")
	req.Header.Set(appctx.HeaderTraceID, "trace-7")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body errorBody
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestRecovery_ReportsRequestAndTraceIDs(t *testing.T) {
	r, logs := newTestRouter(t)

	w, body := serve(t, r, "/panic")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperror.CodeInternal, body.Code)
	assert.Equal(t, "req-42", body.Details["request_id"])
	assert.Equal(t, "trace-7", body.Details["trace_id"])
	assert.NotContains(t, w.Body.String(), "shelf collapsed")

	panics := logs.FilterMessage("panic recovered").All()
	require.Len(t, panics, 1)
	assert.Equal(t, "req-42", panics[0].ContextMap()["request_id"])
}

func TestErrorHandler_UnknownErrorBecomesInternal(t *testing.T) {
	r, _ := newTestRouter(t)

	w, body := serve(t, r, "/fail")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperror.CodeInternal, body.Code)
	assert.Equal(t, "Internal server error", body.Message)
	assert.Equal(t, "req-42", body.Details["request_id"])
	assert.Equal(t, "trace-7", body.Details["trace_id"])
	assert.Equal(t, "req-42", w.Header().Get(appctx.HeaderRequestID))
}

func TestErrorHandler_AppErrorKeepsStatus(t *testing.T) {
	r, _ := newTestRouter(t)

	w, body := serve(t, r, "/missing")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, body.Code)
	assert.Equal(t, "p-1", body.Details["id"])
	assert.NotContains(t, body.Details, "request_id")
}

func TestLogger_PutsLoggerOnRequestContext(t *testing.T) {
	r, logs := newTestRouter(t)

	w, _ := serve(t, r, "/ok")
	assert.Equal(t, http.StatusNoContent, w.Code)

	reached := logs.FilterMessage("handler reached").All()
	require.Len(t, reached, 1)
	assert.Equal(t, "trace-7", reached[0].ContextMap()["trace_id"])

	requests := logs.FilterMessage("http request").All()
	require.Len(t, requests, 1)
	fields := requests[0].ContextMap()
	assert.Equal(t, int64(http.StatusNoContent), fields["status"])
	assert.Equal(t, "req-42", fields["request_id"])
}
