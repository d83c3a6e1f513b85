// Package client provides the net/http implementation of transport.Transport.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	appctx "stockroom/internal/core/context"
	"stockroom/internal/core/transport"
	"stockroom/pkg/logger"
)

var tracer = otel.Tracer("stockroom/http")

// Compile-time check that Transport implements transport.Transport interface.
var _ transport.Transport = (*Transport)(nil)

// errRequestTimeout is the cancellation cause of a request whose own timeout elapsed.
var errRequestTimeout = errors.New("request timeout elapsed")

// Config configures the HTTP transport.
type Config struct {
	// BaseURL is prepended to every request path. Empty means paths are
	// used as given and must then be absolute URLs.
	BaseURL string

	// Timeout applies to requests that do not set their own. Zero disables it.
	Timeout time.Duration

	// UserAgent is sent with every request when non-empty.
	UserAgent string
}

// DefaultConfig returns a configuration for the given base URL.
// Requests wait indefinitely unless they set their own timeout.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:   baseURL,
		UserAgent: "stockroom-client/1.0",
	}
}

// Transport sends JSON requests over net/http.
// It is safe for concurrent use; connection reuse belongs to the http.Client.
type Transport struct {
	cfg    Config
	client *http.Client
	log    *logger.Logger
}

// New creates a transport with a dedicated http.Client.
func New(cfg Config, log *logger.Logger) *Transport {
	return NewWithClient(cfg, &http.Client{}, log)
}

// NewWithClient creates a transport on top of an existing http.Client.
func NewWithClient(cfg Config, httpClient *http.Client, log *logger.Logger) *Transport {
	if log == nil {
		log = logger.Default()
	}
	return &Transport{
		cfg:    cfg,
		client: httpClient,
		log:    log.WithComponent("http-transport"),
	}
}

// Do implements transport.Transport.
func (t *Transport) Do(ctx context.Context, req transport.Request) (*transport.Response, error) {
	ctx, traceCtx := appctx.EnsureTrace(ctx)
	fullURL := t.resolve(req)

	timeout := req.Timeout
	if timeout == 0 {
		timeout = t.cfg.Timeout
	}
	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeoutCause(ctx, timeout, errRequestTimeout)
		defer cancel()
	}

	callCtx, span := tracer.Start(callCtx, "HTTP "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", fullURL),
		),
	)
	defer span.End()

	start := time.Now()
	resp, err := t.do(callCtx, req, fullURL, traceCtx)
	latency := time.Since(start)

	log := t.log.WithContext(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if tErr, ok := transport.AsError(err); ok && tErr.Kind == transport.KindHTTPStatus {
			span.SetAttributes(attribute.Int("http.response.status_code", tErr.StatusCode))
		}
		log.Debugw("http request failed",
			"method", req.Method,
			"url", fullURL,
			"latency_ms", latency.Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	log.Debugw("http request",
		"method", req.Method,
		"url", fullURL,
		"status", resp.StatusCode,
		"latency_ms", latency.Milliseconds(),
	)
	return resp, nil
}

func (t *Transport) do(ctx context.Context, req transport.Request, fullURL string, traceCtx *appctx.TraceContext) (*transport.Response, error) {
	fail := func(kind transport.Kind, err error) *transport.Error {
		return &transport.Error{Kind: kind, Method: req.Method, URL: fullURL, Err: err}
	}

	parsed, err := url.Parse(fullURL)
	if err != nil {
		return nil, fail(transport.KindOther, fmt.Errorf("parse url: %w", err))
	}
	if parsed.Host == "" {
		return nil, fail(transport.KindOther, fmt.Errorf("relative url %q without base url", fullURL))
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fail(transport.KindOther, fmt.Errorf("encode request body: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fail(transport.KindOther, fmt.Errorf("create request: %w", err))
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Accept-Encoding", acceptEncoding)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if t.cfg.UserAgent != "" {
		httpReq.Header.Set("User-Agent", t.cfg.UserAgent)
	}
	httpReq.Header.Set(appctx.HeaderRequestID, traceCtx.RequestID)
	httpReq.Header.Set(appctx.HeaderTraceID, traceCtx.TraceID)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fail(classify(ctx, err))
	}
	defer httpResp.Body.Close()

	raw, err := readBody(httpResp)
	if err != nil {
		kind, cause := classify(ctx, err)
		if kind == transport.KindOther {
			cause = fmt.Errorf("read response body: %w", err)
		}
		return nil, fail(kind, cause)
	}

	data := decodeBody(raw)
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &transport.Error{
			Kind:       transport.KindHTTPStatus,
			Method:     req.Method,
			URL:        fullURL,
			StatusCode: httpResp.StatusCode,
			Body:       data,
			Header:     httpResp.Header,
		}
	}

	return &transport.Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Data:       data,
	}, nil
}

func (t *Transport) resolve(req transport.Request) string {
	if t.cfg.BaseURL == "" {
		return req.URL()
	}
	return strings.TrimRight(t.cfg.BaseURL, "/") + req.URL()
}

// classify maps a failed exchange onto a transport.Kind.
func classify(ctx context.Context, err error) (transport.Kind, error) {
	if ctx.Err() != nil {
		cause := context.Cause(ctx)
		if errors.Is(cause, errRequestTimeout) {
			return transport.KindTimeout, cause
		}
		return transport.KindCanceled, cause
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return transport.KindTimeout, err
		}
		return transport.KindNetworkUnreachable, err
	}

	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return transport.KindNetworkUnreachable, err
	}
	return transport.KindOther, err
}

// decodeBody parses a JSON body. Empty bodies decode to nil and anything
// that is not JSON is returned as its raw text.
func decodeBody(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	var data any
	if err := json.Unmarshal(trimmed, &data); err != nil {
		return string(raw)
	}
	return data
}
