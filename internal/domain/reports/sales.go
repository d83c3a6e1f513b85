package reports

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/clock"
	"stockroom/internal/core/transport"
	"stockroom/internal/core/types"
	"stockroom/pkg/logger"
)

// errCancelTimerFired is the cancellation cause set by the sales report timer.
var errCancelTimerFired = errors.New("sales report request timed out")

// GetSalesReport fetches GET /api/reports/sales for the given period and
// normalizes the response.
//
// startDate and endDate accept anything types.ParseDate does. Both are
// required and are sent as YYYY-MM-DD. The call is cancelled after
// Config.CancelAfter; the transport also gets Config.TransportTimeout.
// Failures are returned as *apperror.AppError.
func (s *Service) GetSalesReport(ctx context.Context, startDate, endDate any) (*SalesReport, error) {
	log := s.log.WithContext(ctx)

	if types.IsBlankDate(startDate) || types.IsBlankDate(endDate) {
		appErr := apperror.NewInvalidInput("Both startDate and endDate are required")
		log.Errorw("Error in GetSalesReport",
			"code", appErr.Code,
			"message", appErr.Message,
			"startDate", startDate,
			"endDate", endDate,
		)
		return nil, appErr
	}

	from, err := s.formatBound(log, startDate)
	if err != nil {
		return nil, err
	}
	to, err := s.formatBound(log, endDate)
	if err != nil {
		return nil, err
	}

	req := transport.Request{
		Method:  http.MethodGet,
		Path:    pathSalesReport,
		Query:   url.Values{"startDate": {from}, "endDate": {to}},
		Timeout: s.cfg.TransportTimeout,
	}
	log.Infow("Fetching sales report", "startDate", from, "endDate", to)

	resp, timerFired, err := s.doWithCancelTimer(ctx, req)
	if err != nil {
		appErr := classifyFailure(ctx, err, timerFired)
		s.logFailure(log, appErr, req)
		return nil, appErr
	}

	if resp == nil || types.IsBlank(resp.Data) {
		appErr := apperror.NewEmptyResponse()
		s.logFailure(log, appErr, req)
		return nil, appErr
	}

	report := normalizeSalesReport(resp.Data)
	log.Debugw("Sales report response",
		"totalSales", report.TotalSales,
		"totalRevenue", report.TotalRevenue,
		"productSales", len(report.ProductSales),
		"dailySales", len(report.DailySales),
	)
	return report, nil
}

type callResult struct {
	resp *transport.Response
	err  error
}

// doWithCancelTimer races the transport call against the cancel timer.
// It returns once the call finishes or the call context is done, whichever
// comes first, so a transport that ignores ctx cannot hold it past the
// deadline. The timer is stopped and the call context released on return.
func (s *Service) doWithCancelTimer(ctx context.Context, req transport.Request) (*transport.Response, bool, error) {
	callCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	timer := s.clock.AfterFunc(s.cfg.CancelAfter, func() {
		cancel(errCancelTimerFired)
	})
	defer timer.Stop()

	done := make(chan callResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- callResult{err: fmt.Errorf("transport panic: %v", r)}
			}
		}()
		resp, err := s.transport.Do(callCtx, req)
		done <- callResult{resp: resp, err: err}
	}()

	select {
	case r := <-done:
		return finishCall(callCtx, timer, r)
	case <-callCtx.Done():
		// A result that is already in wins over the cancellation.
		select {
		case r := <-done:
			return finishCall(callCtx, timer, r)
		default:
		}
		cause := context.Cause(callCtx)
		return nil, errors.Is(cause, errCancelTimerFired), cause
	}
}

// finishCall stops the timer and reports whether a completed call failed
// because of it. The timer counts only for a cancellation error; a status or
// network error that came back before it fired keeps its own classification.
func finishCall(callCtx context.Context, timer clock.Timer, r callResult) (*transport.Response, bool, error) {
	timer.Stop()
	if r.err == nil || !errors.Is(context.Cause(callCtx), errCancelTimerFired) {
		return r.resp, false, r.err
	}
	tErr, ok := transport.AsError(r.err)
	return r.resp, !ok || tErr.Kind == transport.KindCanceled, r.err
}

// formatBound converts one period bound to YYYY-MM-DD.
func (s *Service) formatBound(log *logger.Logger, v any) (string, error) {
	t, err := types.ParseDate(v)
	if err != nil {
		log.Errorw("Error formatting date", "date", v, "error", err)
		return "", apperror.NewInvalidInput("Invalid date format. Please use valid date objects").
			WithDetail("date", fmt.Sprint(v)).
			WithCause(err)
	}
	return types.FormatDate(t), nil
}

// classifyFailure maps a failed call onto the error taxonomy, in priority
// order: cancelled, server error, no response, request setup.
func classifyFailure(ctx context.Context, err error, timerFired bool) *apperror.AppError {
	tErr, fromTransport := transport.AsError(err)

	var appErr *apperror.AppError
	switch {
	case timerFired:
		appErr = apperror.NewCancelled("timeout")
	case fromTransport:
		switch tErr.Kind {
		case transport.KindCanceled:
			appErr = apperror.NewCancelled("cancelled")
		case transport.KindHTTPStatus:
			appErr = apperror.NewServerError(tErr.StatusCode, tErr.Message(), tErr.Body, tErr.Header)
		case transport.KindTimeout, transport.KindNetworkUnreachable:
			appErr = apperror.NewNoResponse().WithDetail("request", tErr.Method+" "+tErr.URL)
		case transport.KindOther:
			appErr = apperror.NewRequestSetup(causeMessage(tErr))
		default:
			appErr = apperror.NewRequestSetup(err.Error())
		}
	case ctx.Err() != nil:
		appErr = apperror.NewCancelled("cancelled")
	default:
		appErr = apperror.NewRequestSetup(err.Error())
	}

	appErr.FromTransport = fromTransport
	return appErr.WithCause(err)
}

func causeMessage(tErr *transport.Error) string {
	if tErr.Err != nil {
		return tErr.Err.Error()
	}
	return ""
}

func (s *Service) logFailure(log *logger.Logger, appErr *apperror.AppError, req transport.Request) {
	log.Errorw("Failed to fetch sales report",
		"code", appErr.Code,
		"message", appErr.Message,
		"details", appErr.Details,
		"from_transport", appErr.FromTransport,
		"url", req.Path,
		"params", req.Query,
		"method", req.Method,
		"timeout", req.Timeout,
		"cause", appErr.Err,
	)
}

// normalizeSalesReport fills in defaults and merges the server fields over them.
func normalizeSalesReport(data any) *SalesReport {
	obj, _ := data.(map[string]any)

	report := &SalesReport{
		TotalSales:   types.NumberOr(obj["totalSales"], 0),
		TotalRevenue: types.NumberOr(obj["totalRevenue"], 0),
		ProductSales: arrayOrEmpty(obj["productSales"]),
		DailySales:   arrayOrEmpty(obj["dailySales"]),
	}
	report.Success, _ = obj["success"].(bool)
	report.Message, _ = obj["message"].(string)

	report.Fields = map[string]any{
		"totalSales":   report.TotalSales,
		"totalRevenue": report.TotalRevenue,
		"productSales": report.ProductSales,
		"dailySales":   report.DailySales,
	}
	for k, v := range obj {
		report.Fields[k] = v
	}
	return report
}

func arrayOrEmpty(v any) []any {
	if arr, ok := v.([]any); ok && arr != nil {
		return arr
	}
	return []any{}
}
