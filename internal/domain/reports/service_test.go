package reports

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"stockroom/internal/core/clock"
	"stockroom/internal/core/transport"
	"stockroom/pkg/logger"
)

var testNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	svc   *Service
	mock  *transport.MockTransport
	clock *clock.Fake
	logs  *observer.ObservedLogs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	fake := clock.NewFake(testNow)
	mock := &transport.MockTransport{}

	return &testEnv{
		svc:   NewService(mock, logger.NewFromZap(zap.New(core)), WithClock(fake)),
		mock:  mock,
		clock: fake,
		logs:  logs,
	}
}

func (e *testEnv) errorLogs(msg string) []observer.LoggedEntry {
	return e.logs.FilterMessage(msg).FilterLevelExact(zapcore.ErrorLevel).All()
}
