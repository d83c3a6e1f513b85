package reports

import (
	"time"

	"stockroom/internal/core/clock"
	"stockroom/internal/core/transport"
	"stockroom/pkg/logger"
)

const (
	pathSalesReport    = "/api/reports/sales"
	pathActivityReport = "/api/reports/activity"
)

// Config holds the sales report deadlines.
type Config struct {
	// CancelAfter aborts the in-flight call from the client side.
	CancelAfter time.Duration

	// TransportTimeout is handed to the transport as a fallback deadline.
	TransportTimeout time.Duration
}

// DefaultConfig returns the production deadlines.
func DefaultConfig() Config {
	return Config{
		CancelAfter:      10 * time.Second,
		TransportTimeout: 15 * time.Second,
	}
}

// Service provides the normalized report operations.
// It holds no mutable state; concurrent calls are independent.
type Service struct {
	transport transport.Transport
	log       *logger.Logger
	clock     clock.Clock
	cfg       Config
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the system clock.
func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithConfig replaces the default deadlines.
func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

// NewService creates a new reports service.
func NewService(t transport.Transport, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.Default()
	}
	s := &Service{
		transport: t,
		log:       log.WithComponent("reports"),
		clock:     clock.Real(),
		cfg:       DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
