// Package service runs the velocity pipeline: parse, then derive the warp
// factor and impulse readings.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/okian/warp/internal/domain/propulsion"
	"github.com/okian/warp/internal/domain/velocity"
	"github.com/okian/warp/pkg/logger"
	"github.com/okian/warp/pkg/metrics"
)

const nanosecondsPerMillisecond = 1e6

// Error kinds used as metric labels.
const (
	kindInvalidUnit     = "invalid_unit"
	kindParse           = "parse"
	kindExceedsLimit    = "velocity_exceeds_limit"
	kindMissingVelocity = "missing_velocity"
	kindUnknown         = "unknown"
)

// Result is the outcome of one evaluation.
type Result struct {
	RunID   string
	Input   *velocity.Input
	Warp    propulsion.Reading
	Impulse propulsion.Reading
}

// Service evaluates velocities. It holds no per-evaluation state.
type Service struct {
	logger  logger.Logger
	metrics *metrics.Manager
	now     func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager. Defaults to the global manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		logger:  nil, // resolved from the global logger on first use
		metrics: metrics.Default(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Evaluate parses raw and derives both readings.
func (s *Service) Evaluate(ctx context.Context, raw string) (Result, error) {
	if s.logger == nil {
		s.logger = logger.Get()
	}

	runID := uuid.NewString()
	log := s.logger.With(logger.String("run_id", runID))
	start := s.now()
	defer func() {
		s.metrics.RecordEvaluationLatency(float64(s.now().Sub(start).Nanoseconds()) / nanosecondsPerMillisecond)
	}()

	in, err := velocity.Parse(raw)
	if err != nil {
		s.fail(ctx, log, raw, err)
		return Result{RunID: runID}, err
	}
	s.metrics.RecordConversion(in.Unit.Token)

	res, err := s.derive(in)
	if err != nil {
		s.fail(ctx, log, raw, err)
		return Result{RunID: runID}, err
	}
	res.RunID = runID

	log.Debug(ctx, "velocity evaluated",
		logger.String("input", raw),
		logger.String("unit", in.Unit.Token),
		logger.Float64("speed_mps", in.Speed),
		logger.String("speed", humanize.SI(in.Speed, "m/s")),
		logger.Bool("warp", res.Warp.OK),
		logger.Float64("warp_factor", res.Warp.Value),
		logger.Float64("impulse_percent", res.Impulse.Value),
	)
	return res, nil
}

// Derive computes both readings for an already parsed velocity.
func (s *Service) Derive(in *velocity.Input) (Result, error) {
	res, err := s.derive(in)
	if err != nil {
		s.metrics.RecordError(errorKind(err))
	}
	return res, err
}

func (s *Service) derive(in *velocity.Input) (Result, error) {
	w, err := propulsion.WarpFactor(in)
	if err != nil {
		return Result{}, err
	}
	i, err := propulsion.ImpulsePercent(in)
	if err != nil {
		return Result{}, err
	}

	if w.OK {
		s.metrics.RecordWarpFactor(w.Value)
	}
	if i.OK {
		s.metrics.RecordImpulsePercent(i.Value)
	}
	return Result{Input: in, Warp: w, Impulse: i}, nil
}

func (s *Service) fail(ctx context.Context, log logger.Logger, raw string, err error) {
	kind := errorKind(err)
	s.metrics.RecordError(kind)
	log.Info(ctx, "velocity rejected",
		logger.String("input", raw),
		logger.String("kind", kind),
		logger.Error(err),
	)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, velocity.ErrInvalidUnit):
		return kindInvalidUnit
	case errors.Is(err, velocity.ErrParse):
		return kindParse
	case errors.Is(err, velocity.ErrVelocityExceedsLimit):
		return kindExceedsLimit
	case errors.Is(err, propulsion.ErrMissingVelocity):
		return kindMissingVelocity
	default:
		return kindUnknown
	}
}
