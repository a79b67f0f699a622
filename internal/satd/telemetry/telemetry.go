// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

// Package telemetry wraps the OpenTelemetry tracer and meter the
// pipeline's stages instrument themselves with, following the
// teacher's eval/telemetry package: a config struct, a sink that
// lazily resolves global providers, and per-stage span/metric
// helpers so stage code never imports the otel SDK directly.
package telemetry

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ErrNilSink describes use of a nil *Sink. No Sink method returns it:
// the Record methods are no-ops on a nil receiver.
var ErrNilSink = errors.New("telemetry: nil sink")

// Config configures the Sink.
type Config struct {
	ServiceName    string
	ServiceVersion string
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// DefaultConfig returns a Config naming this module's service.
func DefaultConfig() Config {
	return Config{ServiceName: "satdripple", ServiceVersion: "0.1.0"}
}

// Sink records spans and metrics for one pipeline run.
type Sink struct {
	tracer trace.Tracer
	meter  metric.Meter

	stageDuration   metric.Float64Histogram
	debtItemsTotal  metric.Int64Counter
	edgesTotal      metric.Int64Counter
	chainsTotal     metric.Int64Counter
	suppressedTotal metric.Int64Counter

	once sync.Once
}

var (
	globalSink *Sink
	globalOnce sync.Once
)

// Global returns a process-wide Sink built from DefaultConfig, lazily
// initialized exactly once.
func Global() *Sink {
	globalOnce.Do(func() {
		s, err := New(DefaultConfig())
		if err != nil {
			// otel meter/histogram registration only fails on
			// malformed instrument names, which DefaultConfig never
			// produces; a no-op sink keeps callers from branching
			// on telemetry initialization at every call site.
			s = &Sink{tracer: otel.Tracer("satdripple/noop"), meter: otel.Meter("satdripple/noop")}
		}
		globalSink = s
	})
	return globalSink
}

// New builds a Sink from cfg, resolving global tracer/meter providers
// when cfg leaves them nil.
func New(cfg Config) (*Sink, error) {
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	mp := cfg.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	scope := "github.com/satdripple/satdripple/internal/satd/telemetry"
	s := &Sink{
		tracer: tp.Tracer(scope, trace.WithInstrumentationVersion(cfg.ServiceVersion)),
		meter:  mp.Meter(scope, metric.WithInstrumentationVersion(cfg.ServiceVersion)),
	}
	if err := s.initMetrics(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sink) initMetrics() error {
	var err error
	s.stageDuration, err = s.meter.Float64Histogram("pipeline.stage.duration",
		metric.WithDescription("Stage wall-clock duration in seconds"), metric.WithUnit("s"))
	if err != nil {
		return err
	}
	s.debtItemsTotal, err = s.meter.Int64Counter("pipeline.debt_items.total",
		metric.WithDescription("DebtItems admitted by the detection pipeline"))
	if err != nil {
		return err
	}
	s.edgesTotal, err = s.meter.Int64Counter("pipeline.edges.total",
		metric.WithDescription("WeightedEdges emitted across all analyzers"))
	if err != nil {
		return err
	}
	s.chainsTotal, err = s.meter.Int64Counter("pipeline.chains.total",
		metric.WithDescription("Chains discovered by ChainFinder"))
	if err != nil {
		return err
	}
	s.suppressedTotal, err = s.meter.Int64Counter("pipeline.errors.suppressed",
		metric.WithDescription("Non-fatal errors absorbed into degraded output"), metric.WithUnit("{error}"))
	return err
}

// StartStage opens a span named "stage.<name>" and returns the
// context carrying it plus a function the caller defers to end the
// span and record its duration.
func (s *Sink) StartStage(ctx context.Context, name string) (context.Context, func(err error)) {
	ctx, span := s.tracer.Start(ctx, "stage."+name, trace.WithAttributes(attribute.String("stage.name", name)))
	return ctx, func(err error) {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}
}

// RecordDebtItems records how many DebtItems a run's detection stage admitted.
func (s *Sink) RecordDebtItems(ctx context.Context, n int) {
	if s == nil {
		return
	}
	s.debtItemsTotal.Add(ctx, int64(n))
}

// RecordEdges records how many edges an analyzer pass emitted, tagged
// by analyzer name.
func (s *Sink) RecordEdges(ctx context.Context, analyzer string, n int) {
	if s == nil {
		return
	}
	s.edgesTotal.Add(ctx, int64(n), metric.WithAttributes(attribute.String("analyzer", analyzer)))
}

// RecordChains records how many chains a run's ChainFinder stage found.
func (s *Sink) RecordChains(ctx context.Context, n int) {
	if s == nil {
		return
	}
	s.chainsTotal.Add(ctx, int64(n))
}

// RecordSuppressed records one absorbed, non-fatal error of the given kind.
func (s *Sink) RecordSuppressed(ctx context.Context, kind string) {
	if s == nil {
		return
	}
	s.suppressedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
