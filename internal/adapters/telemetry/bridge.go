package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.husk.sh/husk/internal/core/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// LoggerBridge implements sdktrace.SpanProcessor to mirror span lifecycle
// into the logger. Lines land at debug level, so they only appear when the
// caller asked for them.
type LoggerBridge struct {
	logger ports.Logger
}

// NewLoggerBridge returns a new LoggerBridge.
func NewLoggerBridge(logger ports.Logger) *LoggerBridge {
	return &LoggerBridge{
		logger: logger,
	}
}

var _ sdktrace.SpanProcessor = (*LoggerBridge)(nil)

// OnStart is called when a span starts.
func (b *LoggerBridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.logger == nil {
		return
	}
	if !s.SpanContext().IsValid() {
		return
	}

	b.logger.Debug("started " + s.Name())
}

// OnEnd is called when a span ends.
func (b *LoggerBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil {
		return
	}
	if !s.SpanContext().IsValid() {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)

	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "failed"
		}
		b.logger.Debug(fmt.Sprintf("failed %s after %s: %s", s.Name(), elapsed, desc))
		return
	}

	b.logger.Debug(fmt.Sprintf("finished %s in %s", s.Name(), elapsed))
}

// ForceFlush does nothing.
func (b *LoggerBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LoggerBridge) Shutdown(_ context.Context) error {
	return nil
}

// Setup registers a global tracer provider that reports span lifecycle
// through the bridge. Spans created by OTelTracer afterwards flow through it.
func Setup(logger ports.Logger) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewLoggerBridge(logger)),
	)
	otel.SetTracerProvider(tp)
}
