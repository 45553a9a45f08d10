package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/kiln/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor and reports finished stages
// through the logger.
type Bridge struct {
	logger      ports.Logger
	minDuration time.Duration
}

// NewBridge returns a Bridge reporting spans that took at least minDuration.
func NewBridge(logger ports.Logger, minDuration time.Duration) *Bridge {
	return &Bridge{
		logger:      logger,
		minDuration: minDuration,
	}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || s.Status().Code == codes.Error {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime())
	if elapsed < b.minDuration {
		return
	}

	b.logger.Status("Finished", fmt.Sprintf("%s in %.2fs", s.Name(), elapsed.Seconds()))
}

// Shutdown is called when the SDK shuts down.
func (b *Bridge) Shutdown(context.Context) error {
	return nil
}

// ForceFlush exports all ended spans that have not yet been exported.
func (b *Bridge) ForceFlush(context.Context) error {
	return nil
}

// Setup installs a global tracer provider whose spans are reported by a
// Bridge. The returned function shuts the provider down.
func Setup(logger ports.Logger, minDuration time.Duration) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewBridge(logger, minDuration)),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
