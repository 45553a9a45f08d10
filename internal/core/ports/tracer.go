package ports

import "context"

// Tracer starts spans around sysroot stages.
type Tracer interface {
	// Start creates a span named name as a child of the span in ctx.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span is one traced unit of work.
type Span interface {
	// End completes the span.
	End()

	// RecordError marks the span as failed with err.
	RecordError(err error)

	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}
