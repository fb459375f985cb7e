package ports

import "context"

//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks

// Tracer is the entry point for recording units of work.
type Tracer interface {
	// Start begins a new span with the given name.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span represents one unit of work.
type Span interface {
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
	// End completes the span.
	End()
}
