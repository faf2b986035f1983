package ports

import (
	"context"
	"io"
)

// Span attribute keys the render bridge reads back off completed spans.
const (
	// AttrVersion carries the pinned version of a successful fetch.
	AttrVersion = "pindown.version"

	// AttrCandidates carries how many releases satisfied the constraint.
	AttrCandidates = "pindown.candidates"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)

	// EmitPlan signals the set of packages about to resolve, in
	// manifest order.
	EmitPlan(ctx context.Context, packages []string)
}

// Span represents one unit of work, usually a single package fetch.
// Writes become progress notes on whatever is rendering the span.
type Span interface {
	io.Writer

	// End completes the span.
	End()

	// RecordError records an error for the span.
	RecordError(err error)

	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// SpanConfig holds configuration for a starting span.
type SpanConfig struct {
	// Placeholder so the option pattern has somewhere to grow.
}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)
