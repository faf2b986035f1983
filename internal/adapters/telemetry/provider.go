package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.pindown.dev/pindown/internal/core/ports"
)

// EventBufferSize is the capacity of the async channel between spans
// and the renderer.
const EventBufferSize = 4096

// OTelTracer is a concrete implementation of ports.Tracer using
// OpenTelemetry. Plan and log events travel through a buffered channel
// so slow renderers never stall a fetch.
type OTelTracer struct {
	tracer   trace.Tracer
	renderer ports.Renderer
	events   chan any
	mu       sync.RWMutex
}

// NewOTelTracer creates a new OTelTracer with the given instrumentation
// name.
func NewOTelTracer(name string) *OTelTracer {
	t := &OTelTracer{
		tracer: otel.Tracer(name),
		events: make(chan any, EventBufferSize), // Buffered to absorb bursts
	}
	go t.runLoop()
	return t
}

func (t *OTelTracer) runLoop() {
	for msg := range t.events {
		t.mu.RLock()
		r := t.renderer
		t.mu.RUnlock()

		if r == nil {
			continue
		}

		switch m := msg.(type) {
		case msgFetchLog:
			r.OnFetchLog(m.spanID, m.data)
		}
	}
}

// Shutdown stops the background event forwarder.
func (t *OTelTracer) Shutdown(_ context.Context) error {
	close(t.events)
	return nil
}

// WithRenderer sets the renderer receiving plan and log events.
func (t *OTelTracer) WithRenderer(r ports.Renderer) *OTelTracer {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.renderer = r
	return t
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, span := t.tracer.Start(ctx, name)

	t.mu.RLock()
	r := t.renderer
	t.mu.RUnlock()

	var batcher *Batcher
	if r != nil {
		spanID := span.SpanContext().SpanID().String()
		cb := func(data []byte) {
			select {
			case t.events <- msgFetchLog{spanID: spanID, data: data}:
			default:
				// Drop progress notes rather than stall a fetch.
			}
		}
		batcher = NewBatcher(0, 0, cb)
	}

	return ctx, &OTelSpan{span: span, batcher: batcher}
}

// EmitPlan records the resolution plan as an event on the current span
// and hands it to the renderer. The plan is delivered synchronously:
// fetch spans start only after it returns, and their start events reach
// the renderer without passing through the event channel, so an async
// plan could arrive after the fetches it announces.
func (t *OTelTracer) EmitPlan(ctx context.Context, packages []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("packages", packages),
		))
	}

	t.mu.RLock()
	r := t.renderer
	t.mu.RUnlock()

	if r != nil {
		r.OnPlan(packages)
	}
}

// OTelSpan is a concrete implementation of ports.Span using
// OpenTelemetry.
type OTelSpan struct {
	span    trace.Span
	batcher *Batcher
}

// Batcher exposes the span's log batcher; nil when no renderer is set.
func (s *OTelSpan) Batcher() *Batcher {
	return s.batcher
}

// End flushes pending output and completes the span.
func (s *OTelSpan) End() {
	if s.batcher != nil {
		_ = s.batcher.Close()
	}
	s.span.End()
}

// RecordError records the error and marks the span failed.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

// Write satisfies io.Writer. With a renderer attached the bytes go
// through the batcher; otherwise they land as a span event.
func (s *OTelSpan) Write(p []byte) (n int, err error) {
	if s.batcher != nil {
		return s.batcher.Write(p)
	}
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	return len(p), nil
}
