package tracing

import (
	"context"
	"sync"
	"time"

	"github.com/GriffinCanCode/ignition/companion/internal/shared/id"
	"go.uber.org/zap"
)

// TraceID identifies a chain of related operations
type TraceID string

// SpanID identifies a single operation
type SpanID string

const spanBuffer = 1000

// Span is a single timed operation
type Span struct {
	TraceID   TraceID
	SpanID    SpanID
	ParentID  SpanID
	Name      string
	Service   string
	StartTime time.Time
	Duration  time.Duration
	Tags      map[string]string
	Error     error
}

// Tracer creates spans and logs them once submitted
type Tracer struct {
	service string
	logger  *zap.Logger

	mu     sync.RWMutex
	closed bool
	spans  chan *Span
	done   chan struct{}
}

// New creates a tracer and starts its collector
func New(service string, logger *zap.Logger) *Tracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracer{
		service: service,
		logger:  logger,
		spans:   make(chan *Span, spanBuffer),
		done:    make(chan struct{}),
	}
	go t.collect()
	return t
}

// StartSpan opens a span under whatever trace ctx carries, or a new one
func (t *Tracer) StartSpan(ctx context.Context, name string) (*Span, context.Context) {
	traceID := GetTraceID(ctx)
	if traceID == "" {
		traceID = TraceID(id.Default().GenerateWithPrefix(id.TracePrefix))
	}

	span := &Span{
		TraceID:   traceID,
		SpanID:    SpanID(id.Default().GenerateWithPrefix(id.SpanPrefix)),
		ParentID:  GetSpanID(ctx),
		Name:      name,
		Service:   t.service,
		StartTime: time.Now(),
		Tags:      make(map[string]string),
	}

	ctx = context.WithValue(ctx, traceIDKey, traceID)
	ctx = context.WithValue(ctx, spanIDKey, span.SpanID)
	return span, ctx
}

// Finish records the span duration
func (s *Span) Finish() {
	s.Duration = time.Since(s.StartTime)
}

// SetTag adds a tag to the span
func (s *Span) SetTag(key, value string) {
	s.Tags[key] = value
}

// SetError marks the span failed
func (s *Span) SetError(err error) {
	s.Error = err
}

// Submit hands a finished span to the collector. Spans submitted after
// Close, or while the buffer is full, are dropped.
func (t *Tracer) Submit(span *Span) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return
	}

	select {
	case t.spans <- span:
	default:
		t.logger.Warn("span buffer full, dropping span",
			zap.String("trace_id", string(span.TraceID)),
			zap.String("span_id", string(span.SpanID)),
		)
	}
}

// Close flushes buffered spans and stops the collector
func (t *Tracer) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	close(t.spans)
	t.mu.Unlock()
	<-t.done
}

func (t *Tracer) collect() {
	defer close(t.done)
	for span := range t.spans {
		t.log(span)
	}
}

func (t *Tracer) log(span *Span) {
	fields := []zap.Field{
		zap.String("trace_id", string(span.TraceID)),
		zap.String("span_id", string(span.SpanID)),
		zap.String("operation", span.Name),
		zap.Duration("duration", span.Duration),
		zap.String("service", span.Service),
	}
	if span.ParentID != "" {
		fields = append(fields, zap.String("parent_id", string(span.ParentID)))
	}
	for k, v := range span.Tags {
		fields = append(fields, zap.String(k, v))
	}

	if span.Error != nil {
		t.logger.Warn("span failed", append(fields, zap.Error(span.Error))...)
		return
	}
	t.logger.Debug("span completed", fields...)
}

type contextKey string

const (
	traceIDKey contextKey = "trace_id"
	spanIDKey  contextKey = "span_id"
)

// WithTrace continues an existing trace, as read from a request
func WithTrace(ctx context.Context, traceID TraceID, parent SpanID) context.Context {
	if traceID != "" {
		ctx = context.WithValue(ctx, traceIDKey, traceID)
	}
	if parent != "" {
		ctx = context.WithValue(ctx, spanIDKey, parent)
	}
	return ctx
}

// GetTraceID retrieves the trace ID from context
func GetTraceID(ctx context.Context) TraceID {
	traceID, _ := ctx.Value(traceIDKey).(TraceID)
	return traceID
}

// GetSpanID retrieves the current span ID from context
func GetSpanID(ctx context.Context) SpanID {
	spanID, _ := ctx.Value(spanIDKey).(SpanID)
	return spanID
}
