package observability

import (
	"context"
	"fmt"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// Tracer provides distributed tracing capabilities.
// A disabled tracer runs traced functions without opening segments.
type Tracer struct {
	serviceName string
	enabled     bool
}

// NewTracer creates a new tracer instance
func NewTracer(serviceName string, enabled bool) *Tracer {
	return &Tracer{
		serviceName: serviceName,
		enabled:     enabled,
	}
}

// NewNoopTracer returns a tracer that never records
func NewNoopTracer() *Tracer {
	return &Tracer{}
}

// Enabled reports whether segments are recorded
func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled
}

// StartSegment starts a trace segment for a request. Inside Lambda the
// runtime already owns the segment, so a subsegment is opened instead.
func (t *Tracer) StartSegment(ctx context.Context, name string) (context.Context, *xray.Segment) {
	if !t.Enabled() {
		return ctx, nil
	}
	if xray.GetSegment(ctx) != nil {
		return xray.BeginSubsegment(ctx, name)
	}
	return xray.BeginSegment(ctx, fmt.Sprintf("%s.%s", t.serviceName, name))
}

// StartSubsegment starts a new subsegment within an existing segment.
// The returned segment is nil when tracing is off or no parent exists.
func (t *Tracer) StartSubsegment(ctx context.Context, name string) (context.Context, *xray.Segment) {
	if !t.Enabled() || xray.GetSegment(ctx) == nil {
		return ctx, nil
	}
	return xray.BeginSubsegment(ctx, name)
}

// TraceFunction wraps a function with tracing
func (t *Tracer) TraceFunction(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, seg := t.StartSubsegment(ctx, name)
	if seg == nil {
		return fn(ctx)
	}

	err := fn(ctx)
	seg.Close(err)
	return err
}

// AddMetadata adds metadata to the current segment
func (t *Tracer) AddMetadata(ctx context.Context, key string, value interface{}) {
	if !t.Enabled() {
		return
	}
	if seg := xray.GetSegment(ctx); seg != nil {
		_ = seg.AddMetadata(key, value)
	}
}

// AddAnnotation adds an indexed annotation to the current segment
func (t *Tracer) AddAnnotation(ctx context.Context, key string, value string) {
	if !t.Enabled() {
		return
	}
	if seg := xray.GetSegment(ctx); seg != nil {
		_ = seg.AddAnnotation(key, value)
	}
}
