package bus

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"
)

// Query represents a read-only query
type Query interface {
	Validate() error
}

// QueryHandler handles a specific query type
type QueryHandler interface {
	Handle(ctx context.Context, query Query) (interface{}, error)
}

// QueryBus dispatches queries to their handlers
type QueryBus struct {
	handlers   map[reflect.Type]QueryHandler
	middleware []Middleware
	mu         sync.RWMutex
}

// Middleware decorates a query handler
type Middleware interface {
	Wrap(next QueryHandler) QueryHandler
}

// NewQueryBus creates a new query bus. Middleware is applied to every handler
// registered afterwards, outermost first.
func NewQueryBus(middleware ...Middleware) *QueryBus {
	return &QueryBus{
		handlers:   make(map[reflect.Type]QueryHandler),
		middleware: middleware,
	}
}

// Register registers a handler for a query type
func (b *QueryBus) Register(queryType Query, handler QueryHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := reflect.TypeOf(queryType)
	if _, exists := b.handlers[t]; exists {
		return fmt.Errorf("handler already registered for query type %s", t.Name())
	}

	for i := len(b.middleware) - 1; i >= 0; i-- {
		handler = b.middleware[i].Wrap(handler)
	}
	b.handlers[t] = handler
	return nil
}

// Ask dispatches a query to its handler and returns the result
func (b *QueryBus) Ask(ctx context.Context, query Query) (interface{}, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("query validation failed: %w", err)
	}

	b.mu.RLock()
	handler, exists := b.handlers[reflect.TypeOf(query)]
	b.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("no handler registered for query type %T", query)
	}

	result, err := handler.Handle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query handler failed: %w", err)
	}

	return result, nil
}

// QueryHandlerFunc is an adapter to allow functions to be used as handlers
type QueryHandlerFunc func(ctx context.Context, query Query) (interface{}, error)

// Handle implements QueryHandler
func (f QueryHandlerFunc) Handle(ctx context.Context, query Query) (interface{}, error) {
	return f(ctx, query)
}

// Typed adapts a strongly typed handler function to QueryHandler
func Typed[Q Query, R any](fn func(ctx context.Context, query Q) (R, error)) QueryHandler {
	return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		q, ok := query.(Q)
		if !ok {
			return nil, fmt.Errorf("unexpected query type %T", query)
		}
		return fn(ctx, q)
	})
}

// MetricsMiddleware adds metrics to query handlers
type MetricsMiddleware struct {
	metrics Metrics
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(metrics Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{
		metrics: metrics,
	}
}

// Wrap wraps a query handler with metrics
func (m *MetricsMiddleware) Wrap(next QueryHandler) QueryHandler {
	return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		queryType := reflect.TypeOf(query).Name()

		start := time.Now()
		defer func() {
			m.metrics.RecordDuration("QueryDuration", queryType, time.Since(start))
		}()

		m.metrics.Increment("QueryCount", queryType)

		result, err := next.Handle(ctx, query)
		if err != nil {
			m.metrics.Increment("QueryErrors", queryType)
			return nil, err
		}

		m.metrics.Increment("QuerySuccess", queryType)
		return result, nil
	})
}

// Metrics is the sink used by MetricsMiddleware
type Metrics interface {
	Increment(metric, label string)
	RecordDuration(metric, label string, d time.Duration)
}
