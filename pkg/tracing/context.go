package tracing

import (
	"context"

	"github.com/ihoka/sentry-agents/pkg/interfaces"
)

// Define a custom type for context keys to avoid collisions
type contextKey string

const (
	// activeSpanKey is the context key for the ambient active span
	activeSpanKey contextKey = "active_span"
)

// ContextWithSpan returns a new context carrying the given span as the
// ambient active span
func ContextWithSpan(ctx context.Context, span interfaces.Span) context.Context {
	return context.WithValue(ctx, activeSpanKey, span)
}

// SpanFromContext returns the ambient active span from the context, or
// nil if there is none
func SpanFromContext(ctx context.Context) interfaces.Span {
	span, ok := ctx.Value(activeSpanKey).(interfaces.Span)
	if !ok {
		return nil
	}
	return span
}
