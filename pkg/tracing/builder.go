package tracing

import (
	"context"

	"github.com/ihoka/sentry-agents/pkg/config"
	"github.com/ihoka/sentry-agents/pkg/interfaces"
	"github.com/ihoka/sentry-agents/pkg/logging"
)

// Builder creates child spans under the ambient active span and
// guarantees they are finished, whatever the wrapped work does.
type Builder struct {
	client interfaces.Client
	store  *config.Store
	logger logging.Logger
}

// Option represents an option for configuring the Builder
type Option func(*Builder)

// WithStore sets the configuration store for the builder
func WithStore(store *config.Store) Option {
	return func(b *Builder) {
		b.store = store
	}
}

// WithLogger sets the logger for the builder
func WithLogger(logger logging.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates a new Builder attached to the given tracing client
func NewBuilder(client interfaces.Client, opts ...Option) *Builder {
	b := &Builder{
		client: client,
		store:  config.Default(),
		logger: logging.New(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// WorkFunc is the caller-supplied unit of work. The span is nil when
// tracing is unavailable; the work must behave identically either way.
type WorkFunc[T any] func(ctx context.Context, span interfaces.Span) (T, error)

// Run wraps the work in a child span of the ambient active span.
//
// When tracing is unavailable, or the backend fails to create the span,
// the work runs with a nil span and its result is returned verbatim.
// Errors from the work are never caught here; the span is finished
// exactly once before they propagate. Backend failures never surface to
// the caller.
func Run[T any](ctx context.Context, b *Builder, op Operation, description string, attributes map[string]interface{}, work WorkFunc[T]) (T, error) {
	if b == nil {
		return work(ctx, nil)
	}

	parent := b.activeSpan(ctx)
	if parent == nil {
		return work(ctx, nil)
	}

	cfg := b.store.Get()

	child, err := parent.StartChild(op.String(), description)
	if err != nil || child == nil {
		b.debug(ctx, cfg, "failed to start child span", err)
		return work(ctx, nil)
	}

	// Finish exactly once, on success, error, or panic. A finish
	// failure must never mask the work's own error.
	defer func() {
		if ferr := child.Finish(); ferr != nil {
			b.debug(ctx, cfg, "failed to finish span", ferr)
		}
	}()

	b.setAttributes(child, Filter(attributes, cfg))

	return work(ContextWithSpan(ctx, child), child)
}

// activeSpan resolves the ambient active span, or nil when tracing is
// unavailable. The context slot wins over the backend's own lookup so
// that nested wrapped calls parent correctly across backends.
func (b *Builder) activeSpan(ctx context.Context) interfaces.Span {
	if b.client == nil || !b.client.Initialized() {
		return nil
	}

	if span := SpanFromContext(ctx); span != nil {
		return span
	}

	return b.client.ActiveSpan(ctx)
}

// setAttributes sets the filtered attributes on the span, silently
// omitting entries whose value is nil or an empty string
func (b *Builder) setAttributes(span interfaces.Span, attributes map[string]interface{}) {
	for key, value := range attributes {
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		span.SetAttribute(key, value)
	}
}

func (b *Builder) debug(ctx context.Context, cfg config.Config, msg string, err error) {
	if !cfg.Debug || b.logger == nil {
		return
	}

	fields := map[string]interface{}{}
	if err != nil {
		fields["error"] = err.Error()
	}
	b.logger.Debug(ctx, msg, fields)
}
