package interfaces

import "context"

// Client represents the tracing backend the instrumentation attaches spans to
type Client interface {
	// Initialized returns true if the tracing backend is ready to accept spans
	Initialized() bool

	// ActiveSpan returns the span considered current for this call chain,
	// or nil if there is none
	ActiveSpan(ctx context.Context) Span
}

// Span represents a span in a trace
type Span interface {
	// StartChild creates a child span with the given operation name and description
	StartChild(operation string, description string) (Span, error)

	// SetAttribute sets an attribute on the span
	SetAttribute(key string, value interface{})

	// Finish completes the span
	Finish() error
}

// TokenUsage is implemented by results that expose token counts
type TokenUsage interface {
	InputTokenCount() int
	OutputTokenCount() int
}

// TextContent is implemented by results that expose textual content
type TextContent interface {
	TextContent() string
}
