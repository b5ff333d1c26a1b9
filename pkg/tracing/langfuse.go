package tracing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/henomis/langfuse-go"
	"github.com/henomis/langfuse-go/model"
	"github.com/ihoka/sentry-agents/pkg/interfaces"
)

// LangfuseClient implements interfaces.Client on top of Langfuse
type LangfuseClient struct {
	client      *langfuse.Langfuse
	enabled     bool
	environment string
}

// LangfuseConfig contains configuration for Langfuse
type LangfuseConfig struct {
	// Enabled determines whether Langfuse tracing is enabled
	Enabled bool

	// SecretKey is the Langfuse secret key
	SecretKey string

	// PublicKey is the Langfuse public key
	PublicKey string

	// Host is the Langfuse host (optional)
	Host string

	// Environment is the environment name (e.g., "production", "staging")
	Environment string
}

// NewLangfuseClient creates a Langfuse-backed tracing client
func NewLangfuseClient(config LangfuseConfig) (*LangfuseClient, error) {
	if !config.Enabled {
		return &LangfuseClient{
			enabled: false,
		}, nil
	}

	client := langfuse.New(context.Background())

	return &LangfuseClient{
		client:      client,
		enabled:     true,
		environment: config.Environment,
	}, nil
}

// Initialized implements interfaces.Client
func (c *LangfuseClient) Initialized() bool {
	return c.enabled && c.client != nil
}

// ActiveSpan implements interfaces.Client. Langfuse has no ambient span
// state of its own; the current span travels in the context slot, which
// the builder consults before calling here.
func (c *LangfuseClient) ActiveSpan(ctx context.Context) interfaces.Span {
	if !c.enabled {
		return nil
	}
	return SpanFromContext(ctx)
}

// StartSpan starts a root observation for a new traced operation and
// returns a context carrying it
func (c *LangfuseClient) StartSpan(ctx context.Context, name string) (context.Context, interfaces.Span) {
	if !c.Initialized() {
		return ctx, nil
	}

	now := time.Now()
	root := &langfuseSpan{
		client: c.client,
		span: &model.Span{
			ID:        uuid.NewString(),
			Name:      name,
			StartTime: &now,
			Metadata: model.M{
				"environment": c.environment,
			},
		},
	}

	return ContextWithSpan(ctx, root), root
}

// Flush flushes pending observations to the Langfuse API
func (c *LangfuseClient) Flush(ctx context.Context) {
	if !c.Initialized() {
		return
	}
	c.client.Flush(ctx)
}

// langfuseSpan adapts a Langfuse observation to interfaces.Span. The
// observation is submitted once, on Finish, so attributes set between
// creation and completion are included.
type langfuseSpan struct {
	client *langfuse.Langfuse
	span   *model.Span
}

// StartChild implements interfaces.Span
func (s *langfuseSpan) StartChild(operation string, description string) (interfaces.Span, error) {
	now := time.Now()
	child := &model.Span{
		ID:                  uuid.NewString(),
		Name:                description,
		StartTime:           &now,
		ParentObservationID: s.span.ID,
		Metadata: model.M{
			AttrOperationName: operation,
		},
	}

	return &langfuseSpan{client: s.client, span: child}, nil
}

// SetAttribute implements interfaces.Span by recording the value in the
// observation metadata
func (s *langfuseSpan) SetAttribute(key string, value interface{}) {
	md, ok := s.span.Metadata.(model.M)
	if !ok || md == nil {
		md = model.M{}
		s.span.Metadata = md
	}
	md[key] = value
}

// Finish implements interfaces.Span by stamping the end time and
// submitting the observation
func (s *langfuseSpan) Finish() error {
	now := time.Now()
	s.span.EndTime = &now

	var id string
	if _, err := s.client.Span(s.span, &id); err != nil {
		return fmt.Errorf("failed to submit Langfuse span: %w", err)
	}
	return nil
}
