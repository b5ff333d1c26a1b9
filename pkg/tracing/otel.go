package tracing

import (
	"context"
	"fmt"

	"github.com/ihoka/sentry-agents/pkg/interfaces"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

// OTelClient implements interfaces.Client on top of OpenTelemetry
type OTelClient struct {
	tracer   trace.Tracer
	enabled  bool
	provider *sdktrace.TracerProvider
}

// OTelConfig contains configuration for OpenTelemetry
type OTelConfig struct {
	// Enabled determines whether OpenTelemetry tracing is enabled
	Enabled bool

	// ServiceName is the name of the service
	ServiceName string

	// CollectorEndpoint is the endpoint of the OpenTelemetry collector
	CollectorEndpoint string
}

// NewOTelClient creates an OTel-backed tracing client exporting over
// OTLP gRPC
func NewOTelClient(config OTelConfig) (*OTelClient, error) {
	if !config.Enabled {
		return &OTelClient{
			enabled: false,
		}, nil
	}

	// Create exporter
	ctx := context.Background()
	exporter, err := otlptrace.New(
		ctx,
		otlptracegrpc.NewClient(
			otlptracegrpc.WithEndpoint(config.CollectorEndpoint),
			otlptracegrpc.WithInsecure(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	// Create resource
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	// Create trace provider
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return &OTelClient{
		tracer:   tp.Tracer(config.ServiceName),
		enabled:  true,
		provider: tp,
	}, nil
}

// NewOTelClientWithProvider creates an OTel-backed client using an
// existing tracer provider. Exporter lifecycle stays with the caller.
func NewOTelClientWithProvider(tp trace.TracerProvider, serviceName string) *OTelClient {
	return &OTelClient{
		tracer:  tp.Tracer(serviceName),
		enabled: true,
	}
}

// Initialized implements interfaces.Client
func (c *OTelClient) Initialized() bool {
	return c.enabled
}

// ActiveSpan implements interfaces.Client by looking up the span
// recorded in the OTel context
func (c *OTelClient) ActiveSpan(ctx context.Context) interfaces.Span {
	if !c.enabled {
		return nil
	}

	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return nil
	}

	return &otelSpan{ctx: ctx, span: span, tracer: c.tracer}
}

// StartSpan starts a root span for a new traced operation and returns a
// context carrying it
func (c *OTelClient) StartSpan(ctx context.Context, name string) (context.Context, interfaces.Span) {
	if !c.enabled {
		return ctx, nil
	}

	sctx, span := c.tracer.Start(ctx, name)
	wrapped := &otelSpan{ctx: sctx, span: span, tracer: c.tracer}
	return ContextWithSpan(sctx, wrapped), wrapped
}

// Shutdown flushes and stops the underlying provider, if this client
// owns one
func (c *OTelClient) Shutdown(ctx context.Context) error {
	if c.provider == nil {
		return nil
	}
	return c.provider.Shutdown(ctx)
}

// otelSpan adapts an OpenTelemetry span to interfaces.Span. It keeps
// the context the span was started with so children parent correctly.
type otelSpan struct {
	ctx    context.Context
	span   trace.Span
	tracer trace.Tracer
}

// StartChild implements interfaces.Span
func (s *otelSpan) StartChild(operation string, description string) (interfaces.Span, error) {
	ctx, child := s.tracer.Start(s.ctx, description)
	child.SetAttributes(attribute.String(AttrOperationName, operation))
	return &otelSpan{ctx: ctx, span: child, tracer: s.tracer}, nil
}

// SetAttribute implements interfaces.Span
func (s *otelSpan) SetAttribute(key string, value interface{}) {
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
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

// Finish implements interfaces.Span
func (s *otelSpan) Finish() error {
	s.span.End()
	return nil
}
