package tracing

import (
	"context"
	"reflect"

	"github.com/ihoka/sentry-agents/pkg/config"
	"github.com/ihoka/sentry-agents/pkg/interfaces"
)

// InvokeAgentParams contains the inputs for an agent invocation span
type InvokeAgentParams struct {
	// AgentName is the name of the invoked agent
	AgentName string

	// Model is the model identifier the agent runs on
	Model string

	// Provider overrides the configured default provider when set
	Provider string
}

// ChatParams contains the inputs for a chat call span
type ChatParams struct {
	// Model is the model identifier
	Model string

	// Messages is the optional conversation sent to the model
	Messages []interfaces.Message

	// Provider overrides the configured default provider when set
	Provider string
}

// ExecuteToolParams contains the inputs for a tool execution span
type ExecuteToolParams struct {
	// ToolName is the name of the executed tool
	ToolName string

	// Input is the optional tool input, serialized onto the span
	Input interface{}

	// Provider overrides the configured default provider when set
	Provider string
}

// HandoffParams contains the inputs for a stage handoff span
type HandoffParams struct {
	// From is the stage handing control off
	From string

	// To is the stage receiving control
	To string

	// Provider overrides the configured default provider when set
	Provider string
}

// InvokeAgent wraps an agent invocation in a gen_ai.invoke_agent span.
// Token counts are recorded when the work's result exposes them.
func InvokeAgent[T any](ctx context.Context, b *Builder, params InvokeAgentParams, work WorkFunc[T]) (T, error) {
	cfg := builderConfig(b)

	attributes := map[string]interface{}{
		AttrOperationName: OpInvokeAgent.String(),
		AttrSystem:        resolveProvider(params.Provider, cfg),
		AttrRequestModel:  params.Model,
		AttrAgentName:     params.AgentName,
	}

	return Run(ctx, b, OpInvokeAgent, "invoke_agent "+params.AgentName, attributes, func(ctx context.Context, span interfaces.Span) (T, error) {
		out, err := work(ctx, span)
		if err == nil && span != nil {
			recordTokenUsage(span, out)
		}
		return out, err
	})
}

// Chat wraps a chat completion call in a gen_ai.chat span. Token counts
// and the response text are recorded when the result exposes them.
func Chat[T any](ctx context.Context, b *Builder, params ChatParams, work WorkFunc[T]) (T, error) {
	cfg := builderConfig(b)

	attributes := map[string]interface{}{
		AttrOperationName: OpChat.String(),
		AttrSystem:        resolveProvider(params.Provider, cfg),
		AttrRequestModel:  params.Model,
	}
	if len(params.Messages) > 0 {
		if s, ok := Serialize(params.Messages, cfg.MaxFieldLength); ok {
			attributes[AttrRequestMessages] = s
		}
	}

	return Run(ctx, b, OpChat, "chat "+params.Model, attributes, func(ctx context.Context, span interfaces.Span) (T, error) {
		out, err := work(ctx, span)
		if err == nil && span != nil {
			recordTokenUsage(span, out)
			recordResponseText(span, out, cfg)
		}
		return out, err
	})
}

// ExecuteTool wraps a tool execution in a gen_ai.execute_tool span. The
// serialized result is recorded as the tool output.
func ExecuteTool[T any](ctx context.Context, b *Builder, params ExecuteToolParams, work WorkFunc[T]) (T, error) {
	cfg := builderConfig(b)

	attributes := map[string]interface{}{
		AttrOperationName: OpExecuteTool.String(),
		AttrSystem:        resolveProvider(params.Provider, cfg),
		AttrToolName:      params.ToolName,
	}
	if params.Input != nil {
		if s, ok := Serialize(params.Input, cfg.MaxFieldLength); ok {
			attributes[AttrToolInput] = s
		}
	}

	return Run(ctx, b, OpExecuteTool, "execute_tool "+params.ToolName, attributes, func(ctx context.Context, span interfaces.Span) (T, error) {
		out, err := work(ctx, span)
		if err == nil && span != nil {
			if s, ok := Serialize(normalize(out), cfg.MaxFieldLength); ok && s != "" {
				span.SetAttribute(AttrToolOutput, s)
			}
		}
		return out, err
	})
}

// Handoff wraps a stage handoff in a gen_ai.handoff span
func Handoff[T any](ctx context.Context, b *Builder, params HandoffParams, work WorkFunc[T]) (T, error) {
	cfg := builderConfig(b)

	attributes := map[string]interface{}{
		AttrOperationName: OpHandoff.String(),
		AttrSystem:        resolveProvider(params.Provider, cfg),
		AttrHandoffFrom:   params.From,
		AttrHandoffTo:     params.To,
	}

	return Run(ctx, b, OpHandoff, "handoff from "+params.From+" to "+params.To, attributes, work)
}

// builderConfig reads the configuration at call time so overrides made
// after construction are still honored
func builderConfig(b *Builder) config.Config {
	if b == nil || b.store == nil {
		return config.Get()
	}
	return b.store.Get()
}

// resolveProvider picks the explicit override over the configured default
func resolveProvider(override string, cfg config.Config) string {
	if override != "" {
		return override
	}
	return cfg.Provider
}

// recordTokenUsage records token counts if the result reports them
func recordTokenUsage(span interfaces.Span, result interface{}) {
	usage, ok := normalize(result).(interfaces.TokenUsage)
	if !ok {
		return
	}
	span.SetAttribute(AttrInputTokens, usage.InputTokenCount())
	span.SetAttribute(AttrOutputTokens, usage.OutputTokenCount())
}

// recordResponseText records the response text as a single-element JSON
// array if the result exposes textual content
func recordResponseText(span interfaces.Span, result interface{}, cfg config.Config) {
	content, ok := normalize(result).(interfaces.TextContent)
	if !ok {
		return
	}
	text := content.TextContent()
	if text == "" {
		return
	}
	if s, ok := Serialize([]string{text}, cfg.MaxFieldLength); ok {
		span.SetAttribute(AttrResponseText, s)
	}
}

// normalize collapses nil pointers hiding inside a non-nil interface so
// capability checks tolerate results of any shape
func normalize(result interface{}) interface{} {
	if result == nil {
		return nil
	}
	v := reflect.ValueOf(result)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	}
	return result
}
