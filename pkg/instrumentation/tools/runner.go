package tools

import (
	"context"

	"github.com/ihoka/sentry-agents/pkg/interfaces"
	"github.com/ihoka/sentry-agents/pkg/tracing"
)

// Runner executes tools inside gen_ai.execute_tool spans
type Runner struct {
	builder *tracing.Builder
}

// NewRunner creates a runner tracing through the given builder. A nil
// builder runs tools untraced.
func NewRunner(builder *tracing.Builder) *Runner {
	return &Runner{builder: builder}
}

// Run executes the tool with the given input, recording the input and
// output on the span
func (r *Runner) Run(ctx context.Context, tool interfaces.Tool, input string) (string, error) {
	params := tracing.ExecuteToolParams{
		ToolName: tool.Name(),
		Input:    input,
	}

	return tracing.ExecuteTool(ctx, r.builder, params, func(ctx context.Context, _ interfaces.Span) (string, error) {
		return tool.Run(ctx, input)
	})
}
