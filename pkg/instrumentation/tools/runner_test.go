package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/ihoka/sentry-agents/pkg/config"
	"github.com/ihoka/sentry-agents/pkg/logging"
	"github.com/ihoka/sentry-agents/pkg/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// echoTool returns its input unchanged
type echoTool struct {
	err error
}

func (t *echoTool) Name() string {
	return "echo"
}

func (t *echoTool) Description() string {
	return "Returns the input unchanged"
}

func (t *echoTool) Run(ctx context.Context, input string) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	return input, nil
}

func TestRunnerTracesToolExecution(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	client := tracing.NewOTelClientWithProvider(tp, "test")

	builder := tracing.NewBuilder(client,
		tracing.WithStore(config.NewStore()),
		tracing.WithLogger(logging.NewNop()),
	)
	runner := NewRunner(builder)

	ctx, root := client.StartSpan(context.Background(), "conversation")
	out, err := runner.Run(ctx, &echoTool{}, "ping")
	require.NoError(t, err)
	assert.Equal(t, "ping", out)
	require.NoError(t, root.Finish())

	ended := recorder.Ended()
	require.Len(t, ended, 2)

	span := ended[0]
	assert.Equal(t, "execute_tool echo", span.Name())

	var toolName, toolOutput string
	for _, kv := range span.Attributes() {
		switch string(kv.Key) {
		case tracing.AttrToolName:
			toolName = kv.Value.AsString()
		case tracing.AttrToolOutput:
			toolOutput = kv.Value.AsString()
		}
	}
	assert.Equal(t, "echo", toolName)
	assert.Equal(t, "ping", toolOutput)
}

func TestRunnerPropagatesToolError(t *testing.T) {
	runner := NewRunner(nil)

	toolErr := errors.New("tool exploded")
	_, err := runner.Run(context.Background(), &echoTool{err: toolErr}, "ping")
	assert.ErrorIs(t, err, toolErr)
}

func TestRunnerWithoutBuilder(t *testing.T) {
	runner := NewRunner(nil)

	out, err := runner.Run(context.Background(), &echoTool{}, "ping")
	require.NoError(t, err)
	assert.Equal(t, "ping", out)
}
