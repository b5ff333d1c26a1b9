package tracing

// Operation represents one of the fixed instrumentation categories
type Operation string

// Wire-level operation names, following the OpenTelemetry GenAI
// semantic conventions for agent spans.
const (
	OpInvokeAgent Operation = "gen_ai.invoke_agent"
	OpChat        Operation = "gen_ai.chat"
	OpExecuteTool Operation = "gen_ai.execute_tool"
	OpHandoff     Operation = "gen_ai.handoff"
)

// String returns the wire name of the operation
func (o Operation) String() string {
	return string(o)
}

// Span attribute keys. These are the wire contract with downstream
// tracing consumers and must not change.
const (
	AttrOperationName   = "gen_ai.operation.name"
	AttrSystem          = "gen_ai.system"
	AttrRequestModel    = "gen_ai.request.model"
	AttrRequestMessages = "gen_ai.request.messages"
	AttrAgentName       = "gen_ai.agent.name"
	AttrInputTokens     = "gen_ai.usage.input_tokens"  // #nosec G101 - metric key name, not a credential
	AttrOutputTokens    = "gen_ai.usage.output_tokens" // #nosec G101 - metric key name, not a credential
	AttrResponseText    = "gen_ai.response.text"
	AttrToolName        = "gen_ai.tool.name"
	AttrToolInput       = "gen_ai.tool.input"
	AttrToolOutput      = "gen_ai.tool.output"
	AttrHandoffFrom     = "gen_ai.handoff.from"
	AttrHandoffTo       = "gen_ai.handoff.to"
)
