package interfaces

import "context"

// Message represents a message in a chat conversation
type Message struct {
	Role    string // "system", "user", "assistant"
	Content string
}

// ChatResult represents the outcome of a chat completion call
type ChatResult struct {
	Model            string
	Content          string
	PromptTokens     int
	CompletionTokens int
}

// InputTokenCount implements TokenUsage
func (r *ChatResult) InputTokenCount() int {
	return r.PromptTokens
}

// OutputTokenCount implements TokenUsage
func (r *ChatResult) OutputTokenCount() int {
	return r.CompletionTokens
}

// TextContent implements TextContent
func (r *ChatResult) TextContent() string {
	return r.Content
}

// LLM represents a chat-capable language model client
type LLM interface {
	// Chat sends the messages to the model and returns its reply
	Chat(ctx context.Context, messages []Message) (*ChatResult, error)

	// Name returns the name of the LLM provider
	Name() string
}
