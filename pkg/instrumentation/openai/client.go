package openai

import (
	"context"
	"fmt"

	"github.com/ihoka/sentry-agents/pkg/config"
	"github.com/ihoka/sentry-agents/pkg/interfaces"
	"github.com/ihoka/sentry-agents/pkg/logging"
	"github.com/ihoka/sentry-agents/pkg/tracing"
	"github.com/sashabaranov/go-openai"
)

// providerName is the gen_ai.system value recorded for this client
const providerName = "openai"

// Client implements the LLM interface for OpenAI, wrapping every chat
// call in a gen_ai.chat span when instrumentation is enabled
type Client struct {
	Client  *openai.Client
	Model   string
	baseURL string
	logger  logging.Logger
	builder *tracing.Builder
	store   *config.Store
}

// Option represents an option for configuring the OpenAI client
type Option func(*Client)

// WithModel sets the model for the OpenAI client
func WithModel(model string) Option {
	return func(c *Client) {
		c.Model = model
	}
}

// WithLogger sets the logger for the OpenAI client
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithBuilder sets the span builder used to trace chat calls
func WithBuilder(builder *tracing.Builder) Option {
	return func(c *Client) {
		c.builder = builder
	}
}

// WithStore sets the configuration store consulted for the
// instrumentation toggle
func WithStore(store *config.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithBaseURL points the client at a different API endpoint
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a new OpenAI client
func NewClient(apiKey string, options ...Option) *Client {
	// Create client with default options
	client := &Client{
		Model:  "gpt-4o-mini",
		logger: logging.New(),
		store:  config.Default(),
	}

	// Apply options
	for _, option := range options {
		option(client)
	}

	if client.Client == nil {
		cfg := openai.DefaultConfig(apiKey)
		if client.baseURL != "" {
			cfg.BaseURL = client.baseURL
		}
		client.Client = openai.NewClientWithConfig(cfg)
	}

	return client
}

// Chat sends the messages to the OpenAI Chat Completions API
func (c *Client) Chat(ctx context.Context, messages []interfaces.Message) (*interfaces.ChatResult, error) {
	builder := c.builder
	if !c.store.Get().InstrumentOpenAI {
		builder = nil
	}

	params := tracing.ChatParams{
		Model:    c.Model,
		Messages: messages,
		Provider: providerName,
	}

	return tracing.Chat(ctx, builder, params, func(ctx context.Context, _ interfaces.Span) (*interfaces.ChatResult, error) {
		// Convert messages to the OpenAI Chat format
		chatMessages := make([]openai.ChatCompletionMessage, len(messages))
		for i, msg := range messages {
			chatMessages[i] = openai.ChatCompletionMessage{
				Role:    msg.Role,
				Content: msg.Content,
			}
		}

		resp, err := c.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    c.Model,
			Messages: chatMessages,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no completion choices returned")
		}

		return &interfaces.ChatResult{
			Model:            resp.Model,
			Content:          resp.Choices[0].Message.Content,
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
		}, nil
	})
}

// Name implements interfaces.LLM.Name
func (c *Client) Name() string {
	return providerName
}
