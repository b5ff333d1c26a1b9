package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ihoka/sentry-agents/pkg/config"
	"github.com/ihoka/sentry-agents/pkg/interfaces"
	"github.com/ihoka/sentry-agents/pkg/logging"
	"github.com/ihoka/sentry-agents/pkg/tracing"
)

// providerName is the gen_ai.system value recorded for this client
const providerName = "anthropic"

const (
	defaultBaseURL   = "https://api.anthropic.com"
	apiVersion       = "2023-06-01"
	defaultMaxTokens = 1024
)

// Client implements the LLM interface for Anthropic, wrapping every
// chat call in a gen_ai.chat span when instrumentation is enabled
type Client struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	logger     logging.Logger
	builder    *tracing.Builder
	store      *config.Store
}

// Option represents an option for configuring the Anthropic client
type Option func(*Client)

// WithModel sets the model for the Anthropic client
func WithModel(model string) Option {
	return func(c *Client) {
		c.Model = model
	}
}

// WithBaseURL sets the base URL for the Anthropic API
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.BaseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for API requests
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = client
	}
}

// WithLogger sets the logger for the Anthropic client
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

// NewClient creates a new Anthropic client
func NewClient(apiKey string, options ...Option) *Client {
	client := &Client{
		APIKey:     apiKey,
		Model:      "claude-3-5-sonnet",
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logging.New(),
		store:      config.Default(),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// message represents a message for the Anthropic API
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionRequest represents a request to the Messages API
type completionRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
	System    string    `json:"system,omitempty"`
}

// contentBlock represents a content block in an API response
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// usage represents token usage information
type usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// completionResponse represents a response from the Messages API
type completionResponse struct {
	ID         string         `json:"id"`
	Content    []contentBlock `json:"content"`
	Model      string         `json:"model"`
	StopReason string         `json:"stop_reason"`
	Usage      usage          `json:"usage"`
}

// Chat sends the messages to the Anthropic Messages API
func (c *Client) Chat(ctx context.Context, messages []interfaces.Message) (*interfaces.ChatResult, error) {
	if c.Model == "" {
		return nil, fmt.Errorf("model not specified: use WithModel option when creating the client")
	}

	builder := c.builder
	if !c.store.Get().InstrumentAnthropic {
		builder = nil
	}

	params := tracing.ChatParams{
		Model:    c.Model,
		Messages: messages,
		Provider: providerName,
	}

	return tracing.Chat(ctx, builder, params, func(ctx context.Context, _ interfaces.Span) (*interfaces.ChatResult, error) {
		return c.complete(ctx, messages)
	})
}

func (c *Client) complete(ctx context.Context, messages []interfaces.Message) (*interfaces.ChatResult, error) {
	// The API rejects system-role entries in the messages list; they go
	// in the dedicated system field instead
	req := completionRequest{
		Model:     c.Model,
		MaxTokens: defaultMaxTokens,
	}
	for _, msg := range messages {
		if msg.Role == "system" {
			req.System = msg.Content
			continue
		}
		req.Messages = append(req.Messages, message{Role: msg.Role, Content: msg.Content})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var resp completionResponse

	operation := func() error {
		httpReq, err := http.NewRequestWithContext(
			ctx,
			http.MethodPost,
			c.BaseURL+"/v1/messages",
			bytes.NewReader(body),
		)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-api-key", c.APIKey)
		httpReq.Header.Set("anthropic-version", apiVersion)

		httpResp, err := c.HTTPClient.Do(httpReq)
		if err != nil {
			return fmt.Errorf("failed to send request: %w", err)
		}
		defer func() {
			_ = httpResp.Body.Close()
		}()

		respBody, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		if httpResp.StatusCode != http.StatusOK {
			apiErr := fmt.Errorf("API request failed with status %d: %s", httpResp.StatusCode, string(respBody))
			// Only rate limits and server errors are worth retrying
			if httpResp.StatusCode == http.StatusTooManyRequests || httpResp.StatusCode >= 500 {
				c.logger.Debug(ctx, "Retrying Anthropic request", map[string]interface{}{
					"status": httpResp.StatusCode,
				})
				return apiErr
			}
			return backoff.Permanent(apiErr)
		}

		if err := json.Unmarshal(respBody, &resp); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to unmarshal response: %w", err))
		}
		return nil
	}

	exponentialBackoff := backoff.NewExponentialBackOff()
	exponentialBackoff.MaxElapsedTime = 2 * time.Minute
	if err := backoff.Retry(operation, backoff.WithContext(exponentialBackoff, ctx)); err != nil {
		return nil, err
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	return &interfaces.ChatResult{
		Model:            resp.Model,
		Content:          content,
		PromptTokens:     resp.Usage.InputTokens,
		CompletionTokens: resp.Usage.OutputTokens,
	}, nil
}

// Name implements interfaces.LLM.Name
func (c *Client) Name() string {
	return providerName
}
