package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ihoka/sentry-agents/pkg/interfaces"
	"github.com/ihoka/sentry-agents/pkg/logging"
	gopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header with test-key")
		}

		var reqBody map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			t.Fatalf("Failed to decode request body: %v", err)
		}
		if reqBody["model"] != "gpt-4o-mini" {
			t.Errorf("Expected gpt-4o-mini model, got %v", reqBody["model"])
		}

		w.Header().Set("Content-Type", "application/json")
		response := gopenai.ChatCompletionResponse{
			Model: "gpt-4o-mini",
			Choices: []gopenai.ChatCompletionChoice{
				{
					Message: gopenai.ChatCompletionMessage{
						Content: "test response",
						Role:    "assistant",
					},
				},
			},
			Usage: gopenai.Usage{
				PromptTokens:     12,
				CompletionTokens: 4,
			},
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			t.Fatalf("Failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient("test-key",
		WithModel("gpt-4o-mini"),
		WithBaseURL(server.URL+"/v1"),
		WithLogger(logging.NewNop()),
	)

	result, err := client.Chat(context.Background(), []interfaces.Message{
		{Role: "user", Content: "hello"},
	})
	require.NoError(t, err)

	assert.Equal(t, "test response", result.Content)
	assert.Equal(t, "gpt-4o-mini", result.Model)
	assert.Equal(t, 12, result.InputTokenCount())
	assert.Equal(t, 4, result.OutputTokenCount())
}

func TestChatNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(gopenai.ChatCompletionResponse{}); err != nil {
			t.Fatalf("Failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient("test-key",
		WithBaseURL(server.URL+"/v1"),
		WithLogger(logging.NewNop()),
	)

	_, err := client.Chat(context.Background(), []interfaces.Message{
		{Role: "user", Content: "hello"},
	})
	assert.Error(t, err)
}

func TestName(t *testing.T) {
	assert.Equal(t, "openai", NewClient("k").Name())
}
