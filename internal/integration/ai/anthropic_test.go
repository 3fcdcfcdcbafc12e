package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"azhaboost/pkg/utils"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewGenerator_WithoutKeyIsDisabled(t *testing.T) {
	g := NewGenerator(utils.AIConfig{}, zaptest.NewLogger(t))

	_, err := g.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAnthropicGenerator_Generate(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "{\"titleEn\":\"x\"}"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer server.Close()

	g := NewAnthropicGenerator(utils.AIConfig{APIKey: "test-key", Model: "claude-test", MaxTokens: 1000},
		zaptest.NewLogger(t), option.WithBaseURL(server.URL))

	parts, err := g.Generate(context.Background(), "optimize this")
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "text", parts[0].Type)
	assert.Equal(t, `{"titleEn":"x"}`, parts[0].Text)

	assert.Equal(t, "claude-test", got["model"])
	assert.EqualValues(t, 1000, got["max_tokens"])
	messages := got["messages"].([]any)
	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].(map[string]any)["role"])
}

func TestAnthropicGenerator_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"boom"}}`))
	}))
	defer server.Close()

	g := NewAnthropicGenerator(utils.AIConfig{APIKey: "k", Model: "m", MaxTokens: 10},
		zaptest.NewLogger(t), option.WithBaseURL(server.URL))

	_, err := g.Generate(context.Background(), "p")
	assert.Error(t, err)
}
