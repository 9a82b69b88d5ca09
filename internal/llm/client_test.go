package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelens-ai/pydebug/domain"
)

func completionResponse(content string) ChatResponse {
	return ChatResponse{
		ID:    "chatcmpl-test",
		Model: "gpt-4o-mini",
		Choices: []Choice{
			{Message: Message{Role: "assistant", Content: content}, FinishReason: "stop"},
		},
	}
}

func TestExplainSuccess(t *testing.T) {
	var gotReq ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionResponse(
			"### Explanation\nThe variable is unused.\n\n### Suggested Fix\n```python\npass\n```\n\n### Tips\nNone.\n"))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, nil)

	findings := []domain.Finding{
		{RuleID: domain.RuleUnusedVariable, Location: domain.SourceLocation{Line: 2}, Message: "variable 'x' is assigned but never used"},
	}
	result := client.Explain(context.Background(), "def f():\n  x = 1\n", findings, "")

	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Equal(t, "The variable is unused.", result.Text)
	assert.Equal(t, "pass", result.SuggestedFix)
	assert.Equal(t, "None.", result.Tips)
	assert.Equal(t, "gpt-4o-mini", result.ModelUsed)
	assert.Empty(t, result.ErrorMessage)

	// The request carried the source and the findings
	require.Len(t, gotReq.Messages, 1)
	assert.Contains(t, gotReq.Messages[0].Content, "def f():")
	assert.Contains(t, gotReq.Messages[0].Content, "UNUSED_VARIABLE")
}

func TestExplainMissingAPIKey(t *testing.T) {
	client := NewClient(Config{}, nil)

	result := client.Explain(context.Background(), "x = 1\n", nil, "")

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "API key")
}

func TestExplainAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "bad-key", BaseURL: server.URL}, nil)

	result := client.Explain(context.Background(), "x = 1\n", nil, "")

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "Incorrect API key provided")
}

func TestExplainTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(completionResponse("too late"))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 50 * time.Millisecond}, nil)

	result := client.Explain(context.Background(), "x = 1\n", nil, "")

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.ErrorMessage)
}

func TestExplainContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(completionResponse("too late"))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	result := client.Explain(ctx, "x = 1\n", nil, "")

	require.NotNil(t, result)
	assert.False(t, result.Success)
}

func TestExplainEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ChatResponse{ID: "chatcmpl-test"})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, nil)

	result := client.Explain(context.Background(), "x = 1\n", nil, "")

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "empty response")
}
