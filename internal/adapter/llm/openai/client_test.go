package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmhttp "github.com/bkyoung/interview-pack/internal/adapter/llm/http"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *HTTPClient) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewHTTPClient("test-key")
	client.SetBaseURL(server.URL)
	return server, client
}

func TestCreateCompletionSuccess(t *testing.T) {
	var captured ChatCompletionRequest
	var auth string

	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(ChatCompletionResponse{
			Model: "gpt-4o-mini",
			Choices: []Choice{{
				Message:      Message{Role: "assistant", Content: "**Introduction (Script, 1–2 mins)**\n• Welcome."},
				FinishReason: "stop",
			}},
			Usage: Usage{PromptTokens: 900, CompletionTokens: 1200, TotalTokens: 2100},
		})
	})

	resp, err := client.CreateCompletion(context.Background(), Request{
		Model:  "gpt-4o-mini",
		System: "system instructions",
		User:   "user instructions",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, "gpt-4o-mini", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "system instructions", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.InDelta(t, 0.4, captured.Temperature, 1e-9)
	assert.Equal(t, 2400, captured.MaxTokens)

	assert.Equal(t, "gpt-4o-mini", resp.Model)
	assert.Contains(t, resp.Content, "Introduction")
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 900, resp.Usage.TokensIn)
	assert.Equal(t, 1200, resp.Usage.TokensOut)
}

func TestCreateCompletionErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantType   llmhttp.ErrorType
		wantMsg    string
	}{
		{
			name:       "unauthorized",
			statusCode: http.StatusUnauthorized,
			body:       `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`,
			wantType:   llmhttp.ErrTypeAuthentication,
			wantMsg:    "Incorrect API key provided",
		},
		{
			name:       "forbidden",
			statusCode: http.StatusForbidden,
			wantType:   llmhttp.ErrTypeAuthentication,
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			body:       `{"error": {"message": "Rate limit reached", "type": "tokens"}}`,
			wantType:   llmhttp.ErrTypeRateLimit,
			wantMsg:    "Rate limit reached",
		},
		{
			name:       "model not found",
			statusCode: http.StatusNotFound,
			body:       `{"error": {"message": "The model does not exist", "type": "invalid_request_error"}}`,
			wantType:   llmhttp.ErrTypeModelNotFound,
		},
		{
			name:       "bad request",
			statusCode: http.StatusBadRequest,
			wantType:   llmhttp.ErrTypeInvalidRequest,
		},
		{
			name:       "service unavailable",
			statusCode: http.StatusServiceUnavailable,
			wantType:   llmhttp.ErrTypeServiceUnavailable,
		},
		{
			name:       "unmapped status",
			statusCode: http.StatusTeapot,
			wantType:   llmhttp.ErrTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				if tt.body != "" {
					w.Write([]byte(tt.body))
				}
			})

			_, err := client.CreateCompletion(context.Background(), Request{Model: "gpt-4o-mini"})
			require.Error(t, err)

			var llmErr *llmhttp.Error
			require.ErrorAs(t, err, &llmErr)
			assert.Equal(t, tt.wantType, llmErr.Type)
			assert.Equal(t, "openai", llmErr.Provider)
			if tt.wantMsg != "" {
				assert.Contains(t, llmErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestCreateCompletionNoRetry(t *testing.T) {
	calls := 0
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.CreateCompletion(context.Background(), Request{Model: "gpt-4o-mini"})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "a failed call must not be retried")
}

func TestCreateCompletionEmptyChoices(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ChatCompletionResponse{Model: "gpt-4o-mini"})
	})

	resp, err := client.CreateCompletion(context.Background(), Request{Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.Empty(t, resp.Content)
	assert.Empty(t, resp.FinishReason)
}

func TestCreateCompletionMalformedBody(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := client.CreateCompletion(context.Background(), Request{Model: "gpt-4o-mini"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse response")
}

func TestCreateCompletionContextCancelled(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.CreateCompletion(ctx, Request{Model: "gpt-4o-mini"})
	require.Error(t, err)

	var llmErr *llmhttp.Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, llmhttp.ErrTypeTimeout, llmErr.Type)
}
