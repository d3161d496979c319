// Package openai talks to an OpenAI-compatible chat completion endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bkyoung/interview-pack/internal/adapter/llm"
	llmhttp "github.com/bkyoung/interview-pack/internal/adapter/llm/http"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultTimeout = 120 * time.Second

	// Sampling settings are fixed for a reproducible, professional tone.
	temperature = 0.4
	maxTokens   = 2400
)

// Request carries one generation call to the completion endpoint.
type Request struct {
	Model  string
	System string
	User   string
}

// HTTPClient is an HTTP client for the chat completion API. Each call is a
// single synchronous request; failures are not retried and propagate as
// typed llmhttp errors.
type HTTPClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  llmhttp.Logger
}

// NewHTTPClient creates a new completion HTTP client.
func NewHTTPClient(apiKey string) *HTTPClient {
	return &HTTPClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// SetBaseURL sets a custom base URL (for testing and compatible endpoints).
func (c *HTTPClient) SetBaseURL(url string) {
	c.baseURL = url
}

// SetTimeout sets the HTTP timeout.
func (c *HTTPClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// SetLogger wires a structured call logger.
func (c *HTTPClient) SetLogger(logger llmhttp.Logger) {
	c.logger = logger
}

// CreateCompletion sends the system and user instructions and returns the
// first completion's text. A response with no content yields an empty string.
func (c *HTTPClient) CreateCompletion(ctx context.Context, req Request) (llm.ProviderResponse, error) {
	reqBody := ChatCompletionRequest{
		Model: req.Model,
		Messages: []Message{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return llm.ProviderResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return llm.ProviderResponse{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	if c.logger != nil {
		c.logger.LogRequest(ctx, llmhttp.RequestLog{
			Provider:    providerName,
			Model:       req.Model,
			Timestamp:   start,
			PromptChars: len(req.System) + len(req.User),
			APIKey:      c.apiKey,
		})
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		callErr := llmhttp.NewTimeoutError(providerName, err.Error())
		if ctx.Err() == context.DeadlineExceeded {
			callErr = llmhttp.NewTimeoutError(providerName, "request timed out")
		}
		c.logError(ctx, req.Model, start, callErr)
		return llm.ProviderResponse{}, callErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.ProviderResponse{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		callErr := c.handleErrorResponse(resp.StatusCode, body)
		c.logError(ctx, req.Model, start, callErr)
		return llm.ProviderResponse{}, callErr
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return llm.ProviderResponse{}, fmt.Errorf("parse response: %w", err)
	}

	// An empty choice list means the API returned nothing usable; an empty
	// message content is treated as an empty completion, not an error.
	content := ""
	finishReason := ""
	if len(chatResp.Choices) > 0 {
		content = chatResp.Choices[0].Message.Content
		finishReason = chatResp.Choices[0].FinishReason
	}

	if c.logger != nil {
		c.logger.LogResponse(ctx, llmhttp.ResponseLog{
			Provider:     providerName,
			Model:        chatResp.Model,
			Timestamp:    time.Now(),
			Duration:     time.Since(start),
			TokensIn:     chatResp.Usage.PromptTokens,
			TokensOut:    chatResp.Usage.CompletionTokens,
			StatusCode:   resp.StatusCode,
			FinishReason: finishReason,
		})
	}

	return llm.ProviderResponse{
		Model:        chatResp.Model,
		Content:      content,
		FinishReason: finishReason,
		Usage: llm.UsageMetadata{
			TokensIn:  chatResp.Usage.PromptTokens,
			TokensOut: chatResp.Usage.CompletionTokens,
		},
	}, nil
}

func (c *HTTPClient) logError(ctx context.Context, model string, start time.Time, callErr *llmhttp.Error) {
	if c.logger == nil {
		return
	}
	c.logger.LogError(ctx, llmhttp.ErrorLog{
		Provider:   providerName,
		Model:      model,
		Timestamp:  time.Now(),
		Duration:   time.Since(start),
		Error:      callErr,
		ErrorType:  callErr.Type,
		StatusCode: callErr.StatusCode,
	})
}

// handleErrorResponse converts HTTP error responses to typed errors.
func (c *HTTPClient) handleErrorResponse(statusCode int, body []byte) *llmhttp.Error {
	message := fmt.Sprintf("HTTP %d", statusCode)

	// Prefer the API's structured error message when present.
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	} else if len(body) > 0 && len(body) < 200 {
		message = string(body)
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return llmhttp.NewAuthenticationError(providerName, message)
	case http.StatusTooManyRequests:
		return llmhttp.NewRateLimitError(providerName, message)
	case http.StatusNotFound:
		return llmhttp.NewModelNotFoundError(providerName, message)
	case http.StatusBadRequest:
		return llmhttp.NewInvalidRequestError(providerName, message)
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return llmhttp.NewServiceUnavailableError(providerName, message)
	default:
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeUnknown,
			Message:    message,
			StatusCode: statusCode,
			Provider:   providerName,
		}
	}
}
