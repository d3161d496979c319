package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/interview-pack/internal/adapter/llm"
	"github.com/bkyoung/interview-pack/internal/usecase/generate"
)

type stubClient struct {
	resp llm.ProviderResponse
	err  error
	req  Request
}

func (s *stubClient) CreateCompletion(_ context.Context, req Request) (llm.ProviderResponse, error) {
	s.req = req
	return s.resp, s.err
}

func TestProviderGenerate(t *testing.T) {
	client := &stubClient{resp: llm.ProviderResponse{
		Model:   "gpt-4o-mini",
		Content: "**Introduction (Script, 1–2 mins)**",
	}}
	provider := NewProvider(client)

	pack, err := provider.Generate(context.Background(), generate.ProviderRequest{
		System: "sys",
		User:   "usr",
		Model:  "gpt-4o-mini",
	})
	require.NoError(t, err)

	assert.Equal(t, "sys", client.req.System)
	assert.Equal(t, "usr", client.req.User)
	assert.Equal(t, "gpt-4o-mini", client.req.Model)

	assert.Equal(t, "openai", pack.ProviderName)
	assert.Equal(t, "gpt-4o-mini", pack.ModelName)
	assert.Contains(t, pack.Content, "Introduction")
}

func TestProviderGeneratePropagatesError(t *testing.T) {
	wantErr := errors.New("backend down")
	provider := NewProvider(&stubClient{err: wantErr})

	_, err := provider.Generate(context.Background(), generate.ProviderRequest{Model: "gpt-4o-mini"})
	assert.ErrorIs(t, err, wantErr)
}

func TestProviderGenerateNilClient(t *testing.T) {
	provider := NewProvider(nil)
	_, err := provider.Generate(context.Background(), generate.ProviderRequest{})
	require.Error(t, err)
}

var _ generate.Provider = (*Provider)(nil)
