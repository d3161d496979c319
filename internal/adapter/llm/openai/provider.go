package openai

import (
	"context"
	"fmt"

	"github.com/bkyoung/interview-pack/internal/adapter/llm"
	"github.com/bkyoung/interview-pack/internal/domain"
	"github.com/bkyoung/interview-pack/internal/usecase/generate"
)

const providerName = "openai"

// Client abstracts the completion client behaviour we need. HTTPClient and
// StaticClient both satisfy it; the choice is made once at startup based on
// whether a credential is configured.
type Client interface {
	CreateCompletion(ctx context.Context, req Request) (llm.ProviderResponse, error)
}

// Provider implements the generate usecase's Provider port.
type Provider struct {
	client Client
}

// NewProvider constructs a Provider backed by the supplied client.
func NewProvider(client Client) *Provider {
	return &Provider{client: client}
}

// Generate sends the instructions to the completion endpoint and translates
// the response into a domain pack.
func (p *Provider) Generate(ctx context.Context, req generate.ProviderRequest) (domain.GeneratedPack, error) {
	if p.client == nil {
		return domain.GeneratedPack{}, fmt.Errorf("openai client missing")
	}

	response, err := p.client.CreateCompletion(ctx, Request{
		Model:  req.Model,
		System: req.System,
		User:   req.User,
	})
	if err != nil {
		return domain.GeneratedPack{}, err
	}

	return domain.GeneratedPack{
		ProviderName: providerName,
		ModelName:    response.Model,
		Content:      response.Content,
	}, nil
}
