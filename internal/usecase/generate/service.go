package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bkyoung/interview-pack/internal/domain"
)

// ErrEmptyInput is returned when neither an uploaded document nor pasted
// text yields any usable job-description content.
var ErrEmptyInput = errors.New("no job description provided")

// Extractor turns an uploaded document into plain text.
type Extractor interface {
	Text(doc domain.SourceDocument) (string, error)
}

// Scanner runs the compliance pre-flight over extracted text.
type Scanner interface {
	Scan(text string) []domain.Finding
}

// ProviderRequest carries the finished instruction pair to a provider.
type ProviderRequest struct {
	System string
	User   string
	Model  string
}

// Provider is the outbound port to a completion backend.
type Provider interface {
	Generate(ctx context.Context, req ProviderRequest) (domain.GeneratedPack, error)
}

// Deps are the collaborators a Service needs. All are required.
type Deps struct {
	Extractor Extractor
	Scanner   Scanner
	Provider  Provider
}

// Request is one generation (or scan) request. When both a document and
// pasted text are present the document wins unless it extracts to nothing.
type Request struct {
	Document *domain.SourceDocument
	Text     string
	Params   domain.GenerationParameters
}

// Result is a finished pack plus the compliance findings for the same input.
type Result struct {
	Pack     domain.GeneratedPack
	Findings []domain.Finding
}

// Service orchestrates extract, scan, prompt-build, and completion.
type Service struct {
	deps Deps
}

// NewService wires a Service from its collaborators.
func NewService(deps Deps) (*Service, error) {
	if deps.Extractor == nil {
		return nil, errors.New("generate service: extractor is required")
	}
	if deps.Scanner == nil {
		return nil, errors.New("generate service: scanner is required")
	}
	if deps.Provider == nil {
		return nil, errors.New("generate service: provider is required")
	}
	return &Service{deps: deps}, nil
}

// resolveText picks the job-description source and extracts it. The uploaded
// document takes precedence over pasted text, but a document that extracts
// to nothing (a scanned PDF, say) falls back to the pasted text.
func (s *Service) resolveText(req Request) (string, error) {
	if req.Document != nil {
		text, err := s.deps.Extractor.Text(*req.Document)
		if err != nil {
			return "", fmt.Errorf("extract %s: %w", req.Document.Name, err)
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return trimmed, nil
		}
	}
	if trimmed := strings.TrimSpace(req.Text); trimmed != "" {
		return trimmed, nil
	}
	return "", ErrEmptyInput
}

// Scan resolves the input and returns its compliance findings without
// touching the provider.
func (s *Service) Scan(req Request) ([]domain.Finding, error) {
	text, err := s.resolveText(req)
	if err != nil {
		return nil, err
	}
	return s.deps.Scanner.Scan(text), nil
}

// Generate runs the full pipeline: resolve input, scan it, build the
// instruction pair, and request a pack from the provider. Findings never
// block generation; they ride along in the result.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	if err := req.Params.Validate(); err != nil {
		return Result{}, err
	}

	text, err := s.resolveText(req)
	if err != nil {
		return Result{}, err
	}

	findings := s.deps.Scanner.Scan(text)

	system, user, err := BuildPrompt(text, req.Params)
	if err != nil {
		return Result{}, err
	}

	pack, err := s.deps.Provider.Generate(ctx, ProviderRequest{
		System: system,
		User:   user,
		Model:  req.Params.Model,
	})
	if err != nil {
		return Result{}, fmt.Errorf("generate pack: %w", err)
	}

	return Result{Pack: pack, Findings: findings}, nil
}
