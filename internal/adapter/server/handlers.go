package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	llmhttp "github.com/bkyoung/interview-pack/internal/adapter/llm/http"
	"github.com/bkyoung/interview-pack/internal/domain"
	"github.com/bkyoung/interview-pack/internal/extract"
	"github.com/bkyoung/interview-pack/internal/usecase/generate"
)

// maxUploadBytes caps uploaded job descriptions at 10 MiB.
const maxUploadBytes = 10 << 20

// GenerateRequest is the JSON request body for the generate and scan
// endpoints. Multipart submissions carry the same fields as form values plus
// an optional "file" part.
type GenerateRequest struct {
	Text               string `json:"text"`
	Seniority          string `json:"seniority"`
	Region             string `json:"region"`
	PerSection         int    `json:"perSection"`
	IncludeLegalFooter *bool  `json:"includeLegalFooter"`
	Model              string `json:"model"`
}

// GenerateResponse is the JSON response for a successful generation.
type GenerateResponse struct {
	Markdown string           `json:"markdown"`
	Findings []domain.Finding `json:"findings"`
	Provider string           `json:"provider"`
	Model    string           `json:"model"`
	Filename string           `json:"filename"`
}

// ScanResponse is the JSON response for a compliance scan.
type ScanResponse struct {
	Findings []domain.Finding `json:"findings"`
}

// parseRequest turns an incoming HTTP request into a usecase request,
// accepting either a JSON body or a multipart form with an optional upload.
// Missing parameters fall back to the configured defaults.
func (s *Server) parseRequest(r *http.Request) (generate.Request, error) {
	req := GenerateRequest{}
	var doc *domain.SourceDocument

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return generate.Request{}, fmt.Errorf("invalid content type: %w", err)
	}

	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return generate.Request{}, fmt.Errorf("parse form: %w", err)
		}
		req.Text = r.FormValue("text")
		req.Seniority = r.FormValue("seniority")
		req.Region = r.FormValue("region")
		req.Model = r.FormValue("model")
		if v := r.FormValue("perSection"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return generate.Request{}, fmt.Errorf("perSection must be a number: %w", err)
			}
			req.PerSection = n
		}
		if v := r.FormValue("includeLegalFooter"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return generate.Request{}, fmt.Errorf("includeLegalFooter must be a boolean: %w", err)
			}
			req.IncludeLegalFooter = &b
		}

		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			data, readErr := io.ReadAll(io.LimitReader(file, maxUploadBytes))
			if readErr != nil {
				return generate.Request{}, fmt.Errorf("read upload: %w", readErr)
			}
			doc = &domain.SourceDocument{Name: header.Filename, Data: data}
		} else if !errors.Is(err, http.ErrMissingFile) {
			return generate.Request{}, fmt.Errorf("read upload: %w", err)
		}

	case mediaType == "application/json":
		if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&req); err != nil {
			return generate.Request{}, fmt.Errorf("invalid request body: %w", err)
		}

	default:
		return generate.Request{}, fmt.Errorf("unsupported content type %q", mediaType)
	}

	params := s.defaults
	if req.Seniority != "" {
		params.Seniority = req.Seniority
	}
	if req.Region != "" {
		params.Region = req.Region
	}
	if req.PerSection != 0 {
		params.PerSection = req.PerSection
	}
	if req.Model != "" {
		params.Model = req.Model
	}
	if req.IncludeLegalFooter != nil {
		params.IncludeLegalFooter = *req.IncludeLegalFooter
	}

	return generate.Request{Document: doc, Text: req.Text, Params: params}, nil
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	findings, err := s.service.Scan(req)
	if err != nil {
		s.errorForPipeline(w, err)
		return
	}
	if findings == nil {
		findings = []domain.Finding{}
	}

	s.jsonResponse(w, http.StatusOK, ScanResponse{Findings: findings})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.Generate(r.Context(), req)
	if err != nil {
		s.errorForPipeline(w, err)
		return
	}
	if result.Findings == nil {
		result.Findings = []domain.Finding{}
	}

	doc := s.markdown.Render(result.Pack.Content)
	s.jsonResponse(w, http.StatusOK, GenerateResponse{
		Markdown: strings.TrimRight(string(doc.Data), "\n"),
		Findings: result.Findings,
		Provider: result.Pack.ProviderName,
		Model:    result.Pack.ModelName,
		Filename: doc.Filename,
	})
}

func (s *Server) handleGenerateDocx(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.Generate(r.Context(), req)
	if err != nil {
		s.errorForPipeline(w, err)
		return
	}

	doc, err := s.docx.Render(result.Pack.Content)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Data)
}

// errorForPipeline maps usecase and provider errors to HTTP statuses: bad
// input is the caller's fault, provider failures surface as a bad gateway.
func (s *Server) errorForPipeline(w http.ResponseWriter, err error) {
	var llmErr *llmhttp.Error
	switch {
	case errors.Is(err, generate.ErrEmptyInput):
		s.errorResponse(w, http.StatusBadRequest, "no job description provided; upload a file or paste text")
	case errors.Is(err, extract.ErrUnsupportedType):
		s.errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, extract.ErrMissingCapability):
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrInvalidParameters):
		s.errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &llmErr):
		s.errorResponse(w, http.StatusBadGateway, llmErr.Message)
	default:
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", slog.String("error", err.Error()))
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
