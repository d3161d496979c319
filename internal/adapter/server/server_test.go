package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/interview-pack/internal/adapter/llm/openai"
	"github.com/bkyoung/interview-pack/internal/adapter/output/docx"
	"github.com/bkyoung/interview-pack/internal/adapter/output/markdown"
	"github.com/bkyoung/interview-pack/internal/compliance"
	"github.com/bkyoung/interview-pack/internal/domain"
	"github.com/bkyoung/interview-pack/internal/extract"
	"github.com/bkyoung/interview-pack/internal/usecase/generate"
)

type errProvider struct{ err error }

func (p errProvider) Generate(context.Context, generate.ProviderRequest) (domain.GeneratedPack, error) {
	return domain.GeneratedPack{}, p.err
}

func fixedClock() string { return "20250301_0930" }

func defaultParams() domain.GenerationParameters {
	return domain.GenerationParameters{
		Seniority:          "Senior",
		Region:             "USA",
		PerSection:         5,
		IncludeLegalFooter: true,
		Model:              "gpt-4o-mini",
	}
}

func newTestServer(t *testing.T, provider generate.Provider) *Server {
	t.Helper()
	if provider == nil {
		provider = openai.NewProvider(openai.NewStaticClient())
	}
	service, err := generate.NewService(generate.Deps{
		Extractor: extract.New(),
		Scanner:   compliance.NewScanner(),
		Provider:  provider,
	})
	require.NoError(t, err)

	srv, err := New(Config{Port: 0, DefaultParams: defaultParams()}, Deps{
		Service:  service,
		Markdown: markdown.NewWriter(fixedClock),
		Docx:     docx.NewWriter(fixedClock),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return srv
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIndexServed(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "Interview Pack Generator")
	assert.Contains(t, body, "Download Markdown")
	assert.Contains(t, body, "Download DOCX")
	assert.Contains(t, body, "Clear inputs")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestScanEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := postJSON(t, srv.Handler(), "/api/scan", GenerateRequest{
		Text: "Looking for a young engineer with a clean driving record.",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Findings, 2)
	assert.Equal(t, "young", resp.Findings[0].Label)
	assert.Equal(t, "clean driving record", resp.Findings[1].Label)
}

func TestScanEndpointCleanText(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := postJSON(t, srv.Handler(), "/api/scan", GenerateRequest{Text: "A perfectly neutral JD."})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"findings":[]}`, rec.Body.String())
}

func TestGenerateEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := postJSON(t, srv.Handler(), "/api/generate", GenerateRequest{
		Text:      "Senior Data Engineer. Must be a US citizen.",
		Seniority: "Director",
		Region:    "EMEA",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "openai", resp.Provider)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
	assert.Equal(t, "Interview_Questions_20250301_0930.md", resp.Filename)
	assert.Contains(t, resp.Markdown, "**Introduction (Script, 1–2 mins)**")
	require.Len(t, resp.Findings, 1)
	assert.Equal(t, "must be a us/uk/eu citizen", resp.Findings[0].Label)
}

func TestGenerateEndpointMultipartUpload(t *testing.T) {
	srv := newTestServer(t, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "jd.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("A job description from an upload."))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("text", "pasted text that loses to the upload"))
	require.NoError(t, mw.WriteField("perSection", "7"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/generate", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Markdown)
}

func TestGenerateEndpointValidation(t *testing.T) {
	srv := newTestServer(t, nil)

	t.Run("empty input", func(t *testing.T) {
		rec := postJSON(t, srv.Handler(), "/api/generate", GenerateRequest{Text: "   "})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "no job description")
	})

	t.Run("unknown region", func(t *testing.T) {
		rec := postJSON(t, srv.Handler(), "/api/generate", GenerateRequest{Text: "JD", Region: "Mars"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("per-section out of range", func(t *testing.T) {
		rec := postJSON(t, srv.Handler(), "/api/generate", GenerateRequest{Text: "JD", PerSection: 42})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unsupported content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader("plain"))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGenerateEndpointProviderFailure(t *testing.T) {
	srv := newTestServer(t, errProvider{err: errors.New("backend exploded")})

	rec := postJSON(t, srv.Handler(), "/api/generate", GenerateRequest{Text: "JD"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGenerateDocxEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := postJSON(t, srv.Handler(), "/api/generate/docx", GenerateRequest{Text: "A JD."})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Interview_Questions_20250301_0930.docx")
	// DOCX containers are zip archives.
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/generate", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
