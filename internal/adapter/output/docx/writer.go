// Package docx renders generated interview packs as Word documents.
package docx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bkyoung/interview-pack/internal/adapter/output/markdown"
	"github.com/bkyoung/interview-pack/internal/domain"
)

const contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type clock func() string

// Writer renders interview packs into DOCX files.
type Writer struct {
	now clock
}

// NewWriter constructs a DOCX writer with a timestamp supplier.
func NewWriter(now clock) *Writer {
	return &Writer{now: now}
}

// Render produces the DOCX document for a pack without touching disk. The
// content is cleaned the same way as the Markdown rendition first, so both
// formats agree on structure.
func (w *Writer) Render(content string) (domain.RenderedDocument, error) {
	data, err := buildPackage(classifyAll(markdown.Clean(content)))
	if err != nil {
		return domain.RenderedDocument{}, fmt.Errorf("build docx: %w", err)
	}
	return domain.RenderedDocument{
		Filename:    fmt.Sprintf("Interview_Questions_%s.docx", w.now()),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Write persists the DOCX document under outputDir and returns its path.
func (w *Writer) Write(ctx context.Context, outputDir, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	doc, err := w.Render(content)
	if err != nil {
		return "", err
	}
	path := filepath.Join(outputDir, doc.Filename)
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		return "", fmt.Errorf("write docx: %w", err)
	}

	return path, nil
}
