// Package markdown renders generated interview packs as Markdown documents.
package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bkyoung/interview-pack/internal/domain"
)

const contentType = "text/markdown; charset=utf-8"

var (
	fenceRe     = regexp.MustCompile("`{3,}")
	blankRunsRe = regexp.MustCompile(`\n{3,}`)
)

// Clean normalises model output for presentation: code fences are stripped,
// runs of three or more newlines collapse to one blank line, and surrounding
// whitespace is trimmed. Clean is idempotent.
func Clean(text string) string {
	text = fenceRe.ReplaceAllString(text, "")
	text = blankRunsRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

type clock func() string

// Writer renders interview packs into Markdown files.
type Writer struct {
	now clock
}

// NewWriter constructs a Markdown writer with a timestamp supplier. The
// supplier's value becomes part of the filename, so it should be stable for
// the duration of one generation.
func NewWriter(now clock) *Writer {
	return &Writer{now: now}
}

// Render produces the Markdown document for a pack without touching disk.
func (w *Writer) Render(content string) domain.RenderedDocument {
	cleaned := Clean(content)
	return domain.RenderedDocument{
		Filename:    fmt.Sprintf("Interview_Questions_%s.md", w.now()),
		ContentType: contentType,
		Data:        []byte(cleaned + "\n"),
	}
}

// Write persists the Markdown document under outputDir and returns its path.
func (w *Writer) Write(ctx context.Context, outputDir, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	doc := w.Render(content)
	path := filepath.Join(outputDir, doc.Filename)
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		return "", fmt.Errorf("write markdown: %w", err)
	}

	return path, nil
}
