// Package extract normalizes uploaded job description artifacts into plain
// text. Supported inputs are .txt, .md, .docx and .pdf.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bkyoung/interview-pack/internal/domain"
)

// ErrUnsupportedType is returned for file extensions the extractor does not
// handle.
var ErrUnsupportedType = errors.New("unsupported file type: upload TXT, MD, DOCX, or PDF")

// ErrMissingCapability is returned when the bytes for a supported extension
// cannot be parsed as that format, so no text can be produced. It is distinct
// from ErrUnsupportedType so callers can give actionable guidance instead of
// silently showing empty text.
var ErrMissingCapability = errors.New("document cannot be parsed")

// Extractor converts source documents to plain text.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Text produces a single string from the document's bytes based on its
// declared extension.
func (e *Extractor) Text(doc domain.SourceDocument) (string, error) {
	switch strings.ToLower(filepath.Ext(doc.Name)) {
	case ".txt", ".md":
		return decodePlain(doc.Data), nil
	case ".docx":
		text, err := docxText(doc.Data)
		if err != nil {
			return "", fmt.Errorf("%w: %s is not a readable DOCX document: %v", ErrMissingCapability, doc.Name, err)
		}
		return text, nil
	case ".pdf":
		text, err := pdfText(doc.Data)
		if err != nil {
			return "", fmt.Errorf("%w: %s is not a readable PDF document: %v", ErrMissingCapability, doc.Name, err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w (got %q)", ErrUnsupportedType, doc.Name)
	}
}
