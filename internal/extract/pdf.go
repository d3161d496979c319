package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfText extracts visible text page by page. A page whose extraction fails
// contributes an empty string; pages are joined with newlines in page order.
func pdfText(data []byte) (text string, err error) {
	// The pdf library panics rather than erroring on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("open pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		pages = append(pages, pageText(reader.Page(i)))
	}

	return strings.Join(pages, "\n"), nil
}

// pageText extracts one page's plain text. Malformed content streams make
// the pdf library panic on some inputs; a bad page degrades to empty text
// rather than aborting the whole document.
func pageText(page pdf.Page) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	if page.V.IsNull() {
		return ""
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return strings.TrimRight(content, "\n")
}
