package fetch

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFTextExtractor turns PDF bytes into per-page plain text.
type PDFTextExtractor interface {
	ExtractPages(data []byte) ([]string, error)
}

// PDFReader extracts text with ledongthuc/pdf.
type PDFReader struct{}

// ExtractPages returns the plain text of every page. Pages whose text
// cannot be decoded are skipped; the document fails only when no page
// yields text.
func (PDFReader) ExtractPages(data []byte) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdf yielded no text pages")
	}
	return pages, nil
}
