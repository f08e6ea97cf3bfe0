// Package pdftext reads the plain text of PDF pages for the extraction
// pipeline. Pages that cannot be decoded yield an empty string rather than
// failing the whole document; the customs PDFs routinely mix readable and
// image-only pages.
package pdftext

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Pages returns the plain text of every page of the PDF at path, in order.
// Unreadable or empty pages come back as "" so the caller keeps page
// positions intact.
func Pages(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	out := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			out = append(out, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			out = append(out, "")
			continue
		}
		out = append(out, text)
	}
	return out, nil
}
