package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDF extracts the embedded text layer of a PDF document.
// Scanned (image-only) PDFs have no text layer and yield empty output.
type PDF struct{}

func (PDF) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	fonts := make(map[string]*pdf.Font)
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("extract pdf %s: page %d: %w", path, i, err)
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}
	return strings.Join(pages, "\n"), nil
}
