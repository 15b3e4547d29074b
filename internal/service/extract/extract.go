package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Extractor produces the plain text of a source document.
type Extractor interface {
	Extract(path string) (string, error)
}

// ErrUnsupportedFormat is returned when no extractor handles the input type.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// ForFile selects an extractor by file extension.
func ForFile(path string) (Extractor, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return PDF{}, nil
	case ".txt", ".md", ".text":
		return Plain{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
