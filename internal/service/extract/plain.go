package extract

import (
	"fmt"
	"os"
)

// Plain reads a text file as-is.
type Plain struct{}

func (Plain) Extract(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}
