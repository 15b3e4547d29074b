package parts

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"PDFNarrator/internal/service/tts"
)

// WriteError reports which part failed to persist. Files written before the
// failure are removed, so a failed run leaves no partial part set behind.
type WriteError struct {
	Index int
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write part %d: %v", e.Index, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Writer persists synthesized parts as numbered files. The zero-padded index
// in the filename makes lexicographic directory order equal playback order,
// independent of the in-memory list.
type Writer struct {
	logger *zap.SugaredLogger
}

func NewWriter(logger *zap.SugaredLogger) *Writer {
	return &Writer{logger: logger}
}

// Filename builds the part filename for one index: <stem>_part<NNNN>.<format>.
func Filename(stem string, index int, format string) string {
	return fmt.Sprintf("%s_part%04d.%s", stem, index, format)
}

// Write persists each part under dir and returns the paths in index order.
func (w *Writer) Write(audio []tts.Part, dir, stem string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}

	paths := make([]string, 0, len(audio))
	for _, p := range audio {
		path := filepath.Join(dir, Filename(stem, p.Index, p.Format))
		if err := os.WriteFile(path, p.Audio, 0o644); err != nil {
			for _, written := range paths {
				_ = os.Remove(written)
			}
			return nil, &WriteError{Index: p.Index, Err: err}
		}
		paths = append(paths, path)
	}
	w.logger.Debugw("parts written", "dir", dir, "count", len(paths))
	return paths, nil
}
