package merge

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Merger combines ordered part files into one audio file at outPath.
// Parts are decoded and re-encoded as a single continuous stream; byte
// concatenation of encoded containers is not valid for mp3/wav.
// The output is written to a temporary path and renamed into place, so a
// failed merge never leaves a half-written file at outPath.
type Merger interface {
	Merge(ctx context.Context, partPaths []string, outPath string) error
}

// ErrFFmpegNotFound names the missing external binary explicitly so the
// failure is actionable rather than a generic exec error.
var ErrFFmpegNotFound = errors.New("ffmpeg binary not found in PATH (install ffmpeg for mp3 output, or use a .wav output path)")

// MergeError wraps any failure of the concatenation stage.
type MergeError struct {
	Err error
}

func (e *MergeError) Error() string { return fmt.Sprintf("merge: %v", e.Err) }

func (e *MergeError) Unwrap() error { return e.Err }

// ForOutput selects a merger by the output file extension: .mp3 uses the
// ffmpeg binary, .wav the pure-Go encoder.
func ForOutput(outPath string, gap time.Duration, logger *zap.SugaredLogger) (Merger, error) {
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".mp3":
		return NewFFmpeg(gap, logger), nil
	case ".wav":
		return NewBeep(gap, logger), nil
	default:
		return nil, &MergeError{Err: fmt.Errorf("unsupported output format %q (use .mp3 or .wav)", filepath.Ext(outPath))}
	}
}
