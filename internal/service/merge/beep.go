package merge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
	"go.uber.org/zap"
)

// resampleQuality for parts whose sample rate differs from the first part.
const resampleQuality = 4

// Beep merges parts without external binaries: each part is decoded with
// beep (mp3 or wav), resampled to the first part's rate if needed, and the
// whole sequence is encoded as one WAV stream.
type Beep struct {
	gap    time.Duration
	logger *zap.SugaredLogger
}

func NewBeep(gap time.Duration, logger *zap.SugaredLogger) *Beep {
	return &Beep{gap: gap, logger: logger}
}

func (m *Beep) Merge(ctx context.Context, partPaths []string, outPath string) error {
	if len(partPaths) == 0 {
		return &MergeError{Err: errors.New("no parts to merge")}
	}

	var (
		streams []beep.Streamer
		closers []beep.StreamSeekCloser
		format  beep.Format
	)
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	for i, path := range partPaths {
		if err := ctx.Err(); err != nil {
			return &MergeError{Err: err}
		}
		streamer, f, err := decodeFile(path)
		if err != nil {
			return &MergeError{Err: fmt.Errorf("decode part %s: %w", path, err)}
		}
		closers = append(closers, streamer)

		if i == 0 {
			format = f
			streams = append(streams, streamer)
		} else if f.SampleRate != format.SampleRate {
			streams = append(streams, beep.Resample(resampleQuality, f.SampleRate, format.SampleRate, streamer))
		} else {
			streams = append(streams, streamer)
		}
		if m.gap > 0 && i < len(partPaths)-1 {
			streams = append(streams, beep.Silence(format.SampleRate.N(m.gap)))
		}
	}

	started := time.Now()
	tmp := outPath + ".partial"
	out, err := os.Create(tmp)
	if err != nil {
		return &MergeError{Err: err}
	}
	if err := wav.Encode(out, beep.Seq(streams...), format); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return &MergeError{Err: fmt.Errorf("encode wav: %w", err)}
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return &MergeError{Err: err}
	}
	if err := os.Rename(tmp, outPath); err != nil {
		_ = os.Remove(tmp)
		return &MergeError{Err: err}
	}
	m.logger.Debugw("wav merge done", "parts", len(partPaths), "out", outPath, "took", time.Since(started).String())
	return nil
}

func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return mp3.Decode(f)
	case ".wav":
		return wav.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported part format %q", filepath.Ext(path))
	}
}
