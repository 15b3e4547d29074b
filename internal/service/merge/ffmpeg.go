package merge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// normalization applied to every input before concatenation; the concat
// filter requires identical sample rates and channel layouts across inputs.
const inputNorm = "aresample=44100,aformat=sample_fmts=s16:channel_layouts=mono"

// FFmpeg merges parts by decoding and re-encoding them through the ffmpeg
// binary. An optional silence gap is inserted between parts from a single
// shared anullsrc input fanned out with asplit.
type FFmpeg struct {
	bin    string
	gap    time.Duration
	logger *zap.SugaredLogger
}

func NewFFmpeg(gap time.Duration, logger *zap.SugaredLogger) *FFmpeg {
	return &FFmpeg{bin: "ffmpeg", gap: gap, logger: logger}
}

func (m *FFmpeg) Merge(ctx context.Context, partPaths []string, outPath string) error {
	if len(partPaths) == 0 {
		return &MergeError{Err: errors.New("no parts to merge")}
	}
	if _, err := exec.LookPath(m.bin); err != nil {
		return &MergeError{Err: ErrFFmpegNotFound}
	}

	tmp := outPath + ".partial"
	args := buildArgs(partPaths, m.gap, tmp)

	started := time.Now()
	cmd := exec.CommandContext(ctx, m.bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		_ = os.Remove(tmp)
		return &MergeError{Err: fmt.Errorf("ffmpeg: %v: %s", err, lastLine(stderr.String()))}
	}
	if err := os.Rename(tmp, outPath); err != nil {
		_ = os.Remove(tmp)
		return &MergeError{Err: err}
	}
	m.logger.Debugw("ffmpeg merge done", "parts", len(partPaths), "out", outPath, "took", time.Since(started).String())
	return nil
}

// buildArgs assembles the full ffmpeg invocation: every part as an input in
// index order, one silence source when a gap is requested, a concat filter
// over the normalized streams, and the mp3 encode to the temporary path.
func buildArgs(partPaths []string, gap time.Duration, outPath string) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	for _, p := range partPaths {
		args = append(args, "-i", p)
	}

	n := len(partPaths)
	var filter strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&filter, "[%d:a]%s[p%d];", i, inputNorm, i)
	}

	withGaps := gap > 0 && n > 1
	if withGaps {
		args = append(args,
			"-f", "lavfi",
			"-t", fmt.Sprintf("%.3f", gap.Seconds()),
			"-i", "anullsrc=channel_layout=mono:sample_rate=44100",
		)
		fmt.Fprintf(&filter, "[%d:a]asplit=%d", n, n-1)
		for i := 0; i < n-1; i++ {
			fmt.Fprintf(&filter, "[g%d]", i)
		}
		filter.WriteString(";")
		for i := 0; i < n; i++ {
			fmt.Fprintf(&filter, "[p%d]", i)
			if i < n-1 {
				fmt.Fprintf(&filter, "[g%d]", i)
			}
		}
		fmt.Fprintf(&filter, "concat=n=%d:v=0:a=1[out]", 2*n-1)
	} else {
		for i := 0; i < n; i++ {
			fmt.Fprintf(&filter, "[p%d]", i)
		}
		fmt.Fprintf(&filter, "concat=n=%d:v=0:a=1[out]", n)
	}

	// The muxer must be forced: the temporary .partial suffix matches no
	// format, so ffmpeg cannot guess it from the output filename.
	return append(args,
		"-filter_complex", filter.String(),
		"-map", "[out]",
		"-codec:a", "libmp3lame", "-q:a", "2",
		"-f", "mp3",
		outPath,
	)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
