package converter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"PDFNarrator/internal/service/chunker"
	"PDFNarrator/internal/service/extract"
	"PDFNarrator/internal/service/merge"
	"PDFNarrator/internal/service/parts"
	"PDFNarrator/internal/service/tts"
)

// Options control one conversion pipeline.
type Options struct {
	MaxChars     int           // per-request chunk budget in runes
	OutputDir    string        // where parts and the merged file land
	Merge        bool          // false returns the ordered parts as the result
	KeepParts    bool          // keep part files after a successful merge
	Gap          time.Duration // silence between merged parts
	Workers      int           // concurrent synthesis requests
	Retries      int           // extra attempts per segment for transient failures
	RetryBackoff time.Duration // initial backoff; doubles per attempt
}

// Result of one conversion.
type Result struct {
	OutputPath string   // merged file; empty in no-merge mode or for an empty document
	PartPaths  []string // ordered part files still on disk
	Segments   int
}

// Converter drives the pipeline for one document:
// extract -> chunk -> synthesize all segments -> write parts -> merge.
type Converter struct {
	synth     tts.Synthesizer
	writer    *parts.Writer
	newMerger func(outPath string) (merge.Merger, error)
	opts      Options
	logger    *zap.SugaredLogger
}

func New(synth tts.Synthesizer, opts Options, logger *zap.SugaredLogger) *Converter {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Converter{
		synth:  synth,
		writer: parts.NewWriter(logger),
		newMerger: func(outPath string) (merge.Merger, error) {
			return merge.ForOutput(outPath, opts.Gap, logger)
		},
		opts:   opts,
		logger: logger,
	}
}

// Convert runs the full pipeline. outputPath may be empty, in which case the
// merged file is named after the input's stem inside OutputDir. An empty
// document is terminal success: no parts, no output file, no error.
func (c *Converter) Convert(ctx context.Context, inputPath, outputPath string) (*Result, error) {
	extractor, err := extract.ForFile(inputPath)
	if err != nil {
		return nil, err
	}
	text, err := extractor.Extract(inputPath)
	if err != nil {
		return nil, err
	}

	segments, err := chunker.Split(text, c.opts.MaxChars)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		c.logger.Infow("document contains no text, nothing to synthesize", "input", inputPath)
		return &Result{}, nil
	}
	if limit := c.synth.MaxInputChars(); c.opts.MaxChars > limit {
		c.logger.Warnw("MAX_CHARS exceeds the provider input limit, oversized segments will be rejected",
			"max_chars", c.opts.MaxChars, "provider_limit", limit)
	}
	c.logger.Infow("synthesizing document", "input", inputPath, "segments", len(segments), "workers", c.opts.Workers)

	audio, err := c.synthesizeAll(ctx, segments)
	if err != nil {
		return nil, err
	}

	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	partPaths, err := c.writer.Write(audio, c.opts.OutputDir, stem)
	if err != nil {
		return nil, err
	}

	if !c.opts.Merge {
		return &Result{PartPaths: partPaths, Segments: len(segments)}, nil
	}

	if outputPath == "" {
		outputPath = filepath.Join(c.opts.OutputDir, stem+".mp3")
	}
	merger, err := c.newMerger(outputPath)
	if err != nil {
		return nil, err
	}
	if err := merger.Merge(ctx, partPaths, outputPath); err != nil {
		return nil, err
	}

	result := &Result{OutputPath: outputPath, Segments: len(segments)}
	if c.opts.KeepParts {
		result.PartPaths = partPaths
	} else {
		for _, p := range partPaths {
			if rmErr := os.Remove(p); rmErr != nil {
				c.logger.Warnw("failed to remove part after merge", "path", p, "error", rmErr)
			}
		}
	}
	return result, nil
}

// synthesizeAll fans the segments out over a bounded worker pool and collects
// the parts into a per-index slot (each slot is written exactly once). Nothing
// is handed to the part writer before every segment has completed; a fatal
// segment cancels the in-flight requests of its siblings.
func (c *Converter) synthesizeAll(ctx context.Context, segments []chunker.Segment) ([]tts.Part, error) {
	results := make([]tts.Part, len(segments))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for _, seg := range segments {
		g.Go(func() error {
			part, err := c.synthesizeOne(ctx, seg)
			if err != nil {
				return err
			}
			results[seg.Index] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// synthesizeOne applies the uniform retry policy to a single segment: only
// transient provider errors are retried, with exponential backoff, the same
// bounded budget at every index.
func (c *Converter) synthesizeOne(ctx context.Context, seg chunker.Segment) (tts.Part, error) {
	if limit := c.synth.MaxInputChars(); len([]rune(seg.Content)) > limit {
		return tts.Part{}, &tts.SizeError{Index: seg.Index, Len: len([]rune(seg.Content)), Limit: limit}
	}

	var lastErr error
	for attempt := 0; attempt <= c.opts.Retries; attempt++ {
		if attempt > 0 {
			backoff := c.opts.RetryBackoff << (attempt - 1)
			c.logger.Warnw("retrying segment after transient failure",
				"index", seg.Index, "attempt", attempt, "backoff", backoff.String(), "error", lastErr)
			select {
			case <-ctx.Done():
				return tts.Part{}, &tts.SynthesisError{Index: seg.Index, Err: ctx.Err()}
			case <-time.After(backoff):
			}
		}

		part, err := c.synth.Synthesize(ctx, tts.Request{Index: seg.Index, Text: seg.Content})
		if err == nil {
			if part.Index != seg.Index {
				return tts.Part{}, &tts.SynthesisError{
					Index: seg.Index,
					Err:   fmt.Errorf("provider returned part for index %d", part.Index),
				}
			}
			return part, nil
		}
		lastErr = err
		if !errors.Is(err, tts.ErrTransient) {
			break
		}
	}
	return tts.Part{}, &tts.SynthesisError{Index: seg.Index, Err: lastErr}
}
