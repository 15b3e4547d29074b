package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"PDFNarrator/internal/config"
	"PDFNarrator/internal/service/converter"
	"PDFNarrator/internal/service/merge"
	"PDFNarrator/internal/service/player"
	"PDFNarrator/internal/service/tts"
	eltts "PDFNarrator/internal/service/tts/elevenlabs"
	gtts "PDFNarrator/internal/service/tts/google"
	oatts "PDFNarrator/internal/service/tts/openai"
)

// narrator converts one document (PDF or plain text) into a single spoken
// audio file: extract -> chunk -> synthesize -> merge.
//
// Usage: narrator [flags] <input-file> [output-file]
func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() {
		_ = logger.Sync()
	}()

	if flag.NArg() < 1 {
		sugar.Fatal("usage: narrator [flags] <input-file> [output-file]")
	}
	inputPath := flag.Arg(0)
	outputPath := flag.Arg(1) // optional, defaults to OUTPUT_DIR/<stem>.mp3

	synth, err := buildSynthesizer(cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to configure TTS provider", "error", err)
	}

	conv := converter.New(synth, converter.Options{
		MaxChars:     cfg.MaxChars,
		OutputDir:    cfg.OutputDir,
		Merge:        cfg.Merge,
		KeepParts:    cfg.KeepParts,
		Gap:          time.Duration(cfg.GapMs) * time.Millisecond,
		Workers:      cfg.Workers,
		Retries:      cfg.Retries,
		RetryBackoff: cfg.RetryBackoff,
	}, sugar)

	started := time.Now()
	res, err := conv.Convert(context.Background(), inputPath, outputPath)
	if err != nil {
		sugar.Fatalw("conversion failed", "input", inputPath, "error", err)
	}

	switch {
	case res.OutputPath != "":
		if d, derr := merge.Duration(res.OutputPath); derr == nil {
			sugar.Infow("saved audio", "path", res.OutputPath, "segments", res.Segments,
				"duration", d.String(), "took", time.Since(started).String())
		} else {
			sugar.Infow("saved audio", "path", res.OutputPath, "segments", res.Segments,
				"took", time.Since(started).String())
		}
		if cfg.PlayResult {
			if perr := player.NewWithVolume(cfg.PlayerVolumeDB).PlayFile(res.OutputPath); perr != nil {
				sugar.Errorw("playback failed", "error", perr)
			}
		}
	case len(res.PartPaths) > 0:
		sugar.Infow("saved parts", "count", len(res.PartPaths),
			"first", res.PartPaths[0], "last", res.PartPaths[len(res.PartPaths)-1],
			"took", time.Since(started).String())
	default:
		sugar.Infow("document contained no text, no audio produced", "input", inputPath)
	}
}

func buildSynthesizer(cfg *config.Config, logger *zap.SugaredLogger) (tts.Synthesizer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.TTSService)) {
	case "", "openai":
		return oatts.New(cfg.OpenAITTS, logger), nil
	case "google":
		return gtts.New(cfg.GoogleTTS, logger), nil
	case "elevenlabs":
		return eltts.New(cfg.ElevenLabsTTS, logger), nil
	default:
		return nil, fmt.Errorf("unknown TTS_SERVICE %q (use openai|google|elevenlabs)", cfg.TTSService)
	}
}
