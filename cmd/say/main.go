package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"PDFNarrator/internal/config"
	"PDFNarrator/internal/service/tts"
	eltts "PDFNarrator/internal/service/tts/elevenlabs"
	gtts "PDFNarrator/internal/service/tts/google"
	oatts "PDFNarrator/internal/service/tts/openai"
)

// Small utility: synthesizes the text given on the command line into a single
// audio file, bypassing extraction and chunking.
//
// Usage: say [flags] "Some text to speak" [output-filename]
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
		sugar.Fatal(`usage: say [flags] "Some text to speak" [output-filename]`)
	}
	text := flag.Arg(0)

	synth, err := buildSynthesizer(cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to configure TTS provider", "error", err)
	}

	part, err := synth.Synthesize(context.Background(), tts.Request{Index: 0, Text: text})
	if err != nil {
		sugar.Fatalw("synthesis failed", "error", err)
	}

	name := flag.Arg(1)
	if name == "" {
		name = fmt.Sprintf("speech_%s.%s", time.Now().UTC().Format("20060102150405"), part.Format)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		sugar.Fatalw("failed to create output dir", "error", err)
	}
	out := filepath.Join(cfg.OutputDir, name)
	if err := os.WriteFile(out, part.Audio, 0o644); err != nil {
		sugar.Fatalw("failed to save audio", "error", err)
	}
	sugar.Infow("saved audio", "path", out, "bytes", len(part.Audio))
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
