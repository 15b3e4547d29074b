package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DebugMode  bool   `env:"DEBUG_MODE"`  // Verbose logging
	TTSService string `env:"TTS_SERVICE"` // TTS provider switch: openai|google|elevenlabs

	MaxChars     int           `env:"MAX_CHARS"`     // Per-request chunk budget in runes; must stay within the provider's input limit
	OutputDir    string        `env:"OUTPUT_DIR"`    // Where merged files and parts land
	Merge        bool          `env:"MERGE"`         // Combine parts into a single file; false keeps the ordered parts as the result
	KeepParts    bool          `env:"KEEP_PARTS"`    // Keep part files after a successful merge
	GapMs        int           `env:"GAP_MS"`        // Silence inserted between merged parts, in milliseconds
	Workers      int           `env:"WORKERS"`       // Concurrent TTS requests
	Retries      int           `env:"RETRIES"`       // Extra attempts per segment for transient failures
	RetryBackoff time.Duration `env:"RETRY_BACKOFF"` // Initial backoff before a retry; doubles per attempt

	PlayResult     bool    `env:"PLAY_RESULT"`      // Play the merged file through the local speaker when done
	PlayerVolumeDB float64 `env:"PLAYER_VOLUME_DB"` // Playback volume adjustment in dB, negative is quieter

	OpenAITTS     OpenAITTSConfig
	GoogleTTS     GoogleTTSConfig
	ElevenLabsTTS ElevenLabsTTSConfig
}

// OpenAITTSConfig configures synthesis through the OpenAI speech endpoint.
type OpenAITTSConfig struct {
	APIKey       string `env:"OPENAI_API_KEY"`          // Read from .env/ENV; an empty key fails at synthesis time
	Model        string `env:"OPENAI_TTS_MODEL"`        // TTS model, default gpt-4o-mini-tts
	Voice        string `env:"OPENAI_TTS_VOICE"`        // Voice name, e.g. onyx, alloy, nova
	Instructions string `env:"OPENAI_TTS_INSTRUCTIONS"` // Optional style/tone instructions
	Format       string `env:"OPENAI_TTS_FORMAT"`       // mp3|wav
}

// GoogleTTSConfig configures synthesis through Google Cloud Text-to-Speech.
type GoogleTTSConfig struct {
	// Service account key path. The SDK reads GOOGLE_APPLICATION_CREDENTIALS from
	// the environment; this field holds a default for convenience.
	CredentialsPath string  `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	Language        string  `env:"GOOGLE_TTS_LANGUAGE"`
	Voice           string  `env:"GOOGLE_TTS_VOICE"`
	SpeakingRate    float64 `env:"GOOGLE_TTS_SPEAKING_RATE"`
	Pitch           float64 `env:"GOOGLE_TTS_PITCH"`
	VolumeGainDb    float64 `env:"GOOGLE_TTS_VOLUME_DB"`
}

// ElevenLabsTTSConfig configures synthesis through the ElevenLabs REST API.
type ElevenLabsTTSConfig struct {
	APIKey  string `env:"ELEVENLABS_API_KEY"`
	VoiceID string `env:"ELEVENLABS_VOICE_ID"`
	ModelID string `env:"ELEVENLABS_MODEL_ID"`
}

// Defaults returns the configuration with preset default values.
// They are overridden by .env, environment variables and CLI flags.
func Defaults() *Config {
	return &Config{
		DebugMode:      false,
		TTSService:     "openai",
		MaxChars:       4000,
		OutputDir:      "./audio",
		Merge:          true,
		KeepParts:      false,
		GapMs:          300,
		Workers:        4,
		Retries:        2,
		RetryBackoff:   time.Second,
		PlayResult:     false,
		PlayerVolumeDB: 0,
		OpenAITTS: OpenAITTSConfig{
			Model:        "gpt-4o-mini-tts",
			Voice:        "onyx",
			Instructions: "be fluent & clear, like a podcast narrator",
			Format:       "mp3",
		},
		GoogleTTS: GoogleTTSConfig{
			CredentialsPath: "service-account.json",
			Language:        "en-US",
			Voice:           "en-US-Standard-C",
			SpeakingRate:    1.0,
			Pitch:           0.0,
			VolumeGainDb:    0.0,
		},
		ElevenLabsTTS: ElevenLabsTTSConfig{
			ModelID: "eleven_multilingual_v2",
		},
	}
}

// NewConfig loads the application configuration.
func NewConfig() *Config {
	_ = godotenv.Load()

	// Start from defaults, then override from .env/environment and flags.
	cfg := Defaults()
	_ = env.Parse(cfg)

	flag.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "enable verbose logging")
	flag.StringVar(&cfg.TTSService, "tts-service", cfg.TTSService, "TTS provider: openai|google|elevenlabs")
	flag.IntVar(&cfg.MaxChars, "max-chars", cfg.MaxChars, "per-request chunk budget in characters")
	flag.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory for merged files and parts")
	flag.BoolVar(&cfg.Merge, "merge", cfg.Merge, "merge parts into a single file; with -merge=false the ordered parts are the result")
	flag.BoolVar(&cfg.KeepParts, "keep-parts", cfg.KeepParts, "keep part files after a successful merge")
	flag.IntVar(&cfg.GapMs, "gap-ms", cfg.GapMs, "silence between merged parts, in milliseconds")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent TTS requests")
	flag.IntVar(&cfg.Retries, "retries", cfg.Retries, "extra attempts per segment for transient failures")
	flag.DurationVar(&cfg.RetryBackoff, "retry-backoff", cfg.RetryBackoff, "initial backoff before a retry, e.g. 1s")
	flag.BoolVar(&cfg.PlayResult, "play", cfg.PlayResult, "play the merged file when done")
	flag.Float64Var(&cfg.PlayerVolumeDB, "player-volume-db", cfg.PlayerVolumeDB, "playback volume adjustment in dB")
	// OpenAI TTS parameters
	flag.StringVar(&cfg.OpenAITTS.Model, "openai-tts-model", cfg.OpenAITTS.Model, "OpenAI TTS model")
	flag.StringVar(&cfg.OpenAITTS.Voice, "voice", cfg.OpenAITTS.Voice, "OpenAI TTS voice (e.g. onyx, alloy, nova)")
	flag.StringVar(&cfg.OpenAITTS.Instructions, "instructions", cfg.OpenAITTS.Instructions, "style/tone instructions for the OpenAI TTS model")
	flag.StringVar(&cfg.OpenAITTS.Format, "openai-tts-format", cfg.OpenAITTS.Format, "OpenAI TTS audio format (mp3|wav)")
	// Google TTS parameters
	flag.StringVar(&cfg.GoogleTTS.CredentialsPath, "google-tts-credentials", cfg.GoogleTTS.CredentialsPath, "path to service-account.json (also read from ENV GOOGLE_APPLICATION_CREDENTIALS)")
	flag.StringVar(&cfg.GoogleTTS.Language, "google-tts-language", cfg.GoogleTTS.Language, "synthesis language, e.g. en-US")
	flag.StringVar(&cfg.GoogleTTS.Voice, "google-tts-voice", cfg.GoogleTTS.Voice, "voice name, e.g. en-US-Standard-C or en-US-Wavenet-D")
	flag.Float64Var(&cfg.GoogleTTS.SpeakingRate, "google-tts-speaking-rate", cfg.GoogleTTS.SpeakingRate, "speaking rate (1.0 default)")
	flag.Float64Var(&cfg.GoogleTTS.Pitch, "google-tts-pitch", cfg.GoogleTTS.Pitch, "pitch in semitones, may be negative")
	flag.Float64Var(&cfg.GoogleTTS.VolumeGainDb, "google-tts-volume-db", cfg.GoogleTTS.VolumeGainDb, "volume gain in dB, -96.0 to +16.0")
	// ElevenLabs TTS parameters
	flag.StringVar(&cfg.ElevenLabsTTS.APIKey, "elevenlabs-api-key", cfg.ElevenLabsTTS.APIKey, "ElevenLabs API key (overrides ENV)")
	flag.StringVar(&cfg.ElevenLabsTTS.VoiceID, "elevenlabs-voice-id", cfg.ElevenLabsTTS.VoiceID, "ElevenLabs voice ID")
	flag.StringVar(&cfg.ElevenLabsTTS.ModelID, "elevenlabs-model-id", cfg.ElevenLabsTTS.ModelID, "ElevenLabs model ID")
	flag.Parse()

	// Validation and environment preparation for Google TTS.
	// If the google service is selected, make sure the credentials file is
	// resolvable. If ENV is empty but the config holds a path, set ENV for the SDK.
	if strings.EqualFold(cfg.TTSService, "google") {
		cred := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
		if cred == "" {
			if cp := strings.TrimSpace(cfg.GoogleTTS.CredentialsPath); cp != "" {
				_ = os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", cp)
				cred = cp
			}
		}
		if cred == "" {
			panic(fmt.Errorf("google tts: GOOGLE_APPLICATION_CREDENTIALS is not set; provide ENV or the -google-tts-credentials flag"))
		}
		if _, err := os.Stat(cred); err != nil {
			panic(fmt.Errorf("google tts: credentials file not found: %s", cred))
		}
	}

	return cfg
}
