package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"PDFNarrator/internal/config"
	"PDFNarrator/internal/service/tts"
)

const (
	endpoint = "https://api.elevenlabs.io/v1/text-to-speech/%s"
	// maxInputChars mirrors the per-request character limit of the
	// text-to-speech endpoint.
	maxInputChars = 10000
)

// Client synthesizes speech through the ElevenLabs REST API.
type Client struct {
	http   *http.Client
	cfg    config.ElevenLabsTTSConfig
	logger *zap.SugaredLogger
}

func New(cfg config.ElevenLabsTTSConfig, logger *zap.SugaredLogger) *Client {
	return &Client{http: http.DefaultClient, cfg: cfg, logger: logger}
}

type payload struct {
	Text          string             `json:"text"`
	ModelID       string             `json:"model_id"`
	VoiceSettings map[string]float64 `json:"voice_settings"`
}

// Synthesize sends one segment to ElevenLabs and returns MP3 audio.
func (c *Client) Synthesize(ctx context.Context, req tts.Request) (tts.Part, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return tts.Part{}, fmt.Errorf("%w: empty API key (set ELEVENLABS_API_KEY in .env/ENV)", tts.ErrAuth)
	}
	if strings.TrimSpace(c.cfg.VoiceID) == "" {
		return tts.Part{}, fmt.Errorf("%w: empty voice ID (set ELEVENLABS_VOICE_ID)", tts.ErrBadRequest)
	}

	body, err := json.Marshal(payload{
		Text:    req.Text,
		ModelID: c.cfg.ModelID,
		VoiceSettings: map[string]float64{
			"stability":        0.75,
			"similarity_boost": 0.7,
		},
	})
	if err != nil {
		return tts.Part{}, fmt.Errorf("%w: marshal payload: %v", tts.ErrBadRequest, err)
	}

	url := fmt.Sprintf(endpoint, c.cfg.VoiceID) + "?output_format=mp3_44100_128"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return tts.Part{}, err
	}
	httpReq.Header.Set("xi-api-key", c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return tts.Part{}, fmt.Errorf("%w: %v", tts.ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if len(b) == 0 {
			b = []byte(resp.Status)
		}
		return tts.Part{}, classifyStatus(resp.StatusCode, bytes.TrimSpace(b))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return tts.Part{}, fmt.Errorf("%w: read audio body: %v", tts.ErrTransient, err)
	}
	c.logger.Debugw("elevenlabs tts segment done",
		"index", req.Index, "chars", len(req.Text), "bytes", len(audio), "took", time.Since(started).String())

	return tts.Part{Index: req.Index, Audio: audio, Format: "mp3"}, nil
}

func (c *Client) MaxInputChars() int { return maxInputChars }

func (c *Client) Format() string { return "mp3" }

func classifyStatus(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: status=%d, body=%s", tts.ErrAuth, status, body)
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status=%d, body=%s", tts.ErrTransient, status, body)
	default:
		return fmt.Errorf("%w: status=%d, body=%s", tts.ErrBadRequest, status, body)
	}
}
