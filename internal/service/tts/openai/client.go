package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	oai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"PDFNarrator/internal/config"
	"PDFNarrator/internal/service/tts"
)

// maxInputChars is the documented per-request input limit of the OpenAI
// speech endpoint.
const maxInputChars = 4096

// Client synthesizes speech through the OpenAI audio/speech endpoint.
type Client struct {
	client oai.Client
	cfg    config.OpenAITTSConfig
	logger *zap.SugaredLogger
}

func New(cfg config.OpenAITTSConfig, logger *zap.SugaredLogger) *Client {
	// The SDK also reads OPENAI_API_KEY from the environment; passing the
	// configured key keeps flag overrides working.
	var opts []option.RequestOption
	if k := strings.TrimSpace(cfg.APIKey); k != "" {
		opts = append(opts, option.WithAPIKey(k))
	}
	return &Client{client: oai.NewClient(opts...), cfg: cfg, logger: logger}
}

// Synthesize sends one segment to the speech endpoint and returns its audio.
func (c *Client) Synthesize(ctx context.Context, req tts.Request) (tts.Part, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return tts.Part{}, fmt.Errorf("%w: empty API key (set OPENAI_API_KEY in .env/ENV)", tts.ErrAuth)
	}

	params := oai.AudioSpeechNewParams{
		Model:          oai.SpeechModel(c.cfg.Model),
		Voice:          oai.AudioSpeechNewParamsVoice(c.cfg.Voice),
		Input:          req.Text,
		ResponseFormat: oai.AudioSpeechNewParamsResponseFormat(c.cfg.Format),
	}
	if s := strings.TrimSpace(c.cfg.Instructions); s != "" {
		params.Instructions = oai.String(s)
	}

	started := time.Now()
	resp, err := c.client.Audio.Speech.New(ctx, params)
	if err != nil {
		return tts.Part{}, classify(err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return tts.Part{}, fmt.Errorf("%w: read audio body: %v", tts.ErrTransient, err)
	}
	c.logger.Debugw("openai tts segment done",
		"index", req.Index, "chars", len(req.Text), "bytes", len(audio), "took", time.Since(started).String())

	return tts.Part{Index: req.Index, Audio: audio, Format: c.cfg.Format}, nil
}

func (c *Client) MaxInputChars() int { return maxInputChars }

func (c *Client) Format() string { return c.cfg.Format }

// classify maps SDK and network failures onto the shared error kinds so the
// orchestrator can apply a uniform retry policy.
func classify(err error) error {
	var apiErr *oai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: %v", tts.ErrAuth, err)
		case apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %v", tts.ErrTransient, err)
		default:
			return fmt.Errorf("%w: %v", tts.ErrBadRequest, err)
		}
	}
	// No API response at all: connection reset, timeout, DNS.
	return fmt.Errorf("%w: %v", tts.ErrTransient, err)
}
