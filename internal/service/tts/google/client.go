package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	gctts "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"go.uber.org/zap"
	goauth "golang.org/x/oauth2/google"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"PDFNarrator/internal/config"
	"PDFNarrator/internal/service/tts"
)

// maxInputBytes is the per-request input limit of the synthesize endpoint.
// Unlike the other providers this limit is in bytes, not characters, so it is
// enforced here in bytes; multibyte text can otherwise pass a rune-based check
// while still being over the wire limit.
const maxInputBytes = 5000

// Client synthesizes speech through Google Cloud Text-to-Speech.
type Client struct {
	cfg    config.GoogleTTSConfig
	logger *zap.SugaredLogger
}

func New(cfg config.GoogleTTSConfig, logger *zap.SugaredLogger) *Client {
	// Probe ADC up front so a missing service account surfaces at startup,
	// not on the first segment.
	if _, err := goauth.FindDefaultCredentials(context.Background(), "https://www.googleapis.com/auth/cloud-platform"); err != nil {
		logger.Warnw("google tts: ADC credentials not found, synthesis will fail", "error", err)
	}
	return &Client{cfg: cfg, logger: logger}
}

// Synthesize sends one segment to Google TTS and returns MP3 audio.
func (c *Client) Synthesize(ctx context.Context, req tts.Request) (tts.Part, error) {
	if len(req.Text) > maxInputBytes {
		return tts.Part{}, &tts.SizeError{Index: req.Index, Len: len(req.Text), Limit: maxInputBytes}
	}

	ttsClient, err := gctts.NewClient(ctx)
	if err != nil {
		return tts.Part{}, fmt.Errorf("%w: create client: %v", tts.ErrAuth, err)
	}
	defer ttsClient.Close()

	request := &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{
			InputSource: &ttspb.SynthesisInput_Text{Text: req.Text},
		},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: c.cfg.Language,
			Name:         c.cfg.Voice,
		},
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding: ttspb.AudioEncoding_MP3,
			SpeakingRate:  c.cfg.SpeakingRate,
			Pitch:         c.cfg.Pitch,
			VolumeGainDb:  c.cfg.VolumeGainDb,
		},
	}

	started := time.Now()
	resp, err := ttsClient.SynthesizeSpeech(ctx, request)
	if err != nil {
		if ctx.Err() != nil {
			return tts.Part{}, err
		}
		return tts.Part{}, classify(err)
	}
	c.logger.Debugw("google tts segment done",
		"index", req.Index, "chars", len(req.Text), "bytes", len(resp.GetAudioContent()), "took", time.Since(started).String())

	return tts.Part{Index: req.Index, Audio: resp.GetAudioContent(), Format: "mp3"}, nil
}

func (c *Client) MaxInputChars() int { return maxInputBytes }

func (c *Client) Format() string { return "mp3" }

// classify maps gRPC status codes onto the shared error kinds so the
// orchestrator can apply a uniform retry policy.
func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	switch status.Code(err) {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %v", tts.ErrAuth, err)
	case codes.InvalidArgument, codes.OutOfRange, codes.FailedPrecondition:
		return fmt.Errorf("%w: %v", tts.ErrBadRequest, err)
	default:
		// ResourceExhausted, Unavailable, Internal and connection-level
		// failures are all worth another attempt.
		return fmt.Errorf("%w: %v", tts.ErrTransient, err)
	}
}
