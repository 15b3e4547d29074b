package player

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Player plays an audio stream through the local speaker.
type Player interface {
	Play(format string, r io.ReadCloser) error
}

// Default implements Player and supports mp3 and wav.
type Default struct{ volumeDB float64 }

// New creates a player with unchanged volume (0 dB).
func New() *Default { return &Default{volumeDB: 0} }

// NewWithVolume creates a player with a preset volume in dB (negative is quieter).
func NewWithVolume(db float64) *Default { return &Default{volumeDB: db} }

func (d *Default) Play(format string, r io.ReadCloser) error {
	switch strings.ToLower(format) {
	case "wav":
		return playWAV(r, d.volumeDB)
	case "mp3":
		return playMP3(r, d.volumeDB)
	default:
		return errors.New("unsupported format for direct playback; use mp3 or wav")
	}
}

// PlayFile plays a local file, picking the decoder by extension.
func (d *Default) PlayFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return d.Play(strings.TrimPrefix(filepath.Ext(path), "."), f)
}

func playWAV(r io.ReadCloser, volDB float64) error {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return err
	}
	defer streamer.Close()
	return playStream(streamer, format, volDB)
}

func playMP3(r io.ReadCloser, volDB float64) error {
	streamer, format, err := mp3.Decode(r)
	if err != nil {
		return err
	}
	defer streamer.Close()
	return playStream(streamer, format, volDB)
}

func playStream(streamer beep.Streamer, format beep.Format, volDB float64) error {
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	vol := &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   volDB,
		Silent:   false,
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(vol, beep.Callback(func() { close(done) })))
	<-done
	return nil
}
