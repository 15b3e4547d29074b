package tts

import (
	"context"
	"errors"
	"fmt"
)

// Request is one synthesis call for a single text segment.
type Request struct {
	Index int
	Text  string
}

// Part is the synthesized audio for one segment. Index is inherited from the
// request and is the sole ordering key for reassembly.
type Part struct {
	Index  int
	Audio  []byte
	Format string // container tag: mp3|wav
}

// Synthesizer turns one text segment into encoded audio bytes.
// Implementations must preserve Request.Index on the returned Part.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (Part, error)
	// MaxInputChars is the provider's per-request input limit.
	MaxInputChars() int
	// Format is the container tag of the audio the provider returns.
	Format() string
}

// Error kinds providers wrap their failures with. Transient errors are the
// only ones the orchestrator retries.
var (
	ErrTransient  = errors.New("tts transient error")
	ErrAuth       = errors.New("tts auth error")
	ErrBadRequest = errors.New("tts bad request")
)

// SynthesisError reports the segment whose synthesis failed after the retry
// budget was exhausted.
type SynthesisError struct {
	Index int
	Err   error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesize segment %d: %v", e.Index, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// SizeError reports a segment that exceeds the provider's input limit even
// after chunking. This is a configuration mismatch (MAX_CHARS vs provider
// limit), not a transient fault, and is never retried.
type SizeError struct {
	Index int
	Len   int
	Limit int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("segment %d is %d chars, over the provider limit of %d (lower MAX_CHARS)", e.Index, e.Len, e.Limit)
}
