package google

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"PDFNarrator/internal/service/tts"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		code codes.Code
		want error
	}{
		{codes.Unauthenticated, tts.ErrAuth},
		{codes.PermissionDenied, tts.ErrAuth},
		{codes.InvalidArgument, tts.ErrBadRequest},
		{codes.OutOfRange, tts.ErrBadRequest},
		{codes.ResourceExhausted, tts.ErrTransient},
		{codes.Unavailable, tts.ErrTransient},
		{codes.Internal, tts.ErrTransient},
	}
	for _, tt := range tests {
		err := classify(status.Error(tt.code, "synthetic"))
		if !errors.Is(err, tt.want) {
			t.Errorf("classify(%v) = %v, want %v", tt.code, err, tt.want)
		}
	}
}

func TestClassifyPassesContextErrors(t *testing.T) {
	for _, ctxErr := range []error{context.Canceled, context.DeadlineExceeded} {
		if err := classify(ctxErr); !errors.Is(err, ctxErr) || errors.Is(err, tts.ErrTransient) {
			t.Errorf("classify(%v) = %v, context errors must pass through unwrapped", ctxErr, err)
		}
	}
}

func TestSynthesizeRejectsOverByteLimit(t *testing.T) {
	c := &Client{logger: zap.NewNop().Sugar()}

	// 3000 runes of a 2-byte character: under a rune-based bound, over the
	// 5000-byte wire limit.
	text := strings.Repeat("ä", 3000)
	_, err := c.Synthesize(context.Background(), tts.Request{Index: 3, Text: text})

	var sizeErr *tts.SizeError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("err = %v, want *tts.SizeError", err)
	}
	if sizeErr.Index != 3 || sizeErr.Len != 6000 || sizeErr.Limit != maxInputBytes {
		t.Errorf("SizeError = %+v, want index 3, len 6000, limit %d", sizeErr, maxInputBytes)
	}
}
