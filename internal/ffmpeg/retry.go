package ffmpeg

import (
	"math"

	"github.com/backmassage/apngpress/internal/planner"
)

// RetryAction identifies which fix was applied (or none).
type RetryAction int

const (
	RetryNone          RetryAction = iota
	RetryFallbackCodec             // libx264 unavailable: switch to mpeg4.
)

const maxAttempts = 2

// mpeg4 -q:v range.
const (
	mpeg4QMin = 2
	mpeg4QMax = 31
)

// RetryState tracks the codec and quality across ffmpeg attempts for one
// output file.
type RetryState struct {
	Attempt     int
	MaxAttempts int
	Codec       string
	CRF         int
}

// NewRetryState starts with H.264 at the given CRF.
func NewRetryState(crf int) *RetryState {
	return &RetryState{
		MaxAttempts: maxAttempts,
		Codec:       CodecH264,
		CRF:         crf,
	}
}

// Advance inspects stderr from a failed run and applies the first fix that
// has not been applied yet. Returns RetryNone when nothing matches or the
// attempt limit is reached.
func (s *RetryState) Advance(stderr string) RetryAction {
	s.Attempt++
	if s.Attempt >= s.MaxAttempts {
		return RetryNone
	}
	if s.Codec == CodecH264 && MatchEncoderUnavailable(stderr) {
		s.Codec = CodecMPEG4
		return RetryFallbackCodec
	}
	return RetryNone
}

// MPEG4Quality maps an x264 CRF (0-51) onto the mpeg4 -q:v scale (2-31).
func MPEG4Quality(crf int) int {
	q := int(math.Round(float64(crf) * mpeg4QMax / 51))
	return planner.Clamp(q, mpeg4QMin, mpeg4QMax)
}

func (a RetryAction) String() string {
	switch a {
	case RetryFallbackCodec:
		return "fallback to " + CodecMPEG4
	}
	return "none"
}
