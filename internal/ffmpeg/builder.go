package ffmpeg

import (
	"fmt"
	"strconv"
)

// Video codecs, in fallback order.
const (
	CodecH264  = "libx264"
	CodecMPEG4 = "mpeg4"
)

// MP4Params describes one raw-video-to-MP4 encode.
type MP4Params struct {
	Width   int
	Height  int
	FPS     float64
	Output  string
	Verbose bool
}

// BuildMP4 constructs the complete ffmpeg argument slice. Frames arrive on
// stdin as packed RGBA at Width x Height; the codec and its quality
// setting come from the retry state.
func BuildMP4(p MP4Params, rs *RetryState) []string {
	args := make([]string, 0, 40)

	// --- Preamble ---
	args = append(args, "ffmpeg", "-hide_banner", "-nostdin", "-y")
	if p.Verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// --- Input: raw frames on stdin ---
	args = append(args,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"-framerate", strconv.FormatFloat(p.FPS, 'f', -1, 64),
		"-i", "pipe:0",
	)

	args = append(args, "-an")

	// --- Video codec ---
	args = appendVideoCodec(args, rs)

	// --- Container opts ---
	args = append(args, "-pix_fmt", "yuv420p", "-movflags", "+faststart")

	// --- Output ---
	args = append(args, p.Output)
	return args
}

func appendVideoCodec(args []string, rs *RetryState) []string {
	switch rs.Codec {
	case CodecMPEG4:
		return append(args,
			"-c:v", CodecMPEG4,
			"-q:v", strconv.Itoa(MPEG4Quality(rs.CRF)),
		)
	default:
		return append(args,
			"-c:v", CodecH264,
			"-crf", strconv.Itoa(rs.CRF),
			"-preset", "medium",
		)
	}
}
