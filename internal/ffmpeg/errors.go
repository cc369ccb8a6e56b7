package ffmpeg

import (
	"regexp"
	"strings"
)

// Pre-compiled regexes for classifying ffmpeg stderr output. Checked by
// [RetryState.Advance].
var reEncoderUnavailable = regexp.MustCompile(
	`(?i)Unknown encoder|` +
		`Encoder \S+ not found|` +
		`Error selecting an encoder|` +
		`Error while opening encoder|` +
		`Error initializing output stream .*encoder|` +
		`Unrecognized option 'crf'`)

// MatchEncoderUnavailable reports whether stderr shows the requested video
// encoder is missing from this ffmpeg build or refused to open.
func MatchEncoderUnavailable(stderr string) bool {
	return reEncoderUnavailable.MatchString(stderr)
}

// Tail returns the last n non-empty lines of stderr, for error reporting.
func Tail(stderr string, n int) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	out := make([]string, 0, n)
	for i := len(lines) - 1; i >= 0 && len(out) < n; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			out = append(out, l)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return strings.Join(out, "\n")
}
