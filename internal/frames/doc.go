// Package frames decodes an APNG into an ordered sequence of full-canvas
// frames, persists them as lossless PNGs, and transcodes them into opaque
// JPEG stills (flatten over white, optional resize, encode).
//
// Frame i keeps index i everywhere: in frames/frame_XXXX.png, in
// jpg_frames/frame_XXXX.jpg, in log lines, and in every encoder's output.
package frames

// Logger is the subset of logging.Logger the frame stages need.
type Logger interface {
	Debug(string, ...interface{})
	Warn(string, ...interface{})
}
