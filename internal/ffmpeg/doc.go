// Package ffmpeg builds and runs the ffmpeg command that muxes raw RGBA
// frames into an MP4, and classifies ffmpeg failures for the codec
// fallback retry.
//
// Split along the usual boundaries: builder.go (argument skeleton),
// executor.go (Runner, stderr capture), errors.go (stderr patterns),
// retry.go (RetryState).
package ffmpeg
