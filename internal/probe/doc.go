// Package probe inspects a source image before any output is written:
// container type, IHDR geometry and color mode, frame count, per-frame
// delays and the derived average frame rate.
package probe
