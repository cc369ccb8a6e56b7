package frames

import (
	"image"
	"time"
)

// ColorMode is the pixel layout of a frame or of the container's IHDR.
type ColorMode int

const (
	ModeRGB ColorMode = iota
	ModeRGBA
	ModeGray
	ModeGrayAlpha
	ModeIndexed
)

var modeNames = map[ColorMode]string{
	ModeRGB:       "RGB",
	ModeRGBA:      "RGBA",
	ModeGray:      "L",
	ModeGrayAlpha: "LA",
	ModeIndexed:   "P",
}

func (m ColorMode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// HasTransparency reports whether frames in this mode are composited over
// white before lossy encoding. Indexed frames always are, since any palette
// entry may carry alpha.
func (m ColorMode) HasTransparency() bool {
	switch m {
	case ModeRGBA, ModeGrayAlpha, ModeIndexed:
		return true
	}
	return false
}

// ModeOf maps a decoded Go image to its color mode. *image.RGBA counts as
// RGB only when every pixel is opaque.
func ModeOf(img image.Image) ColorMode {
	switch m := img.(type) {
	case *image.Paletted:
		return ModeIndexed
	case *image.Gray, *image.Gray16:
		return ModeGray
	case *image.YCbCr, *image.CMYK:
		return ModeRGB
	case *image.RGBA:
		if m.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	case *image.RGBA64:
		if m.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	}
	return ModeRGBA
}

// DefaultDelay applies to frames whose container gives no delay.
const DefaultDelay = 100 * time.Millisecond

// Frame is one decoded full-canvas image.
type Frame struct {
	Index int
	Image image.Image
	Mode  ColorMode
	Delay time.Duration
}

// Flattened is a Frame composited onto an opaque background. Every pixel
// has alpha 0xff.
type Flattened struct {
	Index int
	Image *image.RGBA
}
