package encode

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"sync"
	"testing"

	"github.com/backmassage/apngpress/internal/frames"
	"github.com/backmassage/apngpress/internal/naming"
)

type testLogger struct {
	mu    sync.Mutex
	warns []string
}

func (*testLogger) Debug(string, ...interface{}) {}

func (l *testLogger) Warn(format string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, format)
}

func solidNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

var palette3 = []color.NRGBA{
	{0xff, 0, 0, 0xff},
	{0, 0xff, 0, 0xff},
	{0, 0, 0xff, 0xff},
}

func testFrames(w, h int) []frames.Frame {
	out := make([]frames.Frame, len(palette3))
	for i, c := range palette3 {
		out[i] = frames.Frame{Index: i, Image: solidNRGBA(w, h, c), Mode: frames.ModeRGBA, Delay: frames.DefaultDelay}
	}
	return out
}

// writeStills writes one JPEG per size into dir, named like a real run.
func writeStills(t *testing.T, dir string, sizes ...image.Point) {
	t.Helper()
	for i, sz := range sizes {
		f, err := os.Create(naming.FramePath(dir, i, "jpg"))
		if err != nil {
			t.Fatal(err)
		}
		c := palette3[i%len(palette3)]
		if err := jpeg.Encode(f, solidNRGBA(sz.X, sz.Y, c), &jpeg.Options{Quality: 90}); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}
}

// dominant returns 0, 1 or 2 for whichever of R, G, B is strongest.
func dominant(c color.Color) int {
	r, g, b, _ := c.RGBA()
	switch {
	case r >= g && r >= b:
		return 0
	case g >= b:
		return 1
	}
	return 2
}
