package frames

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/kettek/apng"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// writeAPNG encodes imgs as an animation with a 100 ms delay per frame.
func writeAPNG(t *testing.T, dir string, imgs ...image.Image) string {
	t.Helper()
	a := apng.APNG{Frames: make([]apng.Frame, len(imgs))}
	for i, img := range imgs {
		a.Frames[i] = apng.Frame{
			Image:            img,
			DelayNumerator:   100,
			DelayDenominator: 1000,
			DisposeOp:        apng.DISPOSE_OP_NONE,
			BlendOp:          apng.BLEND_OP_SOURCE,
		}
	}
	path := filepath.Join(dir, "anim.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := apng.Encode(f, a); err != nil {
		t.Fatalf("apng.Encode: %v", err)
	}
	return path
}

var (
	red         = color.NRGBA{0xff, 0, 0, 0xff}
	green       = color.NRGBA{0, 0xff, 0, 0xff}
	blue        = color.NRGBA{0, 0, 0xff, 0xff}
	transparent = color.NRGBA{}
)
