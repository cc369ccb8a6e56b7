// Package encode assembles frames into the three animated outputs. The GIF
// encoder works from the in-memory frames; WebP and MP4 re-read the JPEG
// stills from disk in filename order.
package encode

import (
	"bufio"
	"context"
	"image"
	"image/jpeg"
	"math"
	"os"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/image/draw"

	"github.com/backmassage/apngpress/internal/config"
	"github.com/backmassage/apngpress/internal/frames"
	"github.com/backmassage/apngpress/internal/report"
)

// Logger is the subset of logging.Logger the encoders need.
type Logger interface {
	Debug(string, ...interface{})
	Warn(string, ...interface{})
}

// Input is everything an encoder may read from. Each encoder uses only
// one of the two fields.
type Input struct {
	Frames    []frames.Frame
	StillsDir string
}

// Encoder writes one animated output format.
type Encoder interface {
	Format() config.Format
	Encode(ctx context.Context, in Input, out string) (report.Artifact, error)
}

// FrameDuration is the uniform per-frame duration for a frame rate.
func FrameDuration(fps float64) time.Duration {
	return time.Duration(math.Round(float64(time.Second) / fps))
}

func decodeStill(path string) (img image.Image, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	return jpeg.Decode(bufio.NewReader(f))
}

// toNRGBA copies img into a fresh NRGBA, origin at (0,0).
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst
}

func createFile(path string, write func(w *bufio.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	return w.Flush()
}
