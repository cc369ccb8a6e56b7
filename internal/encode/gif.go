package encode

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"math"

	"github.com/andybons/gogif"
	"golang.org/x/image/draw"

	"github.com/backmassage/apngpress/internal/apperr"
	"github.com/backmassage/apngpress/internal/config"
	"github.com/backmassage/apngpress/internal/frames"
	"github.com/backmassage/apngpress/internal/report"
)

// GIFEncoder flattens and median-cut quantizes every in-memory frame into
// a looping GIF with one uniform delay.
type GIFEncoder struct {
	FPS float64
	Log Logger

	// quantize is swapped in tests; nil means median cut.
	quantize func(*image.RGBA) (*image.Paletted, error)
}

func (GIFEncoder) Format() config.Format { return config.FormatGIF }

// GIFDelay returns round(1000/fps) ms expressed in GIF centiseconds.
func GIFDelay(fps float64) int {
	ms := math.Round(1000 / fps)
	return int(math.Round(ms / 10))
}

// Encode implements Encoder. Source frame delays are ignored.
func (e GIFEncoder) Encode(ctx context.Context, in Input, out string) (report.Artifact, error) {
	if len(in.Frames) == 0 {
		return report.Artifact{}, apperr.Encodef("gif", out, "no frames available")
	}
	quantize := e.quantize
	if quantize == nil {
		quantize = medianCut
	}

	delay := GIFDelay(e.FPS)
	g := &gif.GIF{LoopCount: 0}
	for _, f := range in.Frames {
		if err := ctx.Err(); err != nil {
			return report.Artifact{}, apperr.Encode("gif", out, err)
		}
		fl := frames.Flatten(f)
		pm, err := quantize(fl.Image)
		if err != nil {
			e.Log.Warn("gif: frame %d: quantization failed (%v), keeping truecolor frame", f.Index, err)
			pm = dithered(fl.Image)
		}
		g.Image = append(g.Image, pm)
		g.Delay = append(g.Delay, delay)
		e.Log.Debug("gif: frame %d: %d colors, delay %dcs", f.Index, len(pm.Palette), delay)
	}

	err := createFile(out, func(w *bufio.Writer) error { return gif.EncodeAll(w, g) })
	if err != nil {
		return report.Artifact{}, apperr.Encode("gif", out, err)
	}
	a, err := report.Stat(config.FormatGIF, out)
	if err != nil {
		return report.Artifact{}, apperr.Encode("gif", out, err)
	}
	return a, nil
}

var errEmptyPalette = errors.New("quantizer produced an empty palette")

// medianCut reduces img to 256 colors. Panics inside the quantizer are
// reported as errors so one bad frame never aborts the GIF.
func medianCut(img *image.RGBA) (pm *image.Paletted, err error) {
	defer func() {
		if r := recover(); r != nil {
			pm, err = nil, fmt.Errorf("median cut: %v", r)
		}
	}()
	b := img.Bounds()
	pm = image.NewPaletted(b, nil)
	q := &gogif.MedianCutQuantizer{NumColor: 256}
	q.Quantize(pm, b, img, image.Point{})
	if len(pm.Palette) == 0 {
		return nil, errEmptyPalette
	}
	return pm, nil
}

// dithered maps truecolor onto the Plan9 palette with Floyd-Steinberg, as
// image/gif does for non-paletted input.
func dithered(img *image.RGBA) *image.Paletted {
	b := img.Bounds()
	pm := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(pm, b, img, b.Min)
	return pm
}
