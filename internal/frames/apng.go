package frames

import (
	"errors"
	"image"
	"io"
	"math"
	"time"

	"github.com/kettek/apng"
	"golang.org/x/image/draw"
)

// Decoder turns an encoded image into its ordered frames.
type Decoder interface {
	Decode(r io.Reader) ([]Frame, error)
}

// ErrNoFrames is returned when a container decodes to zero images.
var ErrNoFrames = errors.New("no frames in image")

// APNGDecoder decodes PNG and APNG containers with github.com/kettek/apng.
// Animated sources are composited onto a persistent canvas so each Frame
// is the full image a viewer would display at that point.
type APNGDecoder struct{}

// Decode implements Decoder.
func (APNGDecoder) Decode(r io.Reader) ([]Frame, error) {
	a, err := apng.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	if len(a.Frames) == 0 {
		return nil, ErrNoFrames
	}
	anim := AnimationFrames(a)
	if len(anim) <= 1 {
		img := a.Frames[len(a.Frames)-1].Image
		if len(anim) == 1 {
			img = anim[0].Image
		}
		return []Frame{{Index: 0, Image: img, Mode: ModeOf(img), Delay: DefaultDelay}}, nil
	}
	return composite(a.Frames[0].Image.Bounds(), anim), nil
}

// AnimationFrames drops the default image when it is not part of the
// animation (IDAT without a preceding fcTL).
func AnimationFrames(a apng.APNG) []apng.Frame {
	out := make([]apng.Frame, 0, len(a.Frames))
	for _, f := range a.Frames {
		if f.IsDefault {
			continue
		}
		out = append(out, f)
	}
	return out
}

// FrameDelay converts an fcTL delay fraction (seconds) to a duration. A
// zero denominator means 1/100 s; a zero numerator means no delay was given.
func FrameDelay(num, den uint16) time.Duration {
	if num == 0 {
		return DefaultDelay
	}
	if den == 0 {
		den = 100
	}
	secs := float64(num) / float64(den)
	return time.Duration(math.Round(secs * float64(time.Second)))
}

func composite(bounds image.Rectangle, anim []apng.Frame) []Frame {
	canvas := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	out := make([]Frame, 0, len(anim))

	for i, f := range anim {
		src := f.Image
		sb := src.Bounds()
		r := sb.Sub(sb.Min).Add(image.Pt(f.XOffset, f.YOffset)).Intersect(canvas.Rect)

		dispose := f.DisposeOp
		if i == 0 && dispose == apng.DISPOSE_OP_PREVIOUS {
			dispose = apng.DISPOSE_OP_BACKGROUND
		}
		var saved *image.NRGBA
		if dispose == apng.DISPOSE_OP_PREVIOUS {
			saved = image.NewNRGBA(r)
			draw.Draw(saved, r, canvas, r.Min, draw.Src)
		}

		op := draw.Over
		if f.BlendOp == apng.BLEND_OP_SOURCE {
			op = draw.Src
		}
		draw.Draw(canvas, r, src, sb.Min, op)

		snap := image.NewNRGBA(canvas.Rect)
		copy(snap.Pix, canvas.Pix)
		out = append(out, Frame{
			Index: i,
			Image: snap,
			Mode:  ModeRGBA,
			Delay: FrameDelay(f.DelayNumerator, f.DelayDenominator),
		})

		switch dispose {
		case apng.DISPOSE_OP_BACKGROUND:
			draw.Draw(canvas, r, image.Transparent, image.Point{}, draw.Src)
		case apng.DISPOSE_OP_PREVIOUS:
			draw.Draw(canvas, r, saved, r.Min, draw.Src)
		}
	}
	return out
}
