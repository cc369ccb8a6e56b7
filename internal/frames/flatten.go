package frames

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/backmassage/apngpress/internal/config"
)

// Flatten removes transparency from f. Transparency-bearing modes are
// composited over solid white using their alpha; the rest are converted
// to RGB as-is. The result has the same size as f.
func Flatten(f Frame) Flattened {
	b := f.Image.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if f.Mode.HasTransparency() {
		draw.Draw(dst, dst.Rect, image.NewUniform(color.White), image.Point{}, draw.Src)
		draw.Draw(dst, dst.Rect, f.Image, b.Min, draw.Over)
	} else {
		draw.Draw(dst, dst.Rect, f.Image, b.Min, draw.Src)
	}
	return Flattened{Index: f.Index, Image: dst}
}

// Resize resamples fl to exactly size with a Lanczos filter. A zero size,
// or one equal to the current size, returns fl unchanged. Aspect ratio is
// not corrected.
func Resize(fl Flattened, size config.Size) Flattened {
	b := fl.Image.Bounds()
	if size.IsZero() || (b.Dx() == size.Width && b.Dy() == size.Height) {
		return fl
	}
	resized := imaging.Resize(fl.Image, size.Width, size.Height, imaging.Lanczos)
	dst := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(dst, dst.Rect, resized, resized.Bounds().Min, draw.Src)
	return Flattened{Index: fl.Index, Image: dst}
}
