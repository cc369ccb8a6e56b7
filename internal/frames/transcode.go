package frames

import (
	"bufio"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"os"

	"go.uber.org/multierr"

	"github.com/backmassage/apngpress/internal/apperr"
	"github.com/backmassage/apngpress/internal/config"
	"github.com/backmassage/apngpress/internal/naming"
)

// ErrNothingToTranscode is the cause when Transcode runs before extraction.
var ErrNothingToTranscode = errors.New("no frames available (extraction not run)")

// Transcode flattens, optionally resizes, and JPEG-encodes every frame into
// stillsDir. The returned paths match frames in length and order.
func Transcode(ctx context.Context, frames []Frame, opts config.CompressionOptions, stillsDir string, log Logger) ([]string, error) {
	if len(frames) == 0 {
		return nil, apperr.New(apperr.ErrTranscode, "transcode", stillsDir, ErrNothingToTranscode)
	}
	paths := make([]string, 0, len(frames))
	for _, f := range frames {
		if err := ctx.Err(); err != nil {
			return paths, apperr.New(apperr.ErrTranscode, "transcode", stillsDir, err)
		}
		fl := Resize(Flatten(f), opts.Resize)
		out := naming.FramePath(stillsDir, f.Index, "jpg")
		if err := writeJPEG(out, fl.Image, opts.Quality); err != nil {
			return paths, apperr.New(apperr.ErrTranscode, "transcode", out, err)
		}
		b := fl.Image.Bounds()
		log.Debug("still %d: %dx%d q=%d -> %s", f.Index, b.Dx(), b.Dy(), opts.Quality, out)
		paths = append(paths, out)
	}
	return paths, nil
}

func writeJPEG(path string, img image.Image, quality int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	w := bufio.NewWriter(f)
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
		return err
	}
	return w.Flush()
}
