package frames

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"go.uber.org/multierr"

	"github.com/backmassage/apngpress/internal/apperr"
	"github.com/backmassage/apngpress/internal/naming"
)

// Fixed so identical input always yields identical PNG bytes.
var pngEncoder = png.Encoder{CompressionLevel: png.DefaultCompression}

// Extract decodes path with APNGDecoder and writes every frame to
// framesDir as frame_XXXX.png.
func Extract(ctx context.Context, path, framesDir string, log Logger) ([]Frame, error) {
	return ExtractWith(ctx, APNGDecoder{}, path, framesDir, log)
}

// ExtractWith is Extract with an explicit Decoder. Frames already written
// before a failure are left on disk.
func ExtractWith(ctx context.Context, dec Decoder, path, framesDir string, log Logger) ([]Frame, error) {
	fail := func(p string, err error) error {
		return apperr.New(apperr.ErrExtraction, "extract", p, err)
	}

	frames, err := decodeFile(dec, path)
	if err != nil {
		return nil, fail(path, err)
	}
	for i := range frames {
		if err := ctx.Err(); err != nil {
			return nil, fail(path, err)
		}
		frames[i].Index = i
		out := naming.FramePath(framesDir, i, "png")
		if err := writePNG(out, frames[i].Image); err != nil {
			return nil, fail(out, err)
		}
		b := frames[i].Image.Bounds()
		log.Debug("frame %d: %dx%d %s delay=%dms -> %s",
			i, b.Dx(), b.Dy(), frames[i].Mode, frames[i].Delay.Milliseconds(), out)
	}
	return frames, nil
}

func decodeFile(dec Decoder, path string) (frames []Frame, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	frames, err = dec.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	return frames, nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	w := bufio.NewWriter(f)
	if err := pngEncoder.Encode(w, img); err != nil {
		return err
	}
	return w.Flush()
}
