package encode

import (
	"bufio"
	"context"
	"fmt"

	"github.com/deepteams/webp"
	"github.com/deepteams/webp/animation"

	"github.com/backmassage/apngpress/internal/apperr"
	"github.com/backmassage/apngpress/internal/config"
	"github.com/backmassage/apngpress/internal/naming"
	"github.com/backmassage/apngpress/internal/report"
)

// WebPEncoder builds a looping lossy animated WebP from the JPEG stills.
type WebPEncoder struct {
	Quality int
	FPS     float64
	Log     Logger
}

// stillPreset tunes the per-frame VP8 encoder for photographic input,
// which JPEG stills always are.
const stillPreset = webp.PresetPhoto

// animOptions derives the animation options from the still preset. The
// root webp package also registers the frame encoder AddFrame relies on.
func (e WebPEncoder) animOptions() *animation.EncodeOptions {
	opts := webp.OptionsForPreset(stillPreset, float32(e.Quality))
	return &animation.EncodeOptions{
		LoopCount: 0,
		Quality:   int(opts.Quality),
		Lossless:  opts.Lossless,
	}
}

func (WebPEncoder) Format() config.Format { return config.FormatWebP }

// Encode implements Encoder. The canvas is the first still's size; every
// other still must match it.
func (e WebPEncoder) Encode(ctx context.Context, in Input, out string) (report.Artifact, error) {
	stills, err := naming.ListStills(in.StillsDir)
	if err != nil {
		return report.Artifact{}, apperr.Encode("webp", in.StillsDir, err)
	}
	if len(stills) == 0 {
		return report.Artifact{}, apperr.Encodef("webp", in.StillsDir, "no stills found")
	}

	first, err := decodeStill(stills[0])
	if err != nil {
		return report.Artifact{}, apperr.Encode("webp", stills[0], err)
	}
	w, h := first.Bounds().Dx(), first.Bounds().Dy()
	dur := FrameDuration(e.FPS)

	err = createFile(out, func(bw *bufio.Writer) error {
		enc := animation.NewEncoder(bw, w, h, e.animOptions())
		for i, path := range stills {
			if err := ctx.Err(); err != nil {
				return err
			}
			img := first
			if i > 0 {
				if img, err = decodeStill(path); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
				return fmt.Errorf("%s is %dx%d, canvas is %dx%d", path, b.Dx(), b.Dy(), w, h)
			}
			if err := enc.AddFrame(toNRGBA(img), dur); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			e.Log.Debug("webp: frame %d <- %s", i, path)
		}
		return enc.Close()
	})
	if err != nil {
		return report.Artifact{}, apperr.Encode("webp", out, err)
	}
	a, err := report.Stat(config.FormatWebP, out)
	if err != nil {
		return report.Artifact{}, apperr.Encode("webp", out, err)
	}
	return a, nil
}
