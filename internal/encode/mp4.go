package encode

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"golang.org/x/image/draw"

	"github.com/backmassage/apngpress/internal/apperr"
	"github.com/backmassage/apngpress/internal/config"
	"github.com/backmassage/apngpress/internal/ffmpeg"
	"github.com/backmassage/apngpress/internal/naming"
	"github.com/backmassage/apngpress/internal/planner"
	"github.com/backmassage/apngpress/internal/report"
)

// MP4Encoder pipes the JPEG stills as raw RGBA into ffmpeg.
type MP4Encoder struct {
	FPS     float64
	CRF     int
	Runner  ffmpeg.Runner
	Verbose bool
	Log     Logger
}

func (MP4Encoder) Format() config.Format { return config.FormatMP4 }

// Encode implements Encoder. Output dimensions are the first still's,
// each rounded down to even; every still is resampled to exactly that.
func (e MP4Encoder) Encode(ctx context.Context, in Input, out string) (report.Artifact, error) {
	stills, err := naming.ListStills(in.StillsDir)
	if err != nil {
		return report.Artifact{}, apperr.Encode("mp4", in.StillsDir, err)
	}
	if len(stills) == 0 {
		return report.Artifact{}, apperr.Encodef("mp4", in.StillsDir, "no stills found")
	}
	first, err := decodeStill(stills[0])
	if err != nil {
		return report.Artifact{}, apperr.Encode("mp4", stills[0], err)
	}
	size := evenSize(first.Bounds())
	if size.Width == 0 || size.Height == 0 {
		b := first.Bounds()
		return report.Artifact{}, apperr.Encodef("mp4", stills[0], "%dx%d still is too small for video", b.Dx(), b.Dy())
	}

	params := ffmpeg.MP4Params{Width: size.Width, Height: size.Height, FPS: e.FPS, Output: out, Verbose: e.Verbose}
	rs := ffmpeg.NewRetryState(e.CRF)
	for {
		args := ffmpeg.BuildMP4(params, rs)
		e.Log.Debug("mp4: %v", args)

		res, feedErr := e.run(ctx, args, stills, size)
		if err := ctx.Err(); err != nil {
			return report.Artifact{}, apperr.Encode("mp4", out, err)
		}
		if feedErr != nil && !errors.Is(feedErr, io.ErrClosedPipe) {
			return report.Artifact{}, apperr.Encode("mp4", out, feedErr)
		}
		if res.Err == nil {
			break
		}
		action := rs.Advance(res.Stderr)
		if action == ffmpeg.RetryNone {
			if tail := ffmpeg.Tail(res.Stderr, 5); tail != "" {
				e.Log.Warn("mp4: ffmpeg stderr:\n%s", tail)
			}
			return report.Artifact{}, apperr.Encode("mp4", out, fmt.Errorf("ffmpeg (%s): %w", rs.Codec, res.Err))
		}
		e.Log.Warn("mp4: %s unavailable, retrying (%s)", ffmpeg.CodecH264, action)
	}

	a, err := report.Stat(config.FormatMP4, out)
	if err != nil {
		return report.Artifact{}, apperr.Encode("mp4", out, err)
	}
	return a, nil
}

// run executes one ffmpeg attempt while a goroutine feeds frames into its
// stdin.
func (e MP4Encoder) run(ctx context.Context, args, stills []string, size config.Size) (ffmpeg.ExecResult, error) {
	pr, pw := io.Pipe()
	done := make(chan error, 1)
	go func() {
		err := feedFrames(ctx, pw, stills, size)
		pw.CloseWithError(err)
		done <- err
	}()
	res := e.Runner.Run(ctx, args, pr)
	pr.Close()
	return res, <-done
}

func feedFrames(ctx context.Context, w io.Writer, stills []string, size config.Size) error {
	dst := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	for _, path := range stills {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := decodeStill(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		resample(dst, img)
		if _, err := w.Write(dst.Pix); err != nil {
			return err
		}
	}
	return nil
}

// resample fills dst from src, scaling bilinearly unless sizes match.
func resample(dst *image.RGBA, src image.Image) {
	sb := src.Bounds()
	if sb.Dx() == dst.Rect.Dx() && sb.Dy() == dst.Rect.Dy() {
		draw.Draw(dst, dst.Rect, src, sb.Min, draw.Src)
		return
	}
	draw.BiLinear.Scale(dst, dst.Rect, src, sb, draw.Src, nil)
}

func evenSize(b image.Rectangle) config.Size {
	return config.Size{Width: planner.EvenDown(b.Dx()), Height: planner.EvenDown(b.Dy())}
}
