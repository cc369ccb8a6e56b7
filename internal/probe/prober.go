package probe

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/kettek/apng"

	"github.com/backmassage/apngpress/internal/apperr"
	"github.com/backmassage/apngpress/internal/frames"
)

// Analyze inspects the image at path. A missing path fails with
// apperr.ErrNotFound before anything else happens, so no output directory
// exists yet. Anything other than a decodable PNG/APNG fails with
// apperr.ErrDecode.
func Analyze(path string) (*Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.New(apperr.ErrNotFound, "analyze", path, err)
		}
		return nil, apperr.New(apperr.ErrDecode, "analyze", path, err)
	}
	if fi.IsDir() {
		return nil, apperr.New(apperr.ErrDecode, "analyze", path, errors.New("is a directory"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.New(apperr.ErrDecode, "analyze", path, err)
	}
	info, err := analyzeBytes(data)
	if err != nil {
		return nil, apperr.New(apperr.ErrDecode, "analyze", path, err)
	}
	info.Path = path
	info.FileSize = fi.Size()
	return info, nil
}

func analyzeBytes(data []byte) (*Info, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, err
	}
	if kind != matchers.TypePng {
		if kind == filetype.Unknown {
			return nil, errors.New("unrecognized file type")
		}
		return nil, fmt.Errorf("unsupported container %s (%s)", kind.Extension, kind.MIME.Value)
	}

	hdr, err := parseIHDR(data)
	if err != nil {
		return nil, err
	}
	a, err := apng.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(a.Frames) == 0 {
		return nil, frames.ErrNoFrames
	}

	info := &Info{
		Format:     "PNG",
		Width:      hdr.Width,
		Height:     hdr.Height,
		Mode:       hdr.Mode(),
		BitDepth:   hdr.BitDepth,
		Interlaced: hdr.Interlaced,
		FrameCount: 1,
	}
	if hasChunk(data, "acTL") {
		info.Format = "APNG"
	}

	anim := frames.AnimationFrames(a)
	if len(anim) > 1 {
		info.Animated = true
		info.FrameCount = len(anim)
		info.LoopCount = a.LoopCount
		info.Delays = make([]int, len(anim))
		for i, f := range anim {
			info.Delays[i] = delayMS(f.DelayNumerator, f.DelayDenominator)
		}
		info.AvgFPS = avgFPS(info.Delays)
	}
	return info, nil
}

// delayMS is the declared fcTL delay in ms. Unlike frames.FrameDelay, a
// zero numerator stays 0 so the reported rate reflects the file as written.
func delayMS(num, den uint16) int {
	if den == 0 {
		den = 100
	}
	return int(math.Round(float64(num) * 1000 / float64(den)))
}
