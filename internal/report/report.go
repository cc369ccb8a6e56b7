// Package report compares output artifact sizes against the source and
// writes the plain-text compression report.
package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/backmassage/apngpress/internal/apperr"
	"github.com/backmassage/apngpress/internal/config"
	"github.com/backmassage/apngpress/internal/display"
	"github.com/backmassage/apngpress/internal/probe"
)

// Artifact is one generated output file.
type Artifact struct {
	Format config.Format
	Path   string
	Size   int64
}

// Source is the part of the analyzer result the report shows.
type Source struct {
	Path       string
	Size       int64
	Width      int
	Height     int
	FrameCount int
	AvgFPS     float64
}

// SourceFrom copies the reported fields out of an analyzer result.
func SourceFrom(info *probe.Info) Source {
	return Source{
		Path:       info.Path,
		Size:       info.FileSize,
		Width:      info.Width,
		Height:     info.Height,
		FrameCount: info.FrameCount,
		AvgFPS:     info.AvgFPS,
	}
}

// Stat builds an Artifact from a file on disk.
func Stat(format config.Format, path string) (Artifact, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Format: format, Path: path, Size: fi.Size()}, nil
}

// Ratio is 1 - artifact/source. Negative when the artifact is larger; 0
// for an empty source.
func Ratio(a Artifact, src Source) float64 {
	if src.Size <= 0 {
		return 0
	}
	return 1 - float64(a.Size)/float64(src.Size)
}

// Smallest returns the artifact with the fewest bytes. Ties keep the
// earlier entry. ok is false for an empty list.
func Smallest(artifacts []Artifact) (best Artifact, ok bool) {
	for i, a := range artifacts {
		if i == 0 || a.Size < best.Size {
			best = a
		}
	}
	return best, len(artifacts) > 0
}

// Write renders the report to path. Artifacts whose file no longer exists
// are left out; sizes are re-read from disk.
func Write(path string, src Source, opts config.CompressionOptions, artifacts []Artifact) error {
	if err := write(path, Render(src, opts, present(artifacts))); err != nil {
		return apperr.New(apperr.ErrReport, "report", path, err)
	}
	return nil
}

func present(artifacts []Artifact) []Artifact {
	out := make([]Artifact, 0, len(artifacts))
	for _, a := range artifacts {
		fi, err := os.Stat(a.Path)
		if err != nil {
			continue
		}
		a.Size = fi.Size()
		out = append(out, a)
	}
	return out
}

// Render formats the report text.
func Render(src Source, opts config.CompressionOptions, artifacts []Artifact) string {
	var b strings.Builder
	b.WriteString("APNG compression report\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	b.WriteString("Source:\n")
	fmt.Fprintf(&b, "  File:   %s\n", filepath.Base(src.Path))
	fmt.Fprintf(&b, "  Size:   %s\n", display.FormatMB(src.Size))
	fmt.Fprintf(&b, "  Dims:   %dx%d\n", src.Width, src.Height)
	fmt.Fprintf(&b, "  Frames: %d\n", src.FrameCount)
	fmt.Fprintf(&b, "  Rate:   %s\n\n", display.FormatFPS(src.AvgFPS))

	b.WriteString("Settings:\n")
	fmt.Fprintf(&b, "  JPEG quality: %d\n", opts.Quality)
	fmt.Fprintf(&b, "  Resize:       %s\n", sizeLabel(opts.Resize))
	fmt.Fprintf(&b, "  GIF %s, WebP %s (q%d), MP4 %s (crf %d)\n\n",
		display.FormatFPS(opts.GIFFPS), display.FormatFPS(opts.WebPFPS), opts.WebPQuality,
		display.FormatFPS(opts.MP4FPS), opts.MP4CRF)

	b.WriteString("Outputs:\n")
	if len(artifacts) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, a := range artifacts {
		fmt.Fprintf(&b, "  %s: %s\n", strings.ToUpper(string(a.Format)), filepath.Base(a.Path))
		fmt.Fprintf(&b, "    Size:        %s\n", display.FormatMB(a.Size))
		fmt.Fprintf(&b, "    Compression: %s\n\n", display.FormatPercent(Ratio(a, src)))
	}
	if best, ok := Smallest(artifacts); ok {
		fmt.Fprintf(&b, "Smallest: %s (%s)\n", strings.ToUpper(string(best.Format)), display.FormatMB(best.Size))
	}
	return b.String()
}

func sizeLabel(s config.Size) string {
	if s.IsZero() {
		return "original"
	}
	return s.String()
}

func write(path, text string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(text); err != nil {
		return err
	}
	return w.Flush()
}
