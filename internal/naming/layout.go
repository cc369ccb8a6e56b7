package naming

import (
	"fmt"
	"os"
	"path/filepath"
)

// Fixed names inside the output directory.
const (
	FramesDirName = "frames"
	StillsDirName = "jpg_frames"
	ReportName    = "compression_report.txt"
	outputStem    = "compressed"
)

// Layout is the on-disk layout of one run:
//
//	<root>/frames/frame_XXXX.png
//	<root>/jpg_frames/frame_XXXX.jpg
//	<root>/compressed.{gif,webp,mp4}
//	<root>/compression_report.txt
type Layout struct {
	Root      string
	FramesDir string
	StillsDir string
	Report    string
}

// NewLayout computes the layout under root without touching the filesystem.
func NewLayout(root string) Layout {
	return Layout{
		Root:      root,
		FramesDir: filepath.Join(root, FramesDirName),
		StillsDir: filepath.Join(root, StillsDirName),
		Report:    filepath.Join(root, ReportName),
	}
}

// Create makes the root, frames and stills directories. Existing
// directories are reused; their contents are not cleared.
func (l Layout) Create() error {
	for _, dir := range []string{l.Root, l.FramesDir, l.StillsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// Output returns the path of the animated output for an extension
// ("gif", "webp", "mp4").
func (l Layout) Output(ext string) string {
	return filepath.Join(l.Root, outputStem+"."+ext)
}

// FrameName returns "frame_XXXX.<ext>" with the index zero-padded to at
// least four digits.
func FrameName(index int, ext string) string {
	return fmt.Sprintf("frame_%04d.%s", index, ext)
}

// FramePath joins dir and FrameName.
func FramePath(dir string, index int, ext string) string {
	return filepath.Join(dir, FrameName(index, ext))
}
