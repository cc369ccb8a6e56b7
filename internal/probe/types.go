package probe

import (
	"time"

	"github.com/backmassage/apngpress/internal/frames"
)

// Info is the analyzer's view of one source file.
type Info struct {
	Path       string
	Format     string // "PNG" or "APNG"
	Width      int
	Height     int
	Mode       frames.ColorMode // declared in IHDR
	BitDepth   int
	Interlaced bool
	Animated   bool
	FrameCount int
	LoopCount  uint
	Delays     []int // per-frame delay in ms; nil when not animated
	AvgFPS     float64
	FileSize   int64
}

// Aspect returns width / height, or 0 for a degenerate header.
func (i *Info) Aspect() float64 {
	if i.Height == 0 {
		return 0
	}
	return float64(i.Width) / float64(i.Height)
}

// Duration is the sum of all frame delays.
func (i *Info) Duration() time.Duration {
	var total time.Duration
	for _, d := range i.Delays {
		total += time.Duration(d) * time.Millisecond
	}
	return total
}

// avgFPS returns 1000 / mean(delays), or 0 for an empty list.
func avgFPS(delays []int) float64 {
	if len(delays) == 0 {
		return 0
	}
	sum := 0
	for _, d := range delays {
		sum += d
	}
	if sum == 0 {
		return 0
	}
	return 1000 / (float64(sum) / float64(len(delays)))
}
