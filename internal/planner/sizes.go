package planner

import "github.com/backmassage/apngpress/internal/config"

// Target heights and widths listed by --dims.
var (
	DimHeights = []int{480, 720, 1080, 1440}
	DimWidths  = []int{854, 1280, 1920, 2560}
)

// ForHeights returns, per target height, the aspect-preserving size with
// the width truncated then bumped up to an even number.
func ForHeights(w, h int, heights []int) []config.Size {
	if w <= 0 || h <= 0 {
		return nil
	}
	aspect := float64(w) / float64(h)
	out := make([]config.Size, 0, len(heights))
	for _, th := range heights {
		out = append(out, config.Size{Width: evenUp(int(float64(th) * aspect)), Height: th})
	}
	return out
}

// ForWidths is ForHeights with the roles swapped: the height is derived
// from each target width.
func ForWidths(w, h int, widths []int) []config.Size {
	if w <= 0 || h <= 0 {
		return nil
	}
	aspect := float64(w) / float64(h)
	out := make([]config.Size, 0, len(widths))
	for _, tw := range widths {
		out = append(out, config.Size{Width: tw, Height: evenUp(int(float64(tw) / aspect))})
	}
	return out
}

func evenUp(n int) int {
	if n%2 != 0 {
		return n + 1
	}
	return n
}

// EvenDown rounds n down to the nearest even number.
func EvenDown(n int) int {
	return n &^ 1
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
