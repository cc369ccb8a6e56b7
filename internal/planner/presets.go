package planner

import (
	"fmt"

	"github.com/backmassage/apngpress/internal/config"
)

// Preset is a named size/quality pair for one source.
type Preset struct {
	Name        string
	Label       string
	Description string
	Size        config.Size
	Quality     int
	Recommended bool
}

type presetSpec struct {
	name, label, desc string
	height, quality   int
}

// Ordered from smallest output to largest.
var presetSpecs = []presetSpec{
	{config.PresetUltra, "ultra compression", "smallest files, good for previews", 480, 70},
	{config.PresetHigh, "high compression", "balanced quality and size", 720, 75},
	{config.PresetMedium, "medium compression", "better quality, larger files", 1080, 80},
	{config.PresetLow, "light compression", "high quality, largest files", 1440, 85},
}

// Presets computes every preset for a w x h source. High is marked as the
// recommended default.
func Presets(w, h int) []Preset {
	sizes := ForHeights(w, h, presetHeights())
	if sizes == nil {
		return nil
	}
	out := make([]Preset, len(presetSpecs))
	for i, s := range presetSpecs {
		out[i] = Preset{
			Name:        s.name,
			Label:       s.label,
			Description: s.desc,
			Size:        sizes[i],
			Quality:     s.quality,
			Recommended: s.name == config.PresetHigh,
		}
	}
	return out
}

// Lookup returns the named preset for a w x h source.
func Lookup(name string, w, h int) (Preset, error) {
	for _, p := range Presets(w, h) {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown preset %q for %dx%d source", name, w, h)
}

func presetHeights() []int {
	hs := make([]int, len(presetSpecs))
	for i, s := range presetSpecs {
		hs[i] = s.height
	}
	return hs
}
