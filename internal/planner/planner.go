package planner

import (
	"fmt"

	"github.com/backmassage/apngpress/internal/config"
)

// Plan is the resolved compression setup for one run.
type Plan struct {
	Options config.CompressionOptions
	Preset  string
	Note    string
}

// Resolve applies cfg.Preset (if any) to a w x h source. An explicit
// --quality or --resize always wins over the preset's value.
func Resolve(cfg *config.Config, w, h int) (Plan, error) {
	plan := Plan{Options: cfg.Compression}
	if cfg.Preset == "" {
		plan.Note = "no preset"
		return plan, nil
	}
	p, err := Lookup(cfg.Preset, w, h)
	if err != nil {
		return Plan{}, err
	}
	plan.Preset = p.Name
	if !cfg.QualitySet {
		plan.Options.Quality = p.Quality
	}
	if !cfg.ResizeSet {
		plan.Options.Resize = p.Size
	}
	plan.Note = fmt.Sprintf("preset %s (%s, q=%d, quality_override=%v, resize_override=%v)",
		p.Name, p.Size, p.Quality, cfg.QualitySet, cfg.ResizeSet)
	return plan, nil
}
