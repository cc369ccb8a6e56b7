package pipeline

import (
	"time"

	"github.com/backmassage/apngpress/internal/naming"
	"github.com/backmassage/apngpress/internal/planner"
	"github.com/backmassage/apngpress/internal/probe"
	"github.com/backmassage/apngpress/internal/report"
)

// Result collects what a run produced. Fields are filled as stages finish,
// so a failed run still reports how far it got.
type Result struct {
	Info      *probe.Info
	Plan      planner.Plan
	Layout    naming.Layout
	Frames    int
	Stills    []string
	Artifacts []report.Artifact
	Stages    []StageTiming
	Elapsed   time.Duration
}

// StageTiming is the wall time of one stage.
type StageTiming struct {
	Name    string
	Elapsed time.Duration
}

// Smallest returns the recommended (smallest) artifact.
func (r *Result) Smallest() (report.Artifact, bool) {
	return report.Smallest(r.Artifacts)
}

// TotalOutputBytes sums every artifact's size.
func (r *Result) TotalOutputBytes() int64 {
	var n int64
	for _, a := range r.Artifacts {
		n += a.Size
	}
	return n
}

func (r *Result) track(name string, start time.Time) {
	r.Stages = append(r.Stages, StageTiming{Name: name, Elapsed: time.Since(start)})
}
