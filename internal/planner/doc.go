// Package planner turns source dimensions into aspect-preserving output
// sizes: the four named presets, the --dims size tables, and the resolved
// compression options for a run.
package planner
