// Package pipeline runs one conversion end to end:
//
//	analyze -> plan -> create layout -> extract -> transcode ->
//	encode (gif, webp, mp4 in that order) -> report
//
// Each stage completes before the next starts. Any stage error aborts the
// run; partial outputs stay on disk.
package pipeline
