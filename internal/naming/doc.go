// Package naming owns every path the pipeline writes: the output layout,
// per-frame file names, and the sorted listing the WebP and MP4 encoders
// read stills back from.
package naming
