// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// --- Enum types for validated string fields ---

// Format is an animated output format.
type Format string

const (
	FormatGIF  Format = "gif"
	FormatWebP Format = "webp"
	FormatMP4  Format = "mp4"
)

// AllFormats is the default output set, in the order the encoders run.
var AllFormats = []Format{FormatGIF, FormatWebP, FormatMP4}

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Preset names accepted by --preset. Sizes are computed per source by the
// planner package.
const (
	PresetUltra  = "ultra"
	PresetHigh   = "high"
	PresetMedium = "medium"
	PresetLow    = "low"
)

// Size is a pixel width/height pair. The zero Size means "no resize".
type Size struct {
	Width  int
	Height int
}

// IsZero reports whether no size is set.
func (s Size) IsZero() bool { return s.Width == 0 && s.Height == 0 }

func (s Size) String() string {
	if s.IsZero() {
		return ""
	}
	return strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height)
}

// ParseSize parses a "WIDTHxHEIGHT" spec such as "1280x720".
func ParseSize(spec string) (Size, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(spec)), "x")
	if len(parts) != 2 {
		return Size{}, fmt.Errorf("invalid resize %q (use WIDTHxHEIGHT, e.g. 1280x720)", spec)
	}
	w, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, errH := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return Size{}, fmt.Errorf("invalid resize %q (use WIDTHxHEIGHT, e.g. 1280x720)", spec)
	}
	return Size{Width: w, Height: h}, nil
}

// CompressionOptions is the per-run encoding bundle shared by the transcoder
// and the animation encoders.
type CompressionOptions struct {
	Quality int  // JPEG quality 1-100. Default: 85.
	Resize  Size // Exact still size; zero keeps the source size.

	GIFFPS  float64 // Default: 10.
	WebPFPS float64 // Default: 15.
	MP4FPS  float64 // Default: 24.

	WebPQuality int // Lossy WebP quality 1-100. Default: 80.
	MP4CRF      int // H.264 CRF 0-51. Default: 23.
}

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Paths.
	InputPath string
	OutputDir string // Default: "output".

	Compression CompressionOptions
	Formats     []Format // Default: gif, webp, mp4.
	Preset      string   // Optional preset; applied once source dimensions are known.

	// Set during flag parsing when the user passed the flag explicitly, so a
	// preset does not override them.
	QualitySet bool
	ResizeSet  bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
	DimsOnly  bool      // Print source dimensions and size suggestions, then exit.
}

// DefaultConfig returns a Config with the documented CLI defaults. Used as
// the base before [ParseFlags].
func DefaultConfig() Config {
	return Config{
		OutputDir: "output",
		Compression: CompressionOptions{
			Quality:     85,
			GIFFPS:      10,
			WebPFPS:     15,
			MP4FPS:      24,
			WebPQuality: 80,
			MP4CRF:      23,
		},
		Formats:   append([]Format(nil), AllFormats...),
		ColorMode: ColorAuto,
	}
}

// Wants reports whether format f is selected for this run.
func (c *Config) Wants(f Format) bool {
	for _, x := range c.Formats {
		if x == f {
			return true
		}
	}
	return false
}

// Validate checks value ranges. When not in CheckOnly mode it also requires
// an input path.
func (c *Config) Validate() error {
	o := &c.Compression
	if o.Quality < 1 || o.Quality > 100 {
		return fmt.Errorf("invalid quality %d (use 1-100)", o.Quality)
	}
	if o.WebPQuality < 1 || o.WebPQuality > 100 {
		return fmt.Errorf("invalid WebP quality %d (use 1-100)", o.WebPQuality)
	}
	if o.MP4CRF < 0 || o.MP4CRF > 51 {
		return fmt.Errorf("invalid MP4 CRF %d (use 0-51)", o.MP4CRF)
	}
	for _, fps := range []struct {
		name string
		v    float64
	}{{"GIF", o.GIFFPS}, {"WebP", o.WebPFPS}, {"MP4", o.MP4FPS}} {
		if fps.v <= 0 {
			return fmt.Errorf("invalid %s frame rate %g (must be positive)", fps.name, fps.v)
		}
	}
	if o.Resize.Width < 0 || o.Resize.Height < 0 || (o.Resize.Width == 0) != (o.Resize.Height == 0) {
		return errors.New("invalid resize (both width and height must be positive)")
	}

	switch c.Preset {
	case "", PresetUltra, PresetHigh, PresetMedium, PresetLow:
		// valid
	default:
		return fmt.Errorf("invalid preset %q (use ultra, high, medium or low)", c.Preset)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q", c.ColorMode)
	}

	if len(c.Formats) == 0 {
		return errors.New("no output formats selected")
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputPath == "" {
		return errors.New("need an input file")
	}
	if c.OutputDir == "" {
		return errors.New("output directory must not be empty")
	}
	return nil
}

// ParseFormats parses a comma-separated format list ("gif,webp,mp4"),
// dropping duplicates and keeping encoder order.
func ParseFormats(raw string) ([]Format, error) {
	seen := make(map[Format]bool)
	for _, part := range strings.Split(raw, ",") {
		p := Format(strings.ToLower(strings.TrimSpace(part)))
		if p == "" {
			continue
		}
		switch p {
		case FormatGIF, FormatWebP, FormatMP4:
			seen[p] = true
		default:
			return nil, fmt.Errorf("invalid format %q (use gif, webp, mp4)", part)
		}
	}
	var out []Format
	for _, f := range AllFormats {
		if seen[f] {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no output formats selected")
	}
	return out, nil
}
