package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into output, encoding, frame rate, display, and utility.
// Negated flags (e.g. --no-color) are applied after Parse so Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses args (normally os.Args[1:]) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (unknown flag,
// malformed --resize, missing input).
func ParseFlags(cfg *Config, args []string, version string) error {
	fs := flag.NewFlagSet("apngpress", flag.ContinueOnError)
	fs.Usage = func() { printUsage(version) }

	var negated negatedFlags

	defineOutputFlags(fs, cfg)
	defineEncodingFlags(fs, cfg)
	defineFrameRateFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)
	markExplicitFlags(fs, cfg)

	if negated.showHelp {
		printUsage(version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "apngpress v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineOutputFlags registers -o/--output, --formats, --preset.
func defineOutputFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Output directory")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "Same as --output")
	fs.Var(&formatsValue{&cfg.Formats}, "formats", "Output formats: comma list of gif, webp, mp4")
	fs.StringVar(&cfg.Preset, "preset", "", "Size/quality preset: ultra | high | medium | low")
}

// defineEncodingFlags registers -q/--quality, --resize, --webp-quality, --mp4-crf.
func defineEncodingFlags(fs *flag.FlagSet, cfg *Config) {
	o := &cfg.Compression
	fs.IntVar(&o.Quality, "quality", o.Quality, "JPEG quality 1-100")
	fs.IntVar(&o.Quality, "q", o.Quality, "Same as --quality")
	fs.Var(&sizeValue{&o.Resize}, "resize", "Resize stills to WIDTHxHEIGHT")
	fs.IntVar(&o.WebPQuality, "webp-quality", o.WebPQuality, "WebP quality 1-100")
	fs.IntVar(&o.MP4CRF, "mp4-crf", o.MP4CRF, "MP4 constant rate factor 0-51")
}

// defineFrameRateFlags registers the per-format frame rates.
func defineFrameRateFlags(fs *flag.FlagSet, cfg *Config) {
	o := &cfg.Compression
	fs.Float64Var(&o.GIFFPS, "gif-fps", o.GIFFPS, "GIF frame rate")
	fs.Float64Var(&o.WebPFPS, "webp-fps", o.WebPFPS, "WebP frame rate")
	fs.Float64Var(&o.MP4FPS, "mp4-fps", o.MP4FPS, "MP4 frame rate")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --dims, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&cfg.DimsOnly, "dims", false, "Print source dimensions and suggested sizes, then exit")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// markExplicitFlags records which preset-controlled values the user set.
func markExplicitFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "quality", "q":
			cfg.QualitySet = true
		case "resize":
			cfg.ResizeSet = true
		}
	})
}

// parsePositionalArgs sets InputPath from the single positional arg. In
// CheckOnly mode the input is optional (it is checked when given).
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly && len(args) <= 1 {
		if len(args) == 1 {
			cfg.InputPath = args[0]
		}
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("need exactly one input file (got %d arguments)", len(args))
	}
	cfg.InputPath = args[0]
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(version string) {
	const col1 = 28
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "apngpress v" + version + " - APNG to GIF/WebP/MP4 size comparison"},
		{"", ""},
		{"  apngpress [OPTIONS] <input.png>", ""},
		{"", ""},
		{"Output", ""},
		{"  -o, --output <dir>", "Output directory (default: output)"},
		{"  --formats <list>", "Comma list of gif, webp, mp4 (default: all)"},
		{"  --preset <name>", "ultra (480p) | high (720p) | medium (1080p) | low (1440p)"},
		{"", ""},
		{"Encoding", ""},
		{"  -q, --quality <1-100>", "JPEG still quality (default: 85)"},
		{"  --resize <WxH>", "Resize stills to exactly WIDTHxHEIGHT"},
		{"  --webp-quality <1-100>", "WebP quality (default: 80)"},
		{"  --mp4-crf <0-51>", "MP4 constant rate factor (default: 23)"},
		{"", ""},
		{"Frame rates", ""},
		{"  --gif-fps <n>", "GIF frame rate (default: 10)"},
		{"  --webp-fps <n>", "WebP frame rate (default: 15)"},
		{"  --mp4-fps <n>", "MP4 frame rate (default: 24)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  --dims", "Print source dimensions and suggested sizes"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, H.264, output dir)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters for WxH sizes and the format list.

type sizeValue struct{ p *Size }

func (s *sizeValue) String() string {
	if s.p == nil {
		return ""
	}
	return s.p.String()
}

func (s *sizeValue) Set(v string) error {
	size, err := ParseSize(v)
	if err != nil {
		return err
	}
	*s.p = size
	return nil
}

type formatsValue struct{ p *[]Format }

func (f *formatsValue) String() string {
	if f.p == nil {
		return ""
	}
	parts := make([]string, len(*f.p))
	for i, x := range *f.p {
		parts[i] = string(x)
	}
	return strings.Join(parts, ",")
}

func (f *formatsValue) Set(v string) error {
	formats, err := ParseFormats(v)
	if err != nil {
		return err
	}
	*f.p = formats
	return nil
}
