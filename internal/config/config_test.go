package config

import (
	"testing"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Size
		wantErr bool
	}{
		{"typical", "1280x720", Size{1280, 720}, false},
		{"uppercase X", "406X720", Size{406, 720}, false},
		{"spaces", " 640 x 480 ", Size{640, 480}, false},
		{"missing height", "1280x", Size{}, true},
		{"no separator", "1280", Size{}, true},
		{"three parts", "1x2x3", Size{}, true},
		{"zero", "0x720", Size{}, true},
		{"negative", "-5x5", Size{}, true},
		{"not a number", "wide x tall", Size{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []Format
		wantErr bool
	}{
		{"all", "gif,webp,mp4", []Format{FormatGIF, FormatWebP, FormatMP4}, false},
		{"reordered keeps encoder order", "mp4,gif", []Format{FormatGIF, FormatMP4}, false},
		{"duplicates", "webp,WEBP", []Format{FormatWebP}, false},
		{"webp only variant", "webp, mp4", []Format{FormatWebP, FormatMP4}, false},
		{"unknown", "avif", nil, true},
		{"empty", " , ", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormats(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseFormats(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults with input", func(c *Config) {}, false},
		{"quality zero", func(c *Config) { c.Compression.Quality = 0 }, true},
		{"quality 101", func(c *Config) { c.Compression.Quality = 101 }, true},
		{"quality 1", func(c *Config) { c.Compression.Quality = 1 }, false},
		{"gif fps zero", func(c *Config) { c.Compression.GIFFPS = 0 }, true},
		{"mp4 fps negative", func(c *Config) { c.Compression.MP4FPS = -1 }, true},
		{"crf out of range", func(c *Config) { c.Compression.MP4CRF = 52 }, true},
		{"webp quality zero", func(c *Config) { c.Compression.WebPQuality = 0 }, true},
		{"half resize", func(c *Config) { c.Compression.Resize = Size{Width: 10} }, true},
		{"unknown preset", func(c *Config) { c.Preset = "extreme" }, true},
		{"known preset", func(c *Config) { c.Preset = PresetHigh }, false},
		{"no formats", func(c *Config) { c.Formats = nil }, true},
		{"no input", func(c *Config) { c.InputPath = "" }, true},
		{"no input in check mode", func(c *Config) { c.InputPath = ""; c.CheckOnly = true }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.InputPath = "u1_original.png"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, []string{"in.png"}, "test"); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.InputPath != "in.png" || cfg.OutputDir != "output" {
		t.Errorf("paths = %q, %q", cfg.InputPath, cfg.OutputDir)
	}
	o := cfg.Compression
	if o.Quality != 85 || o.GIFFPS != 10 || o.WebPFPS != 15 || o.MP4FPS != 24 {
		t.Errorf("defaults = %+v", o)
	}
	if !o.Resize.IsZero() {
		t.Errorf("Resize = %v, want zero", o.Resize)
	}
	if cfg.QualitySet || cfg.ResizeSet {
		t.Error("explicit markers set without flags")
	}
	if len(cfg.Formats) != 3 {
		t.Errorf("Formats = %v", cfg.Formats)
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	cfg := DefaultConfig()
	args := []string{
		"-o", "u1_compressed", "-q", "80", "--resize", "406x720",
		"--gif-fps", "12", "--formats", "webp,mp4", "--no-color", "in.png",
	}
	if err := ParseFlags(&cfg, args, "test"); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.OutputDir != "u1_compressed" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Compression.Quality != 80 || !cfg.QualitySet {
		t.Errorf("Quality = %d (set=%v)", cfg.Compression.Quality, cfg.QualitySet)
	}
	if cfg.Compression.Resize != (Size{406, 720}) || !cfg.ResizeSet {
		t.Errorf("Resize = %v (set=%v)", cfg.Compression.Resize, cfg.ResizeSet)
	}
	if cfg.Compression.GIFFPS != 12 {
		t.Errorf("GIFFPS = %g", cfg.Compression.GIFFPS)
	}
	if cfg.Wants(FormatGIF) || !cfg.Wants(FormatWebP) || !cfg.Wants(FormatMP4) {
		t.Errorf("Formats = %v", cfg.Formats)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q", cfg.ColorMode)
	}
}

func TestParseFlags_MalformedResize(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, []string{"--resize", "1280by720", "in.png"}, "test"); err == nil {
		t.Fatal("expected error for malformed resize")
	}
}

func TestParseFlags_PositionalArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"none", nil, true},
		{"two inputs", []string{"a.png", "b.png"}, true},
		{"check without input", []string{"--check"}, false},
		{"check with input", []string{"-c", "a.png"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := ParseFlags(&cfg, tt.args, "test")
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFlags(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
		})
	}
}
