package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/kettek/apng"

	"github.com/backmassage/apngpress/internal/apperr"
	"github.com/backmassage/apngpress/internal/config"
	"github.com/backmassage/apngpress/internal/ffmpeg"
	"github.com/backmassage/apngpress/internal/logging"
	"github.com/backmassage/apngpress/internal/naming"
)

// --- Fixtures ---

var frameColors = []color.NRGBA{
	{0xff, 0, 0, 0xff},
	{0, 0xff, 0, 0x80},
	{0, 0, 0xff, 0xff},
}

// writeAPNG writes a 3-frame animation with 100 ms delays.
func writeAPNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	a := apng.APNG{}
	for _, c := range frameColors {
		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
		}
		a.Frames = append(a.Frames, apng.Frame{
			Image:            img,
			DelayNumerator:   100,
			DelayDenominator: 1000,
			BlendOp:          apng.BLEND_OP_SOURCE,
		})
	}
	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		t.Fatalf("apng.Encode: %v", err)
	}
	path := filepath.Join(dir, "u1.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestConfig(t *testing.T, input string, formats ...config.Format) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.InputPath = input
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.ColorMode = config.ColorNever
	if len(formats) > 0 {
		cfg.Formats = formats
	}
	return &cfg
}

func newTestLogger(t *testing.T, cfg *config.Config) *logging.Logger {
	t.Helper()
	l, err := logging.NewLogger(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

type fakeRunner struct {
	calls [][]string
}

func (f *fakeRunner) Run(_ context.Context, args []string, stdin io.Reader) ffmpeg.ExecResult {
	io.Copy(io.Discard, stdin)
	f.calls = append(f.calls, args)
	os.WriteFile(args[len(args)-1], []byte("fake mp4"), 0o644)
	return ffmpeg.ExecResult{}
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read %s: %v", dir, err)
	}
	return len(entries)
}

// --- Tests ---

func TestRun_GIFAndWebP(t *testing.T) {
	src := writeAPNG(t, t.TempDir(), 12, 8)
	cfg := newTestConfig(t, src, config.FormatGIF, config.FormatWebP)

	res, err := Run(context.Background(), cfg, newTestLogger(t, cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Frames != 3 || len(res.Stills) != 3 {
		t.Errorf("frames=%d stills=%d", res.Frames, len(res.Stills))
	}
	if n := countFiles(t, res.Layout.FramesDir); n != 3 {
		t.Errorf("frames dir holds %d files", n)
	}
	if n := countFiles(t, res.Layout.StillsDir); n != 3 {
		t.Errorf("stills dir holds %d files", n)
	}
	if len(res.Artifacts) != 2 || res.Artifacts[0].Format != config.FormatGIF || res.Artifacts[1].Format != config.FormatWebP {
		t.Fatalf("artifacts = %+v", res.Artifacts)
	}
	if _, err := os.Stat(res.Layout.Output("mp4")); !os.IsNotExist(err) {
		t.Error("mp4 written although not selected")
	}
	if _, err := os.Stat(res.Layout.Report); err != nil {
		t.Errorf("report missing: %v", err)
	}
	if _, ok := res.Smallest(); !ok {
		t.Error("no smallest artifact")
	}

	f, err := os.Open(res.Layout.Output("gif"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("gif.DecodeAll: %v", err)
	}
	if len(g.Image) != 3 {
		t.Fatalf("gif frames = %d", len(g.Image))
	}
	for i, d := range g.Delay {
		if d != 10 {
			t.Errorf("gif delay[%d] = %d cs, want 10", i, d)
		}
	}
}

func TestRun_AllFormatsWithFakeFfmpeg(t *testing.T) {
	src := writeAPNG(t, t.TempDir(), 11, 7)
	cfg := newTestConfig(t, src)
	r := &fakeRunner{}

	res, err := run(context.Background(), cfg, newTestLogger(t, cfg), r)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []config.Format{config.FormatGIF, config.FormatWebP, config.FormatMP4}
	if len(res.Artifacts) != len(want) {
		t.Fatalf("artifacts = %+v", res.Artifacts)
	}
	for i, f := range want {
		if res.Artifacts[i].Format != f {
			t.Errorf("artifact %d = %s, want %s", i, res.Artifacts[i].Format, f)
		}
	}
	if len(r.calls) != 1 {
		t.Fatalf("ffmpeg calls = %d", len(r.calls))
	}
	args := r.calls[0]
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "-s" && args[i+1] != "10x6" {
			t.Errorf("mp4 size = %s, want 10x6", args[i+1])
		}
	}
}

func TestRun_ResizeAppliesToStills(t *testing.T) {
	src := writeAPNG(t, t.TempDir(), 40, 20)
	cfg := newTestConfig(t, src, config.FormatWebP)
	cfg.Compression.Resize = config.Size{Width: 20, Height: 14}
	cfg.ResizeSet = true

	res, err := Run(context.Background(), cfg, newTestLogger(t, cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, p := range res.Stills {
		f, err := os.Open(p)
		if err != nil {
			t.Fatal(err)
		}
		c, err := jpeg.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		if c.Width != 20 || c.Height != 14 {
			t.Errorf("%s is %dx%d, want 20x14", filepath.Base(p), c.Width, c.Height)
		}
	}
}

func TestRun_PresetSizesStills(t *testing.T) {
	src := writeAPNG(t, t.TempDir(), 8, 4)
	cfg := newTestConfig(t, src, config.FormatGIF)
	cfg.Preset = config.PresetUltra

	res, err := Run(context.Background(), cfg, newTestLogger(t, cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := res.Plan.Options.Resize; got != (config.Size{Width: 960, Height: 480}) {
		t.Errorf("preset resize = %v", got)
	}
	if res.Plan.Options.Quality != 70 {
		t.Errorf("preset quality = %d", res.Plan.Options.Quality)
	}
}

func TestRun_MissingInputCreatesNothing(t *testing.T) {
	cfg := newTestConfig(t, filepath.Join(t.TempDir(), "u1_missing.png"))
	_, err := Run(context.Background(), cfg, newTestLogger(t, cfg))
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := os.Stat(cfg.OutputDir); !os.IsNotExist(err) {
		t.Error("output dir created for missing input")
	}
}

func TestRun_Canceled(t *testing.T) {
	src := writeAPNG(t, t.TempDir(), 4, 4)
	cfg := newTestConfig(t, src, config.FormatGIF)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, cfg, newTestLogger(t, cfg))
	if !errors.Is(err, apperr.ErrExtraction) || !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want ErrExtraction wrapping context.Canceled", err)
	}
}

func TestRun_DeterministicFrames(t *testing.T) {
	src := writeAPNG(t, t.TempDir(), 16, 16)
	var first [][]byte
	for pass := 0; pass < 2; pass++ {
		cfg := newTestConfig(t, src, config.FormatGIF)
		res, err := Run(context.Background(), cfg, newTestLogger(t, cfg))
		if err != nil {
			t.Fatalf("pass %d: %v", pass, err)
		}
		for i := 0; i < res.Frames; i++ {
			b, err := os.ReadFile(naming.FramePath(res.Layout.FramesDir, i, "png"))
			if err != nil {
				t.Fatal(err)
			}
			if pass == 0 {
				first = append(first, b)
			} else if !bytes.Equal(first[i], b) {
				t.Errorf("frame %d differs between runs", i)
			}
		}
	}
}

func TestEncoders_Order(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Formats = []config.Format{config.FormatMP4, config.FormatGIF}
	cfg.ColorMode = config.ColorNever
	encs := Encoders(&cfg, cfg.Compression, newTestLogger(t, &cfg), &fakeRunner{})
	if len(encs) != 2 || encs[0].Format() != config.FormatGIF || encs[1].Format() != config.FormatMP4 {
		t.Errorf("encoders = %v", encs)
	}
}
