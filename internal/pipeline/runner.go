package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/backmassage/apngpress/internal/apperr"
	"github.com/backmassage/apngpress/internal/config"
	"github.com/backmassage/apngpress/internal/display"
	"github.com/backmassage/apngpress/internal/encode"
	"github.com/backmassage/apngpress/internal/ffmpeg"
	"github.com/backmassage/apngpress/internal/frames"
	"github.com/backmassage/apngpress/internal/logging"
	"github.com/backmassage/apngpress/internal/naming"
	"github.com/backmassage/apngpress/internal/planner"
	"github.com/backmassage/apngpress/internal/probe"
	"github.com/backmassage/apngpress/internal/report"
)

// Run is the top-level entry point. It returns the partial Result even on
// error.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (*Result, error) {
	return run(ctx, cfg, log, ffmpeg.Executor{Verbose: cfg.Verbose})
}

func run(ctx context.Context, cfg *config.Config, log *logging.Logger, runner ffmpeg.Runner) (*Result, error) {
	start := time.Now()
	res := &Result{}

	// --- Analyze (before any directory exists) ---
	t := time.Now()
	info, err := probe.Analyze(cfg.InputPath)
	if err != nil {
		return res, err
	}
	res.Info = info
	res.track("analyze", t)
	LogSource(log, info)

	// --- Plan ---
	plan, err := planner.Resolve(cfg, info.Width, info.Height)
	if err != nil {
		return res, err
	}
	res.Plan = plan
	logPlan(log, cfg, plan)

	// --- Layout ---
	res.Layout = naming.NewLayout(cfg.OutputDir)
	if err := res.Layout.Create(); err != nil {
		return res, apperr.New(apperr.ErrExtraction, "layout", cfg.OutputDir, err)
	}

	// --- Extract ---
	t = time.Now()
	log.Info("Extracting frames -> %s", res.Layout.FramesDir)
	frs, err := frames.Extract(ctx, cfg.InputPath, res.Layout.FramesDir, log)
	if err != nil {
		return res, err
	}
	res.Frames = len(frs)
	res.track("extract", t)
	if len(frs) != info.FrameCount {
		log.Warn("Extracted %d frames, analyzer reported %d", len(frs), info.FrameCount)
	}
	log.Success("Extracted %d frame(s)", len(frs))

	// --- Transcode ---
	t = time.Now()
	log.Info("Transcoding stills (q=%d, size=%s) -> %s",
		plan.Options.Quality, sizeLabel(plan.Options.Resize, info), res.Layout.StillsDir)
	res.Stills, err = frames.Transcode(ctx, frs, plan.Options, res.Layout.StillsDir, log)
	if err != nil {
		return res, err
	}
	res.track("transcode", t)
	log.Success("Wrote %d JPEG still(s)", len(res.Stills))

	// --- Encode ---
	in := encode.Input{Frames: frs, StillsDir: res.Layout.StillsDir}
	for _, enc := range Encoders(cfg, plan.Options, log, runner) {
		if err := ctx.Err(); err != nil {
			return res, apperr.Encode(string(enc.Format()), "", err)
		}
		t = time.Now()
		out := res.Layout.Output(string(enc.Format()))
		log.Info("Encoding %s -> %s", strings.ToUpper(string(enc.Format())), out)
		a, err := enc.Encode(ctx, in, out)
		if err != nil {
			return res, err
		}
		res.Artifacts = append(res.Artifacts, a)
		res.track(string(enc.Format()), t)
		log.Success("%s: %s (%s smaller than source)",
			strings.ToUpper(string(a.Format)), display.FormatMB(a.Size),
			display.FormatPercent(report.Ratio(a, report.SourceFrom(info))))
	}

	// --- Report ---
	if err := report.Write(res.Layout.Report, report.SourceFrom(info), plan.Options, res.Artifacts); err != nil {
		return res, err
	}
	res.Elapsed = time.Since(start)
	logSummary(log, res)
	return res, nil
}

// Encoders returns the selected encoders in their fixed run order.
func Encoders(cfg *config.Config, opts config.CompressionOptions, log *logging.Logger, runner ffmpeg.Runner) []encode.Encoder {
	var out []encode.Encoder
	for _, f := range config.AllFormats {
		if !cfg.Wants(f) {
			continue
		}
		switch f {
		case config.FormatGIF:
			out = append(out, encode.GIFEncoder{FPS: opts.GIFFPS, Log: log})
		case config.FormatWebP:
			out = append(out, encode.WebPEncoder{Quality: opts.WebPQuality, FPS: opts.WebPFPS, Log: log})
		case config.FormatMP4:
			out = append(out, encode.MP4Encoder{FPS: opts.MP4FPS, CRF: opts.MP4CRF, Runner: runner, Verbose: cfg.Verbose, Log: log})
		}
	}
	return out
}

// --- Logging helpers ---

// LogSource prints the analyzer result. Shared with --dims.
func LogSource(log *logging.Logger, info *probe.Info) {
	log.Info("Source: %s", info.Path)
	log.Info("  Format: %s | %dx%d | mode %s | %d-bit", info.Format, info.Width, info.Height, info.Mode, info.BitDepth)
	log.Info("  Frames: %d | avg rate: %s | size: %s",
		info.FrameCount, display.FormatFPS(info.AvgFPS), display.FormatMB(info.FileSize))
	if info.Animated {
		log.Debug("  Delays (ms): %v", info.Delays)
		log.Debug("  Duration: %s, loops: %d", info.Duration(), info.LoopCount)
	}
	if info.Interlaced {
		log.Debug("  Interlaced (Adam7)")
	}
}

func logPlan(log *logging.Logger, cfg *config.Config, plan planner.Plan) {
	o := plan.Options
	if plan.Preset != "" {
		log.Info("Preset: %s", plan.Preset)
	}
	log.Debug("Plan: %s", plan.Note)
	log.Info("Formats: %s | GIF %s | WebP %s q%d | MP4 %s crf %d",
		formatList(cfg.Formats), display.FormatFPS(o.GIFFPS),
		display.FormatFPS(o.WebPFPS), o.WebPQuality, display.FormatFPS(o.MP4FPS), o.MP4CRF)
}

func logSummary(log *logging.Logger, res *Result) {
	log.Info("==============================")
	for _, s := range res.Stages {
		log.Debug("  %-9s %s", s.Name, s.Elapsed.Round(time.Millisecond))
	}
	log.Info("Report: %s", res.Layout.Report)
	log.Success("Done in %.2fs: %d frame(s), %d output(s), %s total",
		res.Elapsed.Seconds(), res.Frames, len(res.Artifacts), display.FormatMB(res.TotalOutputBytes()))
}

func formatList(fs []config.Format) string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}

func sizeLabel(s config.Size, info *probe.Info) string {
	if s.IsZero() {
		return "source " + config.Size{Width: info.Width, Height: info.Height}.String()
	}
	return s.String()
}
