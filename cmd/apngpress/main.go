// Command apngpress is the entrypoint for the APNG compression CLI.
// It parses flags, validates config, and either runs the system check
// (--check), prints size suggestions (--dims), or runs the pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/backmassage/apngpress/internal/apperr"
	"github.com/backmassage/apngpress/internal/check"
	"github.com/backmassage/apngpress/internal/config"
	"github.com/backmassage/apngpress/internal/display"
	"github.com/backmassage/apngpress/internal/logging"
	"github.com/backmassage/apngpress/internal/pipeline"
	"github.com/backmassage/apngpress/internal/planner"
	"github.com/backmassage/apngpress/internal/probe"
)

// version and commit are set at build time via -ldflags (e.g. Makefile).
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Load config from defaults and CLI flags.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:], version); err != nil {
		fmt.Fprintf(os.Stderr, "apngpress: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "apngpress: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "apngpress: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner()

	// 2. Diagnostics and dimension listing exit early.
	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}
	if cfg.DimsOnly {
		return printDims(&cfg, log)
	}

	log.Info("=== apngpress v%s (%s) ===", version, commit)
	log.Info("In:  %s", cfg.InputPath)
	log.Info("Out: %s", cfg.OutputDir)

	// 3. ffmpeg is needed only for MP4; fail before touching the disk.
	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		log.Error("Install ffmpeg or drop mp4 with --formats gif,webp")
		return 1
	}

	// 4. Run the pipeline; Ctrl+C cancels between frames and stages.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := pipeline.Run(ctx, &cfg, log)
	if err != nil {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			return 130
		}
		log.Error("%v", err)
		if kind := apperr.KindOf(err); kind != nil {
			log.Debug("failure kind: %v", kind)
		}
		return 1
	}

	log.Success("Output directory: %s", res.Layout.Root)
	if a, ok := res.Smallest(); ok {
		log.Success("Smallest: %s (%s, %s)", a.Path, strings.ToUpper(string(a.Format)), display.FormatMB(a.Size))
	}
	return 0
}

// printDims prints the analyzer report plus preset and even-size
// suggestions for the input.
func printDims(cfg *config.Config, log *logging.Logger) int {
	info, err := probe.Analyze(cfg.InputPath)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	pipeline.LogSource(log, info)
	log.Info("Aspect ratio: %.4f", info.Aspect())

	log.Info("")
	log.Info("Presets:")
	for _, p := range planner.Presets(info.Width, info.Height) {
		mark := ""
		if p.Recommended {
			mark = " (recommended)"
		}
		log.Info("  --preset %-6s %-10s q%d  %s: %s%s", p.Name, p.Size, p.Quality, p.Label, p.Description, mark)
	}

	log.Info("")
	log.Info("By height:")
	for _, s := range planner.ForHeights(info.Width, info.Height, planner.DimHeights) {
		log.Info("  --resize %s", s)
	}
	log.Info("By width:")
	for _, s := range planner.ForWidths(info.Width, info.Height, planner.DimWidths) {
		log.Info("  --resize %s", s)
	}
	return 0
}
