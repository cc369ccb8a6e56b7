// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for ffmpeg and the output directory.
package check

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/backmassage/apngpress/internal/config"
	"github.com/backmassage/apngpress/internal/display"
	"github.com/backmassage/apngpress/internal/ffmpeg"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound = errors.New("ffmpeg not found on PATH (required for mp4 output; use --formats gif,webp to skip it)")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// RunCheck runs the --check flow: ffmpeg version, libx264 and mpeg4 test
// encodes, an output-directory write test, and the input file. It reports
// whether every check passed; callers treat it as informational.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := true
	if checkFfmpeg(log) {
		ok = checkEncoder(log, ffmpeg.CodecH264) && ok
		ok = checkEncoder(log, ffmpeg.CodecMPEG4) && ok
	} else {
		ok = false
	}
	ok = checkOutputDir(cfg.OutputDir, log) && ok
	if cfg.InputPath != "" {
		ok = checkInput(cfg.InputPath, log) && ok
	}
	log.Success("Built-in encoders: gif (median cut), webp (lossy animated), jpeg")
	return ok
}

// checkFfmpeg verifies ffmpeg is on PATH and logs its version string.
func checkFfmpeg(log Logger) bool {
	if !ffmpeg.Available() {
		log.Error("ffmpeg not found (mp4 output unavailable)")
		return false
	}
	cmd := exec.Command("ffmpeg", "-version")
	out, err := cmd.Output()
	if err != nil {
		log.Warn("ffmpeg found but -version failed: %v", err)
		return false
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("ffmpeg: %s", firstLine)
	return true
}

// checkEncoder runs a minimal encode with the given video codec.
func checkEncoder(log Logger, codec string) bool {
	log.Info("Testing %s...", codec)
	if runSilent("ffmpeg", encoderTestArgs(codec)...) {
		log.Success("%s works", codec)
		return true
	}
	if codec == ffmpeg.CodecH264 {
		log.Warn("%s test encode failed; mp4 output will fall back to %s", codec, ffmpeg.CodecMPEG4)
	} else {
		log.Error("%s test encode failed", codec)
	}
	return false
}

// checkOutputDir creates dir if needed and writes a scratch file into it.
func checkOutputDir(dir string, log Logger) bool {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error("Output dir %s: %v", dir, err)
		return false
	}
	f, err := os.CreateTemp(dir, ".apngpress-check-*")
	if err != nil {
		log.Error("Output dir %s is not writable: %v", dir, err)
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	log.Success("Output dir %s is writable", dir)
	return true
}

// checkInput reports the input's existence and size.
func checkInput(path string, log Logger) bool {
	fi, err := os.Stat(path)
	if err != nil {
		log.Error("Input %s: %v", path, err)
		return false
	}
	if fi.IsDir() {
		log.Error("Input %s is a directory", path)
		return false
	}
	log.Success("Input %s (%s)", path, display.FormatBytes(fi.Size()))
	return true
}

// CheckDeps is the pre-pipeline validation. Only MP4 output needs an
// external tool, so it is a no-op unless mp4 is selected.
func CheckDeps(cfg *config.Config) error {
	if !cfg.Wants(config.FormatMP4) {
		return nil
	}
	if !ffmpeg.Available() {
		return ErrFfmpegNotFound
	}
	return nil
}

// --- internal helpers ---

// encoderTestArgs returns the ffmpeg arguments for a minimal test encode.
func encoderTestArgs(codec string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=64x64:d=0.1",
		"-c:v", codec, "-pix_fmt", "yuv420p",
		"-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
