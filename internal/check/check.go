// Package check provides system diagnostics (the check command) and
// pre-build dependency validation (CheckDeps) for ffmpeg, ffprobe and the
// x264/x265 encoders.
package check

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/backmassage/seq2vid/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFfmpegNotFound = errors.New("ffmpeg not found on PATH")
	ErrEncoderFailed  = errors.New("test encode failed for the selected codec")
)

// testTimeout bounds each diagnostic ffmpeg run.
const testTimeout = 15 * time.Second

// RunCheck prints availability of ffmpeg, ffprobe and the h264/hevc
// encoders, then test-encodes with every supported codec. It reports whether
// the configured codec works; other failures are informational.
func RunCheck(cfg *config.Config, log zerolog.Logger) bool {
	log.Info().Msg("=== System Check ===")

	if !checkFfmpeg(cfg, log) {
		return false
	}
	checkFfprobe(cfg, log)
	checkEncoders(cfg, log)

	ok := true
	for _, c := range []config.Codec{config.CodecH264, config.CodecHEVC} {
		if testEncode(cfg.FFmpegBin, c) {
			log.Info().Str("encoder", c.Encoder()).Msg("test encode works")
			continue
		}
		ev := log.Warn()
		if c == cfg.Codec {
			ev = log.Error()
			ok = false
		}
		ev.Str("encoder", c.Encoder()).Msg("test encode failed")
	}
	return ok
}

// checkFfmpeg verifies ffmpeg is on PATH and logs its version string.
func checkFfmpeg(cfg *config.Config, log zerolog.Logger) bool {
	path, err := exec.LookPath(cfg.FFmpegBin)
	if err != nil {
		log.Error().Str("bin", cfg.FFmpegBin).Msg("ffmpeg not found")
		return false
	}
	out, err := exec.Command(path, "-version").Output()
	if err != nil {
		log.Warn().Err(err).Msg("ffmpeg found but -version failed")
		return true
	}
	log.Info().Str("path", path).Msg(firstLine(string(out)))
	return true
}

// checkFfprobe logs whether ffprobe is available for output verification.
func checkFfprobe(cfg *config.Config, log zerolog.Logger) {
	if !HasFFprobe(cfg) {
		log.Warn().Str("bin", cfg.FFprobeBin).Msg("ffprobe not found; output verification disabled")
		return
	}
	log.Info().Str("bin", cfg.FFprobeBin).Msg("ffprobe available")
}

// checkEncoders lists the H.264 and HEVC encoders reported by ffmpeg.
func checkEncoders(cfg *config.Config, log zerolog.Logger) {
	out, err := exec.Command(cfg.FFmpegBin, "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Warn().Err(err).Msg("could not list encoders")
		return
	}
	for _, line := range EncoderLines(string(out)) {
		log.Info().Msg("  " + line)
	}
}

// EncoderLines filters `ffmpeg -encoders` output down to H.264 and HEVC
// encoder lines.
func EncoderLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		lower := strings.ToLower(line)
		if !strings.HasPrefix(strings.TrimSpace(lower), "v") {
			continue
		}
		if strings.Contains(lower, "264") || strings.Contains(lower, "265") || strings.Contains(lower, "hevc") {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	return lines
}

// CheckDeps is the pre-build validation: ffmpeg must be on PATH and a short
// test encode with the configured codec must succeed.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegBin); err != nil {
		return ErrFfmpegNotFound
	}
	if !testEncode(cfg.FFmpegBin, cfg.Codec) {
		return ErrEncoderFailed
	}
	return nil
}

// HasFFprobe reports whether the configured ffprobe binary is on PATH.
func HasFFprobe(cfg *config.Config) bool {
	_, err := exec.LookPath(cfg.FFprobeBin)
	return err == nil
}

// --- internal helpers ---

// testArgs returns the ffmpeg arguments for a minimal test encode.
func testArgs(c config.Codec) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=64x64:d=0.1",
		"-c:v", c.Encoder(), "-pix_fmt", "yuv420p",
		"-f", "null", "-",
	}
}

func testEncode(bin string, c config.Codec) bool {
	return runSilent(bin, testArgs(c)...)
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	return exec.CommandContext(ctx, name, args...).Run() == nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i > 0 {
		return s[:i]
	}
	return s
}
