package ffmpeg

import (
	"fmt"
	"strconv"

	"github.com/backmassage/seq2vid/internal/config"
	"github.com/backmassage/seq2vid/internal/encode"
)

// padEven rounds odd frame sizes up to even; yuv420p needs both dimensions
// divisible by two.
const padEven = "pad=ceil(iw/2)*2:ceil(ih/2)*2"

// Build constructs the ffmpeg argument slice for one encode. args[0] is the
// ffmpeg binary. Frames are read as raw rgb24 from stdin at spec.FPS.
func Build(cfg *config.Config, spec encode.StreamSpec, outputPath string) []string {
	args := make([]string, 0, 40)

	// --- Preamble ---
	args = append(args, cfg.FFmpegBin, "-hide_banner")
	if cfg.NoClobber {
		args = append(args, "-n")
	} else {
		args = append(args, "-y")
	}
	if cfg.Verbose {
		args = append(args, "-loglevel", "info", "-stats")
	} else {
		args = append(args, "-loglevel", "error", "-nostats")
	}

	// --- Input: raw frames on stdin ---
	args = append(args,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", spec.Width, spec.Height),
		"-framerate", strconv.Itoa(spec.FPS),
		"-i", "-",
	)

	// --- Streams ---
	args = append(args, "-an", "-vf", padEven)

	// --- Video codec ---
	args = appendVideoCodec(args, cfg)

	// --- Container opts ---
	args = append(args, containerOpts(cfg)...)

	// --- Output ---
	args = append(args, "-r", strconv.Itoa(spec.FPS), outputPath)

	return args
}

// appendVideoCodec adds encoder, rate control and pixel format.
func appendVideoCodec(args []string, cfg *config.Config) []string {
	args = append(args,
		"-c:v", cfg.Codec.Encoder(),
		"-preset", cfg.Preset,
		"-crf", strconv.Itoa(cfg.EffectiveCRF()),
		"-pix_fmt", "yuv420p",
	)
	if cfg.Codec == config.CodecHEVC {
		args = append(args, "-x265-params", "log-level=error")
	}
	return args
}

// containerOpts returns muxer flags: faststart for mp4, and the hvc1 tag so
// Apple players accept HEVC in mp4.
func containerOpts(cfg *config.Config) []string {
	if cfg.Container != config.ContainerMP4 {
		return nil
	}
	opts := []string{"-movflags", "+faststart"}
	if cfg.Codec == config.CodecHEVC {
		opts = append(opts, "-tag:v", "hvc1")
	}
	return opts
}
