package config

// This file binds Config fields to pflag flag sets. Flags are split by
// command: the global set is persistent on the root command, the job set is
// shared by build and plan, and the encode set is build-only.
// Enum and speed flags use pflag.Value adapters so bad input fails at parse time.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/backmassage/seq2vid/internal/planner"
)

// Flag names. The file and environment layers key off these to respect
// explicitly set flags.
const (
	FlagConfig    = "config"
	FlagVerbose   = "verbose"
	FlagColor     = "color"
	FlagLog       = "log"
	FlagFFmpeg    = "ffmpeg"
	FlagFFprobe   = "ffprobe"
	FlagDuration  = "duration"
	FlagSpeed     = "speed"
	FlagOutput    = "output"
	FlagCodec     = "codec"
	FlagContainer = "container"
	FlagQuality   = "quality"
	FlagCRF       = "crf"
	FlagPreset    = "preset"
	FlagDryRun    = "dry-run"
	FlagNoClobber = "no-clobber"
	FlagVerify    = "verify"
	FlagWatch     = "watch"
	FlagDebounce  = "debounce"
)

// BindGlobalFlags registers --verbose, --color, --log, --ffmpeg, --ffprobe.
func BindGlobalFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.Verbose, FlagVerbose, "v", cfg.Verbose, "Verbose output")
	fs.Var(&colorModeValue{&cfg.ColorMode}, FlagColor, "Colored logs: auto | always | never")
	fs.StringVarP(&cfg.LogFile, FlagLog, "l", cfg.LogFile, "Append JSON logs to file")
	fs.StringVar(&cfg.FFmpegBin, FlagFFmpeg, cfg.FFmpegBin, "ffmpeg binary")
	fs.StringVar(&cfg.FFprobeBin, FlagFFprobe, cfg.FFprobeBin, "ffprobe binary")
}

// BindJobFlags registers --duration and --speed.
func BindJobFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.Float64VarP(&cfg.Duration, FlagDuration, "d", cfg.Duration, "Original video duration in seconds")
	fs.VarP(&speedValue{&cfg.Speed}, FlagSpeed, "s", "Playback speed: 1x | 2x | 4x | custom multiplier")
}

// BindEncodeFlags registers output, codec and behavior flags for build.
func BindEncodeFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.OutputPath, FlagOutput, "o", cfg.OutputPath, "Output file (default: <folder>/output_video.<container>)")
	fs.Var(&codecValue{&cfg.Codec}, FlagCodec, "Video codec: h264 | hevc")
	fs.Var(&containerValue{&cfg.Container}, FlagContainer, "Output container: mp4 | mkv")
	fs.IntVarP(&cfg.Quality, FlagQuality, "q", cfg.Quality, "Quality 0-10 (10 is best)")
	fs.IntVar(&cfg.CRF, FlagCRF, cfg.CRF, "Explicit CRF 0-51 (overrides --quality)")
	fs.StringVarP(&cfg.Preset, FlagPreset, "p", cfg.Preset, "x264/x265 preset")
	fs.BoolVarP(&cfg.DryRun, FlagDryRun, "n", cfg.DryRun, "Plan and select frames; write nothing")
	fs.BoolVar(&cfg.NoClobber, FlagNoClobber, cfg.NoClobber, "Refuse to overwrite an existing output file")
	fs.BoolVar(&cfg.Verify, FlagVerify, cfg.Verify, "Verify the output with ffprobe")
}

// BindWatchFlags registers --watch and --debounce for plan.
func BindWatchFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.Watch, FlagWatch, "w", cfg.Watch, "Re-plan when the folder changes")
	fs.DurationVar(&cfg.Debounce, FlagDebounce, cfg.Debounce, "Quiet period before re-planning")
}

// pflag.Value adapters for enum and speed fields.

type codecValue struct{ p *Codec }

func (v *codecValue) String() string { return string(*v.p) }
func (v *codecValue) Type() string   { return "codec" }
func (v *codecValue) Set(s string) error {
	c, err := ParseCodec(s)
	if err != nil {
		return err
	}
	*v.p = c
	return nil
}

type containerValue struct{ p *Container }

func (v *containerValue) String() string { return string(*v.p) }
func (v *containerValue) Type() string   { return "container" }
func (v *containerValue) Set(s string) error {
	c, err := ParseContainer(s)
	if err != nil {
		return err
	}
	*v.p = c
	return nil
}

type colorModeValue struct{ p *ColorMode }

func (v *colorModeValue) String() string { return string(*v.p) }
func (v *colorModeValue) Type() string   { return "mode" }
func (v *colorModeValue) Set(s string) error {
	m, err := ParseColorMode(s)
	if err != nil {
		return err
	}
	*v.p = m
	return nil
}

type speedValue struct{ p *float64 }

func (v *speedValue) String() string { return planner.FormatSpeed(*v.p) }
func (v *speedValue) Type() string   { return "speed" }
func (v *speedValue) Set(s string) error {
	f, err := planner.ParseSpeed(s)
	if err != nil {
		return err
	}
	*v.p = f
	return nil
}

// ParseCodec accepts h264/x264/avc and hevc/h265/x265.
func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h264", "x264", "avc", "libx264":
		return CodecH264, nil
	case "hevc", "h265", "x265", "libx265":
		return CodecHEVC, nil
	}
	return "", fmt.Errorf("invalid codec %q (use 'h264' or 'hevc')", s)
}

// ParseContainer accepts mp4 or mkv, with or without a leading dot.
func ParseContainer(s string) (Container, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "mp4":
		return ContainerMP4, nil
	case "mkv":
		return ContainerMKV, nil
	}
	return "", fmt.Errorf("invalid container %q (use 'mp4' or 'mkv')", s)
}

// ParseColorMode accepts auto, always or never.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return "", fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
}
