// Package config holds runtime configuration: defaults, flag binding, the
// optional TOML file, SEQ2VID_* environment overrides and validation.
package config

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/seq2vid/internal/domain"
	"github.com/backmassage/seq2vid/internal/planner"
)

// --- Enum types for validated string fields ---

// Codec selects the video encoder.
type Codec string

const (
	CodecH264 Codec = "h264" // libx264 (default).
	CodecHEVC Codec = "hevc" // libx265.
)

// Encoder returns the ffmpeg encoder name for the codec.
func (c Codec) Encoder() string {
	if c == CodecHEVC {
		return "libx265"
	}
	return "libx264"
}

// Container is the output container format.
type Container string

const (
	ContainerMP4 Container = "mp4" // Default.
	ContainerMKV Container = "mkv"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stderr is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Quality and CRF bounds.
const (
	MinQuality     = 0
	MaxQuality     = 10
	DefaultQuality = 8
	MaxCRF         = 51
)

// Config holds all runtime settings. It starts from [DefaultConfig], then
// the file, environment and flag layers are applied on top.
type Config struct {
	// Job inputs.
	InputDir   string
	OutputPath string  // Empty: <InputDir>/output_video.<container>.
	Duration   float64 // Original duration in seconds. Required.
	Speed      float64 // Default: 1.

	// Encoding.
	Codec     Codec     // Default: "h264".
	Container Container // Default: "mp4".
	Quality   int       // 0..10. Default: 8.
	CRF       int       // Explicit CRF; -1 derives it from Quality.
	Preset    string    // Default: "medium".

	// Behavior.
	DryRun    bool
	NoClobber bool
	Verify    bool          // Default: true. Skipped when ffprobe is missing.
	Watch     bool          // plan --watch.
	Debounce  time.Duration // Default: 300ms.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional JSON log file.

	// Tools.
	FFmpegBin  string // Default: "ffmpeg".
	FFprobeBin string // Default: "ffprobe".
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	return Config{
		Speed:      planner.DefaultSpeed,
		Codec:      CodecH264,
		Container:  ContainerMP4,
		Quality:    DefaultQuality,
		CRF:        -1,
		Preset:     "medium",
		Verify:     true,
		Debounce:   300 * time.Millisecond,
		ColorMode:  ColorAuto,
		FFmpegBin:  "ffmpeg",
		FFprobeBin: "ffprobe",
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// EffectiveCRF returns the explicit CRF when set, otherwise maps the 0..10
// quality scale linearly onto CRF 40..10.
func (c *Config) EffectiveCRF() int {
	if c.CRF >= 0 {
		return c.CRF
	}
	return 40 - 3*c.Quality
}

// Validate checks enum fields and numeric ranges. It does not require job
// inputs; see [Config.ValidateJob].
func (c *Config) Validate() error {
	switch c.Codec {
	case CodecH264, CodecHEVC:
		// valid
	default:
		return errors.New("invalid codec (use 'h264' or 'hevc')")
	}

	switch c.Container {
	case ContainerMP4, ContainerMKV:
		// valid
	default:
		return errors.New("invalid container (use 'mp4' or 'mkv')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Quality < MinQuality || c.Quality > MaxQuality {
		return fmt.Errorf("quality must be between %d and %d (got %d)", MinQuality, MaxQuality, c.Quality)
	}
	if c.CRF > MaxCRF || c.CRF < -1 {
		return fmt.Errorf("crf must be between 0 and %d (got %d)", MaxCRF, c.CRF)
	}
	if c.Preset == "" {
		return errors.New("preset must not be empty")
	}
	if c.Debounce < 0 {
		return errors.New("debounce must not be negative")
	}
	if c.FFmpegBin == "" {
		return errors.New("ffmpeg binary must not be empty")
	}
	return nil
}

// ValidateJob checks the inputs a plan or build needs: an input folder, a
// positive duration and a positive speed. Errors wrap domain.ErrInvalidInput.
func (c *Config) ValidateJob() error {
	if c.InputDir == "" {
		return fmt.Errorf("%w: please select a folder", domain.ErrInvalidInput)
	}
	if !positiveFinite(c.Duration) {
		return fmt.Errorf("%w: enter a valid video duration in seconds", domain.ErrInvalidInput)
	}
	if !positiveFinite(c.Speed) {
		return fmt.Errorf("%w: enter a valid speed multiplier", domain.ErrInvalidInput)
	}
	if c.OutputPath != "" {
		if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(c.OutputPath)), "."); ext != string(c.Container) {
			return fmt.Errorf("%w: output %q does not match container %q", domain.ErrInvalidInput, c.OutputPath, c.Container)
		}
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
