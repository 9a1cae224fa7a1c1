package ffmpeg

import (
	"errors"
	"os/exec"
	"regexp"
	"strings"
)

// Pre-compiled regexes for classifying ffmpeg stderr. Checked in order by
// [Classify]; the first match wins.
var (
	reUnknownEncoder = regexp.MustCompile(
		`Unknown encoder '([^']+)'|Encoder (\S+) not found`)

	rePermission = regexp.MustCompile(`(?i)Permission denied`)

	reNoSpace = regexp.MustCompile(`(?i)No space left on device|Disk quota exceeded`)

	reBadDimensions = regexp.MustCompile(
		`(?i)(width|height) not divisible by 2|` +
			`Invalid frame size|` +
			`Picture size \d+x\d+ is invalid|` +
			`frame size .* is too (large|small)`)

	reMissingDir = regexp.MustCompile(`No such file or directory`)

	reExists = regexp.MustCompile(`already exists\. Exiting`)
)

// ExecError is returned when the ffmpeg process fails. Reason is a short
// classification; Stderr holds the raw output.
type ExecError struct {
	Reason string
	Stderr string
	Err    error
}

func (e *ExecError) Error() string { return "ffmpeg: " + e.Reason }

func (e *ExecError) Unwrap() error { return e.Err }

// Classify turns ffmpeg stderr (and the process error, if any) into a
// one-line human-readable reason.
func Classify(stderr string, err error) string {
	if errors.Is(err, exec.ErrNotFound) {
		return "ffmpeg not found on PATH"
	}
	if m := reUnknownEncoder.FindStringSubmatch(stderr); m != nil {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		return "encoder " + name + " is not available in this ffmpeg build"
	}
	switch {
	case rePermission.MatchString(stderr):
		return "permission denied writing output"
	case reNoSpace.MatchString(stderr):
		return "no space left on device"
	case reBadDimensions.MatchString(stderr):
		return "invalid frame dimensions for the encoder"
	case reExists.MatchString(stderr):
		return "output file already exists"
	case reMissingDir.MatchString(stderr):
		return "output folder does not exist"
	}
	if line := lastLine(stderr); line != "" {
		return line
	}
	if err != nil {
		return err.Error()
	}
	return "unknown error"
}

// lastLine returns the last non-blank line of s, trimmed.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
