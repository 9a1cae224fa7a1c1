package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/backmassage/seq2vid/internal/domain"
)

// SpeedPreset is one of the fixed playback multipliers offered next to a
// custom value.
type SpeedPreset struct {
	Name  string
	Value float64
}

// SpeedPresets lists the built-in multipliers from slowest to fastest.
var SpeedPresets = []SpeedPreset{
	{Name: "1x", Value: 1},
	{Name: "2x", Value: 2},
	{Name: "4x", Value: 4},
}

// DefaultSpeed is the multiplier used when none is given.
const DefaultSpeed = 1.0

// ParseSpeed accepts a preset name ("2x", "4×") or a custom positive
// multiplier ("1.5"). A trailing x or × is optional.
func ParseSpeed(s string) (float64, error) {
	raw := s
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range SpeedPresets {
		if s == p.Name {
			return p.Value, nil
		}
	}
	s = strings.TrimSuffix(strings.TrimSuffix(s, "x"), "×")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !positiveFinite(v) {
		return 0, fmt.Errorf("%w: enter a valid speed multiplier (got %q)", domain.ErrInvalidInput, raw)
	}
	return v, nil
}

// FormatSpeed renders a multiplier the way ParseSpeed accepts it.
func FormatSpeed(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64) + "x"
}

// ParseDuration parses a user-entered original duration in seconds.
func ParseDuration(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !positiveFinite(v) {
		return 0, fmt.Errorf("%w: enter a valid video duration in seconds (got %q)", domain.ErrInvalidInput, s)
	}
	return v, nil
}
