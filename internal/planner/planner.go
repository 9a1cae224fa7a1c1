package planner

import (
	"fmt"
	"math"

	"github.com/backmassage/seq2vid/internal/domain"
)

// Supported output frame-rate range. Values outside it are clamped; the
// range is fixed rather than per-codec.
const (
	MinTargetFPS = 1
	MaxTargetFPS = 30
)

// Plan computes the RatePlan for frameCount source images that nominally
// span originalDuration seconds, played back speed times faster.
//
// Flow:
//  1. original fps    = frames / duration
//  2. output duration = duration / speed
//  3. target fps      = clamp(floor(frames / output duration), 1, 30)
//  4. selected frames = floor(output duration * target fps)
//  5. estimated fps   = selected frames / output duration
//
// Returns domain.ErrInvalidInput for a non-positive or non-finite input and
// domain.ErrInvalidPlan when step 4 yields no frames at all.
func Plan(frameCount int, originalDuration, speed float64) (RatePlan, error) {
	if frameCount < 1 {
		return RatePlan{}, fmt.Errorf("%w: frame count must be at least 1 (got %d)", domain.ErrInvalidInput, frameCount)
	}
	if !positiveFinite(originalDuration) {
		return RatePlan{}, fmt.Errorf("%w: duration must be a positive number of seconds (got %v)", domain.ErrInvalidInput, originalDuration)
	}
	if !positiveFinite(speed) {
		return RatePlan{}, fmt.Errorf("%w: speed must be a positive multiplier (got %v)", domain.ErrInvalidInput, speed)
	}

	frames := float64(frameCount)
	outputDuration := originalDuration / speed
	if !positiveFinite(outputDuration) {
		return RatePlan{}, fmt.Errorf("%w: output duration %v s out of range", domain.ErrInvalidPlan, outputDuration)
	}

	targetFPS := Clamp(floorInt(frames/outputDuration), MinTargetFPS, MaxTargetFPS)
	selected := floorInt(outputDuration * float64(targetFPS))
	if selected < 1 {
		return RatePlan{}, fmt.Errorf("%w: speed %gx leaves %.3f s of output, too short for a single frame at %d fps",
			domain.ErrInvalidPlan, speed, outputDuration, targetFPS)
	}

	return RatePlan{
		FrameCount:         frameCount,
		OriginalDuration:   originalDuration,
		Speed:              speed,
		OriginalFPS:        frames / originalDuration,
		TargetFPS:          targetFPS,
		OutputDuration:     outputDuration,
		SelectedCount:      selected,
		EstimatedOutputFPS: float64(selected) / outputDuration,
	}, nil
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// floorInt truncates toward negative infinity, saturating at the int range
// so absurd ratios still clamp cleanly instead of wrapping.
func floorInt(f float64) int {
	f = math.Floor(f)
	switch {
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}

func positiveFinite(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
