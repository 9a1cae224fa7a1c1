package planner

import "fmt"

// ImageSequence is an ordered list of frame references (file paths),
// sorted lexicographically by file name.
type ImageSequence []string

// RatePlan holds the re-timing decisions for one build. It is derived
// strictly from (FrameCount, OriginalDuration, Speed) by Plan and treated
// as an immutable value afterwards.
//
// Invariant: EstimatedOutputFPS == float64(SelectedCount) / OutputDuration.
type RatePlan struct {
	// Inputs the plan was derived from.
	FrameCount       int
	OriginalDuration float64 // seconds
	Speed            float64

	OriginalFPS        float64
	TargetFPS          int     // in [MinTargetFPS, MaxTargetFPS]
	OutputDuration     float64 // seconds
	SelectedCount      int
	EstimatedOutputFPS float64
}

// Summary renders the plan as the four preview lines shown to the user
// while they are still editing duration and speed.
func (p RatePlan) Summary() []string {
	return []string{
		fmt.Sprintf("Original FPS: %.2f", p.OriginalFPS),
		fmt.Sprintf("Target FPS: %d", p.TargetFPS),
		fmt.Sprintf("Estimated Output FPS: %.2f", p.EstimatedOutputFPS),
		fmt.Sprintf("Output Duration: %.2f s", p.OutputDuration),
	}
}

// Repeats reports whether the plan keeps more frames than the source has,
// i.e. some source frames will be emitted more than once.
func (p RatePlan) Repeats() bool {
	return p.SelectedCount > p.FrameCount
}

// FrameSelection is the ordered list of source indices to emit. It is
// computed once per build and consumed immediately by the encoder driver.
type FrameSelection []int

// Paths resolves the selection against seq. The selection must have been
// produced for a sequence of the same length.
func (s FrameSelection) Paths(seq ImageSequence) []string {
	out := make([]string, len(s))
	for i, idx := range s {
		out[i] = seq[idx]
	}
	return out
}

// Unique returns the number of distinct source frames kept. Selections are
// non-decreasing, so duplicates are always adjacent.
func (s FrameSelection) Unique() int {
	n := 0
	for i, idx := range s {
		if i == 0 || idx != s[i-1] {
			n++
		}
	}
	return n
}
