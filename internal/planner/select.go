package planner

import (
	"fmt"
	"math"

	"github.com/backmassage/seq2vid/internal/domain"
)

// Select picks plan.SelectedCount indices spread evenly across seq.
//
// With step = len(seq) / SelectedCount, output position i maps to source
// index floor(i * step). The result is deterministic and non-decreasing;
// when SelectedCount exceeds len(seq) neighbouring positions share a source
// index, which repeats frames instead of inventing new ones.
func Select(seq ImageSequence, plan RatePlan) (FrameSelection, error) {
	frameCount := len(seq)
	if frameCount == 0 {
		return nil, domain.ErrEmptySequence
	}
	if plan.SelectedCount < 1 {
		return nil, fmt.Errorf("%w: selected frame count must be at least 1 (got %d)", domain.ErrInvalidPlan, plan.SelectedCount)
	}

	step := float64(frameCount) / float64(plan.SelectedCount)
	sel := make(FrameSelection, plan.SelectedCount)
	for i := range sel {
		idx := int(math.Floor(float64(i) * step))
		// Float error can only push the last index to frameCount.
		if idx >= frameCount {
			idx = frameCount - 1
		}
		sel[i] = idx
	}
	return sel, nil
}
