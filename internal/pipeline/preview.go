package pipeline

import (
	"fmt"
	"io"

	"github.com/backmassage/seq2vid/internal/config"
	"github.com/backmassage/seq2vid/internal/planner"
	"github.com/backmassage/seq2vid/internal/term"
)

// Preview lists cfg.InputDir, plans it and writes the preview labels to w.
// It touches nothing on disk beyond the listing, so it is safe to call on
// every change of duration, speed or folder contents.
func Preview(cfg *config.Config, lister Lister, w io.Writer) (planner.RatePlan, error) {
	if err := cfg.ValidateJob(); err != nil {
		return planner.RatePlan{}, err
	}
	if lister == nil {
		lister = DirLister{}
	}
	seq, err := lister.List(cfg.InputDir)
	if err != nil {
		return planner.RatePlan{}, err
	}
	plan, err := planner.Plan(len(seq), cfg.Duration, cfg.Speed)
	if err != nil {
		return planner.RatePlan{}, err
	}
	WritePreview(w, cfg.InputDir, plan)
	return plan, nil
}

// WritePreview renders plan as a short labelled block.
func WritePreview(w io.Writer, folder string, plan planner.RatePlan) {
	fmt.Fprintf(w, "%sFolder:%s %s (%d images)\n", term.Cyan, term.NC, folder, plan.FrameCount)
	fmt.Fprintf(w, "%sSpeed:%s %s\n", term.Cyan, term.NC, planner.FormatSpeed(plan.Speed))
	for _, line := range plan.Summary() {
		fmt.Fprintln(w, line)
	}
	if plan.Repeats() {
		fmt.Fprintf(w, "%sNote:%s %d output frames from %d images; frames will repeat\n",
			term.Yellow, term.NC, plan.SelectedCount, plan.FrameCount)
	}
}
