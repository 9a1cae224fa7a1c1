package pipeline

import (
	"time"

	"github.com/backmassage/seq2vid/internal/planner"
	"github.com/backmassage/seq2vid/internal/probe"
)

// BuildStats describes what one Run did.
type BuildStats struct {
	Sources  int // images found in the folder
	Plan     planner.RatePlan
	Selected int // frames written (or that would be)
	Unique   int // distinct source images among them

	Output      string
	OutputBytes int64
	Elapsed     time.Duration
	DryRun      bool

	// Verified is the ffprobe view of the output; nil when verification
	// was skipped.
	Verified *probe.ProbeResult
}

// Dropped returns how many source images were skipped.
func (s *BuildStats) Dropped() int {
	return s.Sources - s.Unique
}

// Repeated returns how many written frames repeat an earlier image.
func (s *BuildStats) Repeated() int {
	return s.Selected - s.Unique
}
