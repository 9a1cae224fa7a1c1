package encode

import "context"

// StreamSpec describes the raw frame stream a Sink receives.
type StreamSpec struct {
	Width  int
	Height int
	FPS    int
}

// Sink is the external video encoder. Open is called once, before the first
// Append; exactly one of Close or Abort ends the stream.
type Sink interface {
	// Open prepares an output stream for frames of the given geometry.
	Open(ctx context.Context, spec StreamSpec) error
	// Append writes one frame. Frames arrive in presentation order.
	Append(f Frame) error
	// Close finalizes the artifact and returns its location.
	Close() (string, error)
	// Abort stops the stream without producing a usable artifact.
	Abort() error
}

// Progress receives one update per frame written, with current strictly
// increasing from 1 to total.
type Progress interface {
	Report(current, total int)
}

// ProgressAborter is implemented by progress sinks that draw on the
// terminal. Build calls Abort when it stops before the last frame.
type ProgressAborter interface {
	Abort()
}

// ProgressFunc adapts a plain function to Progress.
type ProgressFunc func(current, total int)

// Report calls f(current, total).
func (f ProgressFunc) Report(current, total int) { f(current, total) }

type noProgress struct{}

func (noProgress) Report(int, int) {}
