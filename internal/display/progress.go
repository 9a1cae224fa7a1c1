package display

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/seq2vid/internal/encode"
	"github.com/backmassage/seq2vid/internal/term"
)

// Bar renders build progress as a terminal progress bar.
type Bar struct {
	bar  *progressbar.ProgressBar
	w    io.Writer
	done bool
}

// NewBar returns a bar for total frames drawn on w.
func NewBar(w io.Writer, total int) *Bar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Encoding"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(w, "\n") }),
	)
	return &Bar{bar: bar, w: w}
}

// Report moves the bar to current and finishes it at total.
func (b *Bar) Report(current, total int) {
	if b.bar.GetMax() != total {
		b.bar.ChangeMax(total)
	}
	_ = b.bar.Set(current)
	if current >= total {
		b.done = true
		_ = b.bar.Finish()
	}
}

// Abort ends a bar that will not reach total, so the next log line starts
// on a fresh line.
func (b *Bar) Abort() {
	if b.done {
		return
	}
	b.done = true
	_, _ = io.WriteString(b.w, "\n")
}

// LogProgress reports progress as log lines, roughly every tenth of the
// build and always on the last frame.
type LogProgress struct {
	log  zerolog.Logger
	last int
}

// NewLogProgress returns a LogProgress writing info lines to log.
func NewLogProgress(log zerolog.Logger) *LogProgress {
	return &LogProgress{log: log}
}

// Report logs when at least a tenth of total has passed since the last line.
func (p *LogProgress) Report(current, total int) {
	step := total / 10
	if step < 1 {
		step = 1
	}
	if current < total && current-p.last < step {
		return
	}
	p.last = current
	p.log.Info().Int("frame", current).Int("total", total).Msgf("encoding %d%%", current*100/total)
}

// NewProgress picks a progress bar when stderr is a terminal and log lines
// otherwise.
func NewProgress(log zerolog.Logger, total int) encode.Progress {
	if term.IsTerminal(os.Stderr) {
		return NewBar(os.Stderr, total)
	}
	return NewLogProgress(log)
}
