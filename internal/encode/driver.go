package encode

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/backmassage/seq2vid/internal/domain"
	"github.com/backmassage/seq2vid/internal/planner"
)

// Artifact describes a finished output file.
type Artifact struct {
	JobID    string
	Path     string
	Frames   int
	FPS      int
	Duration float64 // seconds of playback
	Elapsed  time.Duration
}

// Driver feeds frames to a Sink. The zero value decodes from disk and logs
// nothing.
type Driver struct {
	Loader FrameLoader
	Log    zerolog.Logger
}

// Build streams sel (indices into seq) to sink at targetFPS using the
// default Driver.
func Build(ctx context.Context, seq planner.ImageSequence, sel planner.FrameSelection, targetFPS int, sink Sink, progress Progress) (Artifact, error) {
	var d Driver
	return d.Build(ctx, seq, sel, targetFPS, sink, progress)
}

// Build loads, converts and appends each selected frame in order, then
// closes the sink. Frame N+1 is not loaded until frame N has been appended.
//
// On failure the sink is aborted and the error wraps domain.ErrFrameLoad
// (unreadable or mismatched source image), domain.ErrEncoder (sink
// failure) or the context error. Progress is reported only for frames the
// sink accepted.
func (d *Driver) Build(ctx context.Context, seq planner.ImageSequence, sel planner.FrameSelection, targetFPS int, sink Sink, progress Progress) (Artifact, error) {
	if len(seq) == 0 {
		return Artifact{}, domain.ErrEmptySequence
	}
	if len(sel) == 0 {
		return Artifact{}, fmt.Errorf("%w: empty frame selection", domain.ErrInvalidPlan)
	}
	if targetFPS < planner.MinTargetFPS || targetFPS > planner.MaxTargetFPS {
		return Artifact{}, fmt.Errorf("%w: target fps %d outside [%d,%d]",
			domain.ErrInvalidPlan, targetFPS, planner.MinTargetFPS, planner.MaxTargetFPS)
	}
	for i, idx := range sel {
		if idx < 0 || idx >= len(seq) {
			return Artifact{}, fmt.Errorf("%w: selection[%d] = %d outside sequence of %d", domain.ErrInvalidPlan, i, idx, len(seq))
		}
	}

	loader := d.Loader
	if loader == nil {
		loader = FileLoader{}
	}
	if progress == nil {
		progress = noProgress{}
	}

	job := NewJob(len(sel))
	log := d.Log.With().Str("job", job.ID.String()).Logger()
	log.Debug().Int("frames", job.Total).Int("fps", targetFPS).Msg("build started")

	var spec StreamSpec
	opened := false
	fail := func(err error) (Artifact, error) {
		if opened {
			if aerr := sink.Abort(); aerr != nil {
				log.Debug().Err(aerr).Msg("abort encoder")
			}
		}
		if pa, ok := progress.(ProgressAborter); ok {
			pa.Abort()
		}
		log.Debug().Err(err).Int("written", job.Written).Msg("build aborted")
		return Artifact{}, err
	}

	for i, idx := range sel {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		path := seq[idx]
		img, err := loader.Load(path)
		if err != nil {
			return fail(fmt.Errorf("%w: frame %d (%s): %w", domain.ErrFrameLoad, i+1, path, err))
		}
		frame := ToRGB24(img)

		if !opened {
			if frame.Width == 0 || frame.Height == 0 {
				return fail(fmt.Errorf("%w: frame %d (%s) has no pixels", domain.ErrFrameLoad, i+1, path))
			}
			spec = StreamSpec{Width: frame.Width, Height: frame.Height, FPS: targetFPS}
			if err := sink.Open(ctx, spec); err != nil {
				return fail(fmt.Errorf("%w: open: %w", domain.ErrEncoder, err))
			}
			opened = true
			log.Debug().Int("width", spec.Width).Int("height", spec.Height).Msg("encoder opened")
		} else if frame.Width != spec.Width || frame.Height != spec.Height {
			return fail(fmt.Errorf("%w: frame %d (%s) is %dx%d, expected %dx%d like the first frame",
				domain.ErrFrameLoad, i+1, path, frame.Width, frame.Height, spec.Width, spec.Height))
		}

		if err := sink.Append(frame); err != nil {
			return fail(fmt.Errorf("%w: write frame %d: %w", domain.ErrEncoder, i+1, err))
		}
		progress.Report(job.Advance(), job.Total)
	}

	if !job.Done() {
		return fail(fmt.Errorf("%w: wrote %d of %d frames", domain.ErrEncoder, job.Written, job.Total))
	}
	out, err := sink.Close()
	if err != nil {
		log.Debug().Err(err).Msg("build aborted at finalize")
		return Artifact{}, fmt.Errorf("%w: finalize: %w", domain.ErrEncoder, err)
	}
	job.OutputPath = out

	elapsed := time.Since(job.Started)
	log.Debug().Str("output", out).Dur("elapsed", elapsed).Msg("build finished")

	return Artifact{
		JobID:    job.ID.String(),
		Path:     out,
		Frames:   job.Written,
		FPS:      targetFPS,
		Duration: float64(job.Written) / float64(targetFPS),
		Elapsed:  elapsed,
	}, nil
}
