package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/backmassage/seq2vid/internal/check"
	"github.com/backmassage/seq2vid/internal/config"
	"github.com/backmassage/seq2vid/internal/display"
	"github.com/backmassage/seq2vid/internal/domain"
	"github.com/backmassage/seq2vid/internal/encode"
	"github.com/backmassage/seq2vid/internal/ffmpeg"
	"github.com/backmassage/seq2vid/internal/naming"
	"github.com/backmassage/seq2vid/internal/planner"
	"github.com/backmassage/seq2vid/internal/probe"
)

// Prober inspects a finished output file.
type Prober func(ctx context.Context, path string) (*probe.ProbeResult, error)

// Deps are the external collaborators of a build. Zero fields are filled
// by [DefaultDeps].
type Deps struct {
	Lister   Lister
	Loader   encode.FrameLoader
	NewSink  func(outputPath string) encode.Sink
	Progress func(total int) encode.Progress
	Notifier Notifier
	Prober   Prober // nil skips verification

	// Preflight checks the encoder toolchain after the inputs are
	// validated and before anything is written. nil skips it.
	Preflight func() error
}

// DefaultDeps wires the local filesystem, the ffmpeg sink and its
// dependency check, terminal progress, log notifications and, when enabled
// and available, ffprobe verification.
func DefaultDeps(cfg *config.Config, log zerolog.Logger) Deps {
	d := Deps{
		Lister: DirLister{},
		Loader: encode.FileLoader{},
		NewSink: func(out string) encode.Sink {
			return ffmpeg.NewSink(cfg, out, log)
		},
		Progress: func(total int) encode.Progress {
			return display.NewProgress(log, total)
		},
		Notifier: LogNotifier{Log: log},
		Preflight: func() error {
			return check.CheckDeps(cfg)
		},
	}
	if cfg.Verify {
		if check.HasFFprobe(cfg) {
			d.Prober = func(ctx context.Context, path string) (*probe.ProbeResult, error) {
				return probe.Probe(ctx, cfg.FFprobeBin, path)
			}
		} else {
			log.Debug().Str("bin", cfg.FFprobeBin).Msg("ffprobe not found, skipping verification")
		}
	}
	return d
}

// Run builds one video from cfg.InputDir. Every failure is reported once
// through deps.Notifier and returned; a partially written output is
// removed.
func Run(ctx context.Context, cfg *config.Config, log zerolog.Logger, deps Deps) (BuildStats, error) {
	stats := BuildStats{DryRun: cfg.DryRun}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = LogNotifier{Log: log}
	}
	fail := func(err error) (BuildStats, error) {
		notifier.Failure(err.Error())
		return stats, err
	}

	// --- Validate ---
	if err := cfg.ValidateJob(); err != nil {
		return fail(err)
	}

	// --- Discover ---
	lister := deps.Lister
	if lister == nil {
		lister = DirLister{}
	}
	seq, err := lister.List(cfg.InputDir)
	if err != nil {
		return fail(err)
	}
	stats.Sources = len(seq)
	log.Info().Int("images", len(seq)).Str("folder", cfg.InputDir).Msg("found images")

	// --- Plan and select ---
	plan, err := planner.Plan(len(seq), cfg.Duration, cfg.Speed)
	if err != nil {
		return fail(err)
	}
	stats.Plan = plan
	logPlan(log, cfg, plan)

	sel, err := planner.Select(seq, plan)
	if err != nil {
		return fail(err)
	}
	stats.Selected = len(sel)
	stats.Unique = sel.Unique()
	log.Info().
		Int("selected", stats.Selected).
		Int("dropped", stats.Dropped()).
		Int("repeated", stats.Repeated()).
		Msg("frames selected")

	output := naming.OutputPath(cfg.InputDir, cfg.OutputPath, string(cfg.Container))
	stats.Output = output

	// --- Dry-run ---
	if cfg.DryRun {
		log.Info().Str("output", output).Msgf("[DRY] Would encode %d frames at %d fps", len(sel), plan.TargetFPS)
		return stats, nil
	}

	if deps.Preflight != nil {
		if err := deps.Preflight(); err != nil {
			return fail(fmt.Errorf("%w: %w", domain.ErrEncoder, err))
		}
	}

	if err := naming.CheckClobber(output, cfg.NoClobber); err != nil {
		return fail(err)
	}
	before, _ := os.Stat(output)

	// --- Encode ---
	log.Info().
		Str("codec", cfg.Codec.Encoder()).
		Int("crf", cfg.EffectiveCRF()).
		Str("output", output).
		Msg("encoding")

	var progress encode.Progress
	if deps.Progress != nil {
		progress = deps.Progress(len(sel))
	}
	newSink := deps.NewSink
	if newSink == nil {
		newSink = func(out string) encode.Sink { return ffmpeg.NewSink(cfg, out, log) }
	}
	driver := encode.Driver{Loader: deps.Loader, Log: log}

	start := time.Now()
	art, err := driver.Build(ctx, seq, sel, plan.TargetFPS, newSink(output), progress)
	stats.Elapsed = time.Since(start)
	if err != nil {
		removePartial(log, output, before)
		if errors.Is(err, context.Canceled) {
			return fail(fmt.Errorf("build interrupted: %w", err))
		}
		return fail(err)
	}

	if st, err := os.Stat(art.Path); err == nil {
		stats.OutputBytes = st.Size()
	}
	log.Info().
		Int("frames", art.Frames).
		Str("duration", display.FormatSeconds(art.Duration)).
		Str("size", display.FormatBytes(stats.OutputBytes)).
		Dur("elapsed", stats.Elapsed.Round(time.Millisecond)).
		Msg("encoded")

	// --- Verify ---
	if deps.Prober != nil {
		stats.Verified = verify(ctx, log, deps.Prober, art)
	}

	notifier.Success(art.Path)
	return stats, nil
}

// logPlan logs the preview labels for the plan.
func logPlan(log zerolog.Logger, cfg *config.Config, plan planner.RatePlan) {
	log.Info().
		Float64("duration", cfg.Duration).
		Str("speed", planner.FormatSpeed(cfg.Speed)).
		Msg("plan")
	for _, line := range plan.Summary() {
		log.Info().Msg("  " + line)
	}
	if plan.Repeats() {
		log.Debug().Msg("fewer images than output frames; images will repeat")
	}
}

// verify probes the artifact and warns when ffprobe disagrees with what was
// written. Probe failures are logged, not returned.
func verify(ctx context.Context, log zerolog.Logger, prober Prober, art encode.Artifact) *probe.ProbeResult {
	pr, err := prober(ctx, art.Path)
	if err != nil {
		log.Warn().Err(err).Msg("verification skipped")
		return nil
	}
	ev := log.Info()
	msg := "verified"
	if pr.Frames() != int64(art.Frames) {
		ev = log.Warn()
		msg = "frame count mismatch"
	}
	ev.Int64("frames", pr.Frames()).
		Int("expected", art.Frames).
		Float64("fps", pr.FPS()).
		Str("duration", display.FormatSeconds(pr.Duration())).
		Str("resolution", pr.Resolution()).
		Str("bitrate", display.FormatBitrate(pr.Format.BitRate)).
		Msg(msg)
	return pr
}

// removePartial deletes output after a failed build unless it is the
// untouched file that was there before.
func removePartial(log zerolog.Logger, output string, before os.FileInfo) {
	after, err := os.Stat(output)
	if err != nil {
		return
	}
	if before != nil && after.Size() == before.Size() && after.ModTime().Equal(before.ModTime()) {
		return
	}
	if err := os.Remove(output); err != nil {
		log.Warn().Err(err).Str("output", output).Msg("could not remove partial output")
		return
	}
	log.Debug().Str("output", output).Msg("removed partial output")
}
