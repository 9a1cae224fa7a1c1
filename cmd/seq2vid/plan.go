package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/seq2vid/internal/config"
	"github.com/backmassage/seq2vid/internal/logging"
	"github.com/backmassage/seq2vid/internal/pipeline"
	"github.com/backmassage/seq2vid/internal/term"
)

func newPlanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <folder>",
		Short: "Preview the frame-rate plan without encoding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.cfg.InputDir = config.NormalizeDirArg(args[0])
			log, err := a.setup(cmd)
			if err != nil {
				return err
			}
			defer log.Close()
			return runPlan(cmd.Context(), &a.cfg, log, cmd.OutOrStdout())
		},
	}
	config.BindJobFlags(cmd.Flags(), &a.cfg)
	config.BindWatchFlags(cmd.Flags(), &a.cfg)
	return cmd
}

func runPlan(parent context.Context, cfg *config.Config, log *logging.Logger, w io.Writer) error {
	if !cfg.Watch {
		_, err := pipeline.Preview(cfg, pipeline.DirLister{}, w)
		return err
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// In watch mode an empty or unreadable folder is shown, not fatal.
	preview := func() {
		if _, err := pipeline.Preview(cfg, pipeline.DirLister{}, w); err != nil {
			fmt.Fprintf(w, "%s%v%s\n", term.Red, err, term.NC)
		}
		fmt.Fprintln(w)
	}
	preview()

	watcher := &pipeline.FolderWatcher{
		Dir:      cfg.InputDir,
		Debounce: cfg.Debounce,
		Log:      log.Logger,
		OnChange: preview,
	}
	log.Info().Str("folder", cfg.InputDir).Msg("watching for changes (Ctrl-C to stop)")
	return watcher.Run(ctx)
}
