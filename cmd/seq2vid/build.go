package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/backmassage/seq2vid/internal/config"
	"github.com/backmassage/seq2vid/internal/logging"
	"github.com/backmassage/seq2vid/internal/pipeline"
)

func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <folder>",
		Short: "Encode the images in a folder into a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.cfg.InputDir = config.NormalizeDirArg(args[0])
			log, err := a.setup(cmd)
			if err != nil {
				return err
			}
			defer log.Close()
			return runBuild(cmd.Context(), &a.cfg, log)
		},
	}
	config.BindJobFlags(cmd.Flags(), &a.cfg)
	config.BindEncodeFlags(cmd.Flags(), &a.cfg)
	return cmd
}

func runBuild(parent context.Context, cfg *config.Config, log *logging.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	if cfg.DryRun {
		log.Warn().Msg("DRY RUN: no files will be written")
	}

	// Cancel on SIGINT/SIGTERM; the driver stops before the next frame.
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	stats, err := pipeline.Run(ctx, cfg, log.Logger, pipeline.DefaultDeps(cfg, log.Logger))
	if err != nil {
		return reportedError{err}
	}
	if !stats.DryRun {
		log.Debug().Dur("total", logging.Since(start)).Msg("build finished")
	}
	return nil
}
