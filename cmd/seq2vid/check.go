package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/seq2vid/internal/check"
	"github.com/backmassage/seq2vid/internal/display"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check ffmpeg, ffprobe and encoder availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := a.setup(cmd)
			if err != nil {
				return err
			}
			defer log.Close()

			display.PrintBanner(os.Stderr)
			if !check.RunCheck(&a.cfg, log.Logger) {
				return reportedError{errors.New("system check failed")}
			}
			return nil
		},
	}
}
