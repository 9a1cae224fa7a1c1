// Command seq2vid turns a folder of still images into a video at a chosen
// playback speed.
//
// Subcommands: build encodes the video, plan previews the frame-rate plan
// (optionally live while the folder changes), check runs ffmpeg diagnostics.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/backmassage/seq2vid/internal/config"
	"github.com/backmassage/seq2vid/internal/display"
	"github.com/backmassage/seq2vid/internal/logging"
)

// version is injected at build time via -ldflags; otherwise the module
// version from build info is used.
var version = ""

const helpDescription = `
Turn an ordered folder of still images into a video at 1x, 2x, 4x or any
custom speed. The output frame rate is derived from the image count and the
original duration, capped at 30 fps; images are dropped or repeated evenly.

Images (png, jpg, jpeg, bmp, tif) are taken from the folder in file-name
order. Requires ffmpeg on PATH; ffprobe is used for verification when present.
`

var longHelp = display.Banner + "\n" + strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  seq2vid plan ./timelapse --duration 60 --speed 4x
  seq2vid plan ./timelapse -d 60 -s 2 --watch
  seq2vid build ./timelapse -d 60 -s 2x --codec hevc --quality 9
  seq2vid check
`)

// reportedError wraps a failure that has already been logged.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func getVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		var rep reportedError
		if !errors.As(err, &rep) {
			fmt.Fprintf(os.Stderr, "seq2vid: %v\n", err)
		}
		return 1
	}
	return 0
}

// app carries the configuration shared by all subcommands.
type app struct {
	cfg     config.Config
	cfgPath string
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.DefaultConfig()}

	root := &cobra.Command{
		Use:           "seq2vid",
		Short:         "Convert an image sequence into a video at a chosen speed",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, config.FlagConfig, "", "Config file (default $HOME/.seq2vid/config.toml)")
	config.BindGlobalFlags(pf, &a.cfg)

	root.AddCommand(newBuildCmd(a), newPlanCmd(a), newCheckCmd(a))
	return root
}

// setup layers the config file and SEQ2VID_* environment under the flags
// that were set explicitly, validates the result and opens the logger.
func (a *app) setup(cmd *cobra.Command) (*logging.Logger, error) {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = config.DefaultConfigPath()
	}
	if cfgFile != "" && config.FileExists(cfgFile) {
		fc, err := config.LoadFileConfig(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if err := config.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
			return nil, err
		}
	} else if a.cfgPath != "" {
		return nil, fmt.Errorf("config file not found: %s", a.cfgPath)
	}

	if err := config.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return nil, err
	}
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	return logging.NewLogger(&a.cfg)
}
