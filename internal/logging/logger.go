// Package logging builds the zerolog logger used across seq2vid: a
// human-readable console writer on stderr plus an optional JSON log file.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/backmassage/seq2vid/internal/config"
	"github.com/backmassage/seq2vid/internal/term"
)

// TimeFormat is the console timestamp layout.
const TimeFormat = "2006-01-02 15:04:05"

// Logger is a zerolog.Logger that owns its optional log file.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// NewLogger configures terminal colors from cfg, then builds a logger that
// writes to stderr and, when cfg.LogFile is set, appends JSON lines to that
// file. Call Close() when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)
	return newLogger(os.Stderr, cfg)
}

func newLogger(console io.Writer, cfg *config.Config) (*Logger, error) {
	l := &Logger{}
	var out io.Writer = zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: TimeFormat,
		NoColor:    !term.Enabled(),
	}

	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		l.file = f
		out = zerolog.MultiLevelWriter(out, f)
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	l.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return l, nil
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Since is a convenience for logging elapsed time rounded to milliseconds.
func Since(start time.Time) time.Duration {
	return time.Since(start).Round(time.Millisecond)
}
