package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/backmassage/seq2vid/internal/config"
	"github.com/backmassage/seq2vid/internal/encode"
)

// Sink streams frames into one ffmpeg process. It implements encode.Sink.
// When verbose is set, ffmpeg's stderr is tee'd to os.Stderr in real time;
// otherwise it is captured silently for classification.
type Sink struct {
	cfg    *config.Config
	output string
	log    zerolog.Logger

	spec   encode.StreamSpec
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	w      *bufio.Writer
	stderr bytes.Buffer
	done   bool
	err    error
}

var _ encode.Sink = (*Sink)(nil)

// NewSink returns a Sink that writes to outputPath when opened.
func NewSink(cfg *config.Config, outputPath string, log zerolog.Logger) *Sink {
	return &Sink{cfg: cfg, output: outputPath, log: log}
}

// Open starts ffmpeg. The process is killed if ctx is cancelled.
func (s *Sink) Open(ctx context.Context, spec encode.StreamSpec) error {
	if s.cmd != nil {
		return errors.New("ffmpeg: sink already open")
	}
	args := Build(s.cfg, spec, s.output)
	s.log.Debug().Strs("args", args[1:]).Msg("starting ffmpeg")

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if s.cfg.Verbose {
		cmd.Stderr = io.MultiWriter(&s.stderr, os.Stderr)
	} else {
		cmd.Stderr = &s.stderr
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return &ExecError{Reason: Classify("", err), Err: err}
	}

	s.spec = spec
	s.cmd = cmd
	s.stdin = stdin
	s.w = bufio.NewWriterSize(stdin, spec.Width*spec.Height*3)
	return nil
}

// Append writes one rgb24 frame to ffmpeg's stdin.
func (s *Sink) Append(f encode.Frame) error {
	if s.cmd == nil || s.done {
		return errors.New("ffmpeg: sink not open")
	}
	if f.Width != s.spec.Width || f.Height != s.spec.Height {
		return fmt.Errorf("ffmpeg: frame is %dx%d, stream is %dx%d", f.Width, f.Height, s.spec.Width, s.spec.Height)
	}
	if _, err := s.w.Write(f.Pix); err != nil {
		return s.reap(err)
	}
	return nil
}

// Close flushes the remaining frames, waits for ffmpeg to finalize the file
// and returns its path.
func (s *Sink) Close() (string, error) {
	if s.cmd == nil || s.done {
		return "", errors.New("ffmpeg: sink not open")
	}
	if err := s.w.Flush(); err != nil {
		return "", s.reap(err)
	}
	if err := s.stdin.Close(); err != nil {
		return "", s.reap(err)
	}
	if err := s.wait(); err != nil {
		return "", &ExecError{Reason: Classify(s.stderr.String(), err), Stderr: s.stderr.String(), Err: err}
	}
	s.log.Debug().Str("output", s.output).Msg("ffmpeg finished")
	return s.output, nil
}

// Abort kills ffmpeg without finalizing. Safe to call more than once.
func (s *Sink) Abort() error {
	if s.cmd == nil || s.done {
		return nil
	}
	_ = s.stdin.Close()
	if err := s.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		s.log.Debug().Err(err).Msg("kill ffmpeg")
	}
	_ = s.wait()
	return nil
}

// reap collects the exit status after a failed write and explains it.
func (s *Sink) reap(writeErr error) error {
	_ = s.stdin.Close()
	err := s.wait()
	if err == nil {
		err = writeErr
	}
	return &ExecError{Reason: Classify(s.stderr.String(), err), Stderr: s.stderr.String(), Err: writeErr}
}

func (s *Sink) wait() error {
	if s.done {
		return s.err
	}
	s.err = s.cmd.Wait()
	s.done = true
	return s.err
}
