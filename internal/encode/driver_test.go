package encode

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/backmassage/seq2vid/internal/domain"
	"github.com/backmassage/seq2vid/internal/planner"
)

// --- Fakes ---

type fakeLoader struct {
	fail  map[string]error
	sizes map[string]image.Point
	loads []string
}

func (l *fakeLoader) Load(path string) (image.Image, error) {
	l.loads = append(l.loads, path)
	if err := l.fail[path]; err != nil {
		return nil, err
	}
	size := image.Pt(4, 2)
	if s, ok := l.sizes[path]; ok {
		size = s
	}
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	img.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	return img, nil
}

type fakeSink struct {
	spec     StreamSpec
	opened   int
	frames   []Frame
	closed   bool
	aborted  bool
	openErr  error
	writeErr error
	failAt   int // 1-based append that fails; 0 = never
	closeErr error
}

func (s *fakeSink) Open(_ context.Context, spec StreamSpec) error {
	s.opened++
	s.spec = spec
	return s.openErr
}

func (s *fakeSink) Append(f Frame) error {
	if s.failAt > 0 && len(s.frames)+1 == s.failAt {
		return s.writeErr
	}
	s.frames = append(s.frames, f)
	return nil
}

func (s *fakeSink) Close() (string, error) {
	s.closed = true
	if s.closeErr != nil {
		return "", s.closeErr
	}
	return "/out/output_video.mp4", nil
}

func (s *fakeSink) Abort() error {
	s.aborted = true
	return nil
}

type recorder struct {
	updates [][2]int
	aborted bool
}

func (r *recorder) Abort() { r.aborted = true }

func (r *recorder) Report(current, total int) {
	r.updates = append(r.updates, [2]int{current, total})
}

func sequence(n int) planner.ImageSequence {
	seq := make(planner.ImageSequence, n)
	for i := range seq {
		seq[i] = fmt.Sprintf("/in/img_%03d.png", i)
	}
	return seq
}

func identity(n int) planner.FrameSelection {
	sel := make(planner.FrameSelection, n)
	for i := range sel {
		sel[i] = i
	}
	return sel
}

// --- Tests ---

func TestBuild_WritesEveryFrameInOrder(t *testing.T) {
	seq := sequence(6)
	sel := planner.FrameSelection{0, 0, 2, 3, 5}
	loader := &fakeLoader{}
	sink := &fakeSink{}
	rec := &recorder{}

	d := Driver{Loader: loader}
	art, err := d.Build(context.Background(), seq, sel, 12, sink, rec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	wantLoads := []string{seq[0], seq[0], seq[2], seq[3], seq[5]}
	if len(loader.loads) != len(wantLoads) {
		t.Fatalf("loads: got %v, want %v", loader.loads, wantLoads)
	}
	for i := range wantLoads {
		if loader.loads[i] != wantLoads[i] {
			t.Errorf("load[%d]: got %q, want %q", i, loader.loads[i], wantLoads[i])
		}
	}

	if sink.opened != 1 {
		t.Errorf("Open called %d times, want 1", sink.opened)
	}
	if sink.spec != (StreamSpec{Width: 4, Height: 2, FPS: 12}) {
		t.Errorf("spec: got %+v", sink.spec)
	}
	if len(sink.frames) != 5 || !sink.closed || sink.aborted {
		t.Errorf("sink: frames=%d closed=%v aborted=%v", len(sink.frames), sink.closed, sink.aborted)
	}

	for i, u := range rec.updates {
		if u != [2]int{i + 1, 5} {
			t.Errorf("progress[%d]: got %v, want [%d 5]", i, u, i+1)
		}
	}
	if len(rec.updates) != 5 {
		t.Errorf("progress updates: got %d, want 5", len(rec.updates))
	}
	if rec.aborted {
		t.Error("progress aborted on a successful build")
	}

	if art.Path != "/out/output_video.mp4" || art.Frames != 5 || art.FPS != 12 {
		t.Errorf("artifact: %+v", art)
	}
	if art.JobID == "" {
		t.Error("artifact JobID is empty")
	}
}

func TestBuild_AbortsOnFrameLoadFailure(t *testing.T) {
	seq := sequence(10)
	loader := &fakeLoader{fail: map[string]error{seq[4]: errors.New("corrupt PNG")}}
	sink := &fakeSink{}
	rec := &recorder{}

	d := Driver{Loader: loader}
	_, err := d.Build(context.Background(), seq, identity(10), 30, sink, rec)
	if !errors.Is(err, domain.ErrFrameLoad) {
		t.Fatalf("error = %v, want ErrFrameLoad", err)
	}

	if len(rec.updates) != 4 {
		t.Fatalf("progress updates: got %d, want 4", len(rec.updates))
	}
	for i, u := range rec.updates {
		if u[0] != i+1 {
			t.Errorf("progress[%d] = %v, want current %d", i, u, i+1)
		}
	}
	if !sink.aborted || sink.closed {
		t.Errorf("sink: aborted=%v closed=%v, want aborted only", sink.aborted, sink.closed)
	}
	if !rec.aborted {
		t.Error("progress not aborted")
	}
	if len(loader.loads) != 5 {
		t.Errorf("loads: got %d, want 5 (no frame after the failure)", len(loader.loads))
	}
}

func TestBuild_FirstFrameFailureNeverOpensSink(t *testing.T) {
	seq := sequence(3)
	loader := &fakeLoader{fail: map[string]error{seq[0]: errors.New("missing")}}
	sink := &fakeSink{}

	d := Driver{Loader: loader}
	_, err := d.Build(context.Background(), seq, identity(3), 30, sink, nil)
	if !errors.Is(err, domain.ErrFrameLoad) {
		t.Fatalf("error = %v, want ErrFrameLoad", err)
	}
	if sink.opened != 0 || sink.aborted {
		t.Errorf("sink: opened=%d aborted=%v, want untouched", sink.opened, sink.aborted)
	}
}

func TestBuild_RejectsMismatchedDimensions(t *testing.T) {
	seq := sequence(3)
	loader := &fakeLoader{sizes: map[string]image.Point{seq[2]: image.Pt(8, 8)}}
	sink := &fakeSink{}

	d := Driver{Loader: loader}
	_, err := d.Build(context.Background(), seq, identity(3), 30, sink, nil)
	if !errors.Is(err, domain.ErrFrameLoad) {
		t.Fatalf("error = %v, want ErrFrameLoad", err)
	}
	if len(sink.frames) != 2 || !sink.aborted {
		t.Errorf("sink: frames=%d aborted=%v", len(sink.frames), sink.aborted)
	}
}

func TestBuild_EncoderFailures(t *testing.T) {
	tests := []struct {
		name       string
		sink       *fakeSink
		wantFrames int
		wantAbort  bool
	}{
		{"open fails", &fakeSink{openErr: errors.New("no ffmpeg")}, 0, false},
		{"append fails", &fakeSink{failAt: 3, writeErr: errors.New("broken pipe")}, 2, true},
		{"close fails", &fakeSink{closeErr: errors.New("moov atom")}, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			d := Driver{Loader: &fakeLoader{}}
			_, err := d.Build(context.Background(), sequence(5), identity(5), 30, tt.sink, rec)
			if !errors.Is(err, domain.ErrEncoder) {
				t.Fatalf("error = %v, want ErrEncoder", err)
			}
			if len(tt.sink.frames) != tt.wantFrames {
				t.Errorf("frames: got %d, want %d", len(tt.sink.frames), tt.wantFrames)
			}
			if len(rec.updates) != tt.wantFrames {
				t.Errorf("progress: got %d, want %d", len(rec.updates), tt.wantFrames)
			}
			if tt.sink.aborted != tt.wantAbort {
				t.Errorf("aborted: got %v, want %v", tt.sink.aborted, tt.wantAbort)
			}
		})
	}
}

func TestBuild_CancelBetweenFrames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &fakeSink{}
	progress := ProgressFunc(func(current, _ int) {
		if current == 2 {
			cancel()
		}
	})

	d := Driver{Loader: &fakeLoader{}}
	_, err := d.Build(ctx, sequence(5), identity(5), 30, sink, progress)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if len(sink.frames) != 2 || !sink.aborted {
		t.Errorf("sink: frames=%d aborted=%v", len(sink.frames), sink.aborted)
	}
}

func TestBuild_InvalidArguments(t *testing.T) {
	d := Driver{Loader: &fakeLoader{}}
	ctx := context.Background()

	if _, err := d.Build(ctx, nil, identity(1), 30, &fakeSink{}, nil); !errors.Is(err, domain.ErrEmptySequence) {
		t.Errorf("empty sequence: error = %v", err)
	}
	if _, err := d.Build(ctx, sequence(2), nil, 30, &fakeSink{}, nil); !errors.Is(err, domain.ErrInvalidPlan) {
		t.Errorf("empty selection: error = %v", err)
	}
	if _, err := d.Build(ctx, sequence(2), planner.FrameSelection{0, 2}, 30, &fakeSink{}, nil); !errors.Is(err, domain.ErrInvalidPlan) {
		t.Errorf("out of range index: error = %v", err)
	}
	if _, err := d.Build(ctx, sequence(2), identity(2), 31, &fakeSink{}, nil); !errors.Is(err, domain.ErrInvalidPlan) {
		t.Errorf("fps 31: error = %v", err)
	}
}
