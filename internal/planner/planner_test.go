package planner

import (
	"errors"
	"math"
	"testing"

	"github.com/backmassage/seq2vid/internal/domain"
)

// --- Plan scenarios ---

func TestPlan_Scenarios(t *testing.T) {
	tests := []struct {
		name         string
		frames       int
		duration     float64
		speed        float64
		origFPS      float64
		outDuration  float64
		targetFPS    int
		selected     int
		estimatedFPS float64
	}{
		{"30fps source at 1x", 300, 10, 1, 30, 10, 30, 300, 30},
		{"30fps source at 2x caps at 30", 300, 10, 2, 30, 5, 30, 150, 30},
		{"sparse source raises to 1fps", 10, 100, 1, 0.1, 100, 1, 100, 1},
		{"timelapse at 4x", 1200, 600, 4, 2, 150, 8, 1200, 8},
		{"fractional speed", 100, 10, 0.5, 10, 20, 5, 100, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Plan(tt.frames, tt.duration, tt.speed)
			if err != nil {
				t.Fatalf("Plan: %v", err)
			}
			if !approx(p.OriginalFPS, tt.origFPS) {
				t.Errorf("OriginalFPS: got %v, want %v", p.OriginalFPS, tt.origFPS)
			}
			if !approx(p.OutputDuration, tt.outDuration) {
				t.Errorf("OutputDuration: got %v, want %v", p.OutputDuration, tt.outDuration)
			}
			if p.TargetFPS != tt.targetFPS {
				t.Errorf("TargetFPS: got %d, want %d", p.TargetFPS, tt.targetFPS)
			}
			if p.SelectedCount != tt.selected {
				t.Errorf("SelectedCount: got %d, want %d", p.SelectedCount, tt.selected)
			}
			if !approx(p.EstimatedOutputFPS, tt.estimatedFPS) {
				t.Errorf("EstimatedOutputFPS: got %v, want %v", p.EstimatedOutputFPS, tt.estimatedFPS)
			}
		})
	}
}

func TestPlan_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		frames   int
		duration float64
		speed    float64
	}{
		{"zero frames", 0, 10, 1},
		{"negative frames", -3, 10, 1},
		{"zero duration", 10, 0, 1},
		{"negative duration", 10, -5, 1},
		{"NaN duration", 10, math.NaN(), 1},
		{"infinite duration", 10, math.Inf(1), 1},
		{"zero speed", 10, 10, 0},
		{"negative speed", 10, 10, -2},
		{"NaN speed", 10, 10, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Plan(tt.frames, tt.duration, tt.speed)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("Plan(%d, %v, %v) error = %v, want ErrInvalidInput", tt.frames, tt.duration, tt.speed, err)
			}
		})
	}
}

func TestPlan_SpeedTooLargeIsInvalidPlan(t *testing.T) {
	// One frame over 10 s at 1000x leaves 0.01 s of output; even at the
	// 30 fps cap that is 0.3 of a frame.
	_, err := Plan(1, 10, 1000)
	if !errors.Is(err, domain.ErrInvalidPlan) {
		t.Errorf("error = %v, want ErrInvalidPlan", err)
	}
}

// --- Plan properties ---

func TestPlan_Properties(t *testing.T) {
	frames := []int{1, 2, 7, 30, 299, 300, 301, 1000, 86400}
	durations := []float64{0.5, 1, 3.3, 10, 60, 100, 3600}
	speeds := []float64{0.25, 0.5, 1, 1.5, 2, 3, 4, 10}

	for _, n := range frames {
		for _, d := range durations {
			for _, s := range speeds {
				p, err := Plan(n, d, s)
				if errors.Is(err, domain.ErrInvalidPlan) {
					continue
				}
				if err != nil {
					t.Fatalf("Plan(%d, %v, %v): %v", n, d, s, err)
				}
				if p.TargetFPS < MinTargetFPS || p.TargetFPS > MaxTargetFPS {
					t.Errorf("Plan(%d, %v, %v).TargetFPS = %d, out of [1,30]", n, d, s, p.TargetFPS)
				}
				if want := int(math.Floor(p.OutputDuration * float64(p.TargetFPS))); p.SelectedCount != want {
					t.Errorf("Plan(%d, %v, %v).SelectedCount = %d, want floor(%v*%d) = %d",
						n, d, s, p.SelectedCount, p.OutputDuration, p.TargetFPS, want)
				}
				if p.SelectedCount < 1 {
					t.Errorf("Plan(%d, %v, %v).SelectedCount = %d, want >= 1", n, d, s, p.SelectedCount)
				}
				if p.EstimatedOutputFPS != float64(p.SelectedCount)/p.OutputDuration {
					t.Errorf("Plan(%d, %v, %v): EstimatedOutputFPS %v != SelectedCount/OutputDuration",
						n, d, s, p.EstimatedOutputFPS)
				}
			}
		}
	}
}

func TestPlan_Idempotent(t *testing.T) {
	a, errA := Plan(457, 12.7, 3.3)
	b, errB := Plan(457, 12.7, 3.3)
	if errA != nil || errB != nil {
		t.Fatalf("Plan errors: %v, %v", errA, errB)
	}
	if a != b {
		t.Errorf("Plan not idempotent: %+v vs %+v", a, b)
	}
}

func TestRatePlan_Summary(t *testing.T) {
	p, err := Plan(300, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"Original FPS: 30.00",
		"Target FPS: 30",
		"Estimated Output FPS: 30.00",
		"Output Duration: 5.00 s",
	}
	got := p.Summary()
	if len(got) != len(want) {
		t.Fatalf("Summary: got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Summary[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ v, want int }{
		{-4, 1}, {0, 1}, {1, 1}, {15, 15}, {30, 30}, {60, 30},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, MinTargetFPS, MaxTargetFPS); got != tt.want {
			t.Errorf("Clamp(%d): got %d, want %d", tt.v, got, tt.want)
		}
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
