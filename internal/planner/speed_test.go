package planner

import (
	"errors"
	"testing"

	"github.com/backmassage/seq2vid/internal/domain"
)

func TestParseSpeed(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1x", 1, false},
		{"2x", 2, false},
		{"4X", 4, false},
		{" 2 ", 2, false},
		{"4×", 4, false},
		{"1.5", 1.5, false},
		{"0.25x", 0.25, false},
		{"", 0, true},
		{"fast", 0, true},
		{"0", 0, true},
		{"-2", 0, true},
		{"NaN", 0, true},
		{"inf", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSpeed(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSpeed(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Errorf("ParseSpeed(%q) error = %v, want ErrInvalidInput", tt.in, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseSpeed(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatSpeed_RoundTrips(t *testing.T) {
	for _, v := range []float64{1, 2, 4, 1.5, 0.25} {
		got, err := ParseSpeed(FormatSpeed(v))
		if err != nil || got != v {
			t.Errorf("ParseSpeed(FormatSpeed(%v)) = %v, %v", v, got, err)
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"10", 10, false},
		{" 12.5 ", 12.5, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"ten", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDuration(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
