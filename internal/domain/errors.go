// Package domain holds the error kinds shared by the planner, the encoder
// driver and the pipeline. Callers match them with errors.Is; every error
// returned across a package boundary wraps exactly one of these.
package domain

import "errors"

var (
	// ErrInvalidInput is returned when duration, speed or frame count is
	// non-numeric or out of range. Detected before any I/O.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptySequence is returned when no qualifying images were found.
	ErrEmptySequence = errors.New("no valid images found")

	// ErrInvalidPlan is returned when a plan selects zero frames.
	ErrInvalidPlan = errors.New("invalid plan")

	// ErrFrameLoad is returned when a source image cannot be read or decoded.
	ErrFrameLoad = errors.New("frame load failed")

	// ErrEncoder is returned when the encoder sink cannot open, write or
	// finalize the output artifact.
	ErrEncoder = errors.New("encoder failed")
)
