// Package planner turns a frame count, a nominal original duration and a
// playback speed into a RatePlan, and materializes that plan as a
// FrameSelection by uniform nearest-neighbor subsampling.
//
// Everything here is pure: no I/O, no package state. Plan is cheap enough
// to call on every keystroke of a live preview.
//
// Files:
//   - types.go:   RatePlan, ImageSequence, FrameSelection
//   - planner.go: Plan and the fixed target frame-rate range
//   - select.go:  Select
//   - speed.go:   speed presets, ParseSpeed, ParseDuration
package planner
