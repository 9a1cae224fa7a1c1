// Package ffmpeg encodes raw RGB frames into a video file by streaming them
// to an ffmpeg child process over stdin.
//
// Files:
//   - builder.go: Build(cfg, spec, output) → argument slice.
//   - executor.go: Sink, the encode.Sink backed by one ffmpeg process.
//   - errors.go: stderr classification into short, readable reasons.
package ffmpeg
