// Package probe inspects a finished video with a single ffprobe JSON call.
// The pipeline uses it to confirm the achieved frame count, frame rate and
// duration of an output file.
package probe
