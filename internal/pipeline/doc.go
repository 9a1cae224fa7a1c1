// Package pipeline runs one image-sequence build end to end:
// discover → plan → select → encode → verify → notify.
//
// It is UI-agnostic. Folder listing, the encoder sink, progress and
// notification are supplied through [Deps] so the CLI, the live preview and
// tests share the same flow.
package pipeline
