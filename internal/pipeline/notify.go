package pipeline

import "github.com/rs/zerolog"

// Notifier tells the user how a build ended.
type Notifier interface {
	Success(artifactPath string)
	Failure(reason string)
}

// LogNotifier reports build outcomes through the logger.
type LogNotifier struct {
	Log zerolog.Logger
}

// Success logs the finished artifact path.
func (n LogNotifier) Success(artifactPath string) {
	n.Log.Info().Str("output", artifactPath).Msg("Done. Video created")
}

// Failure logs a single human-readable reason.
func (n LogNotifier) Failure(reason string) {
	n.Log.Error().Msg(reason)
}
