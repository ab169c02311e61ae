package livechannel

import "log/slog"

// ErrorReporter is the observability sink for stream failures
type ErrorReporter interface {
	Report(err error)
}

// ReporterFunc adapts a function to ErrorReporter
type ReporterFunc func(err error)

// Report implements ErrorReporter
func (f ReporterFunc) Report(err error) { f(err) }

// LogReporter writes stream errors to a slog logger
type LogReporter struct {
	Logger *slog.Logger
}

// Report implements ErrorReporter
func (r LogReporter) Report(err error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("live channel error", "error", err)
}
