package notify

import (
	"go.uber.org/zap"

	"github.com/podstock/stocksync/internal/logger"
)

// LoggerSink surfaces notifications through the structured log. It is the
// fallback sink when no external notification transport is configured.
type LoggerSink struct{}

// NewLoggerSink creates a log-backed sink
func NewLoggerSink() *LoggerSink {
	return &LoggerSink{}
}

// Notify writes the notification to the log at a level matching its severity
func (s *LoggerSink) Notify(title, description string, severity Severity) {
	fields := []zap.Field{
		zap.String("title", title),
		zap.String("description", description),
	}
	if severity == SeverityError {
		logger.Warn("notification", fields...)
		return
	}
	logger.Info("notification", fields...)
}
