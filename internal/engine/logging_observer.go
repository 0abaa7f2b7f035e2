package engine

import (
	"context"
	"log/slog"
)

// LoggingObserver is a simple observer that logs all events using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a logging observer writing to logger, or to the
// default logger when logger is nil.
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements the Observer interface
// It logs each event with structured fields for easy filtering and analysis
func (lo *LoggingObserver) OnEvent(event Event) {
	level := slog.LevelDebug
	if event.Type == EventError {
		level = slog.LevelWarn
	}
	lo.logger.Log(context.Background(), level, "query_lifecycle",
		slog.String("event", string(event.Type)),
		slog.String("request_id", event.RequestID),
		slog.Time("timestamp", event.Timestamp),
		slog.Any("data", event.Data),
	)
}
