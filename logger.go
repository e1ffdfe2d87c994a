package polycut

import (
	"io"
	"log/slog"
	"math"
	"os"
)

// Logger wraps slog.Logger with polycut-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})),
	}
}

// WithNDim adds a dimension field to the logger.
func (l *Logger) WithNDim(ndim uint8) *Logger {
	return &Logger{
		Logger: l.Logger.With("ndim", ndim),
	}
}

// WithPieceCount adds an active piece count field to the logger.
func (l *Logger) WithPieceCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("pieces", count),
	}
}

// LogCut logs a carve or slice operation.
func (l *Logger) LogCut(op string, divider, piecesBefore, piecesAfter int, err error) {
	if err != nil {
		l.Error("cut failed",
			"op", op,
			"divider", divider,
			"error", err,
		)
	} else {
		l.Debug("cut completed",
			"op", op,
			"divider", divider,
			"pieces_before", piecesBefore,
			"pieces_after", piecesAfter,
		)
	}
}

// LogSnapshot logs a snapshot save operation.
func (l *Logger) LogSnapshot(filename string, err error) {
	if err != nil {
		l.Error("snapshot failed",
			"filename", filename,
			"error", err,
		)
	} else {
		l.Info("snapshot saved",
			"filename", filename,
		)
	}
}

// LogRestore logs a snapshot restore operation.
func (l *Logger) LogRestore(pieces int, err error) {
	if err != nil {
		l.Error("restore failed",
			"error", err,
		)
	} else {
		l.Info("restore completed",
			"pieces", pieces,
		)
	}
}
