package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "APPLYWIZARD_LOG_LEVEL"

// Initialize creates a new logger with the specified level writing to path.
// If level is empty, it checks APPLYWIZARD_LOG_LEVEL.
// If neither is set, logging is disabled (silent mode).
// An empty path writes to stderr; the wizard always passes a file because the
// terminal belongs to the TUI.
func Initialize(level, path string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	zapLevel, err := parseLevel(level)
	if err != nil {
		return err
	}

	output := "stderr"
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		output = path
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", level)
	}
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogFetch logs the start of a page fetch for a remote collection.
func LogFetch(kind string, page, pageSize int) {
	Debug("Fetching page",
		zap.String("kind", kind),
		zap.Int("page", page),
		zap.Int("skip", page*pageSize),
		zap.Int("limit", pageSize),
	)
}

// LogPageLoaded logs a successfully applied page.
func LogPageLoaded(kind string, page, loaded, total int) {
	Info("Page loaded",
		zap.String("kind", kind),
		zap.Int("page", page),
		zap.Int("loaded", loaded),
		zap.Int("total", total),
	)
}

// LogFetchFailure logs a swallowed fetch failure. Loader state is unchanged.
func LogFetchFailure(kind string, page int, err error) {
	Warn("Page fetch failed",
		zap.String("kind", kind),
		zap.Int("page", page),
		zap.Error(err),
	)
}

// LogStepCommitted logs a validated step snapshot being written to the store.
func LogStepCommitted(step int, name string) {
	Info("Step committed",
		zap.Int("step", step),
		zap.String("name", name),
	)
}

// LogNavigation logs a change of the current wizard step.
func LogNavigation(from, to int) {
	Debug("Step changed",
		zap.Int("from", from),
		zap.Int("to", to),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
