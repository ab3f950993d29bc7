// Package logger provides centralized slog configuration for the application
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Config holds logger configuration
type Config struct {
	// Level sets the minimum log level (debug, info, warn, error)
	Level string
	// Format sets the output format (text or json)
	Format string
	// AddSource adds source file information to log entries
	AddSource bool
}

// DefaultConfig returns the logger configuration from the environment
func DefaultConfig() Config {
	return Config{
		Level:     getEnvOrDefault("LOG_LEVEL", "info"),
		Format:    getEnvOrDefault("LOG_FORMAT", "text"),
		AddSource: getEnvOrDefault("LOG_ADD_SOURCE", "false") == "true",
	}
}

// NewLogger creates a new slog.Logger with the given configuration.
// Diagnostics go to stderr so they never mix with progress output on stdout.
func NewLogger(cfg Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

// NewDefaultLogger creates a new slog.Logger with default configuration
func NewDefaultLogger() *slog.Logger {
	return NewLogger(DefaultConfig())
}

// SetDefault sets the default slog logger
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}

// WithExecutable adds executable name to a logger for filtering by program
func WithExecutable(logger *slog.Logger, executableName string) *slog.Logger {
	return logger.With(slog.String("executable", executableName))
}

// WithLambda adds AWS Lambda context fields to a logger
func WithLambda(logger *slog.Logger, functionName, functionVersion string) *slog.Logger {
	return logger.With(
		slog.Group("lambda",
			slog.String("function_name", functionName),
			slog.String("function_version", functionVersion),
		),
	)
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
