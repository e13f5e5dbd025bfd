package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vivahmatch/backend/internal/config"
	"github.com/vivahmatch/backend/internal/constants"
)

// logFile is the rotating file sink, nil when logging only to stdout
var logFile *lumberjack.Logger

// InitLogger initializes the application logger with the given configuration
func InitLogger(cfg *config.AppConfig) {
	// Set global log level
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil {
		// Default to info level if invalid
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = zerolog.New(buildLogOutput(cfg)).
		With().
		Timestamp().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("env", cfg.App.Environment).
		Logger()

	log.Info().Msg("Logger initialized")
}

// buildLogOutput returns stdout (console or JSON) teed with the rotating
// log file when one is configured
func buildLogOutput(cfg *config.AppConfig) io.Writer {
	var output io.Writer = os.Stdout
	if strings.ToLower(cfg.Logging.Format) == "console" && !cfg.App.IsProduction() {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	if cfg.Logging.FilePath == "" {
		return output
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Logging.FilePath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		return output
	}

	logFile = &lumberjack.Logger{
		Filename:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}

	// The file always receives JSON regardless of the console format
	return zerolog.MultiLevelWriter(output, logFile)
}

// CloseLogger flushes and closes the rotating log file if one is open
func CloseLogger() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// RotateLogFile forces a rotation of the log file, typically on SIGHUP
func RotateLogFile() error {
	if logFile == nil {
		return nil
	}
	return logFile.Rotate()
}

// RequestLogger creates a logger with request-specific context
func RequestLogger(requestID, userID, method, path string) zerolog.Logger {
	logger := log.With().
		Str(constants.RequestIDContextKey, requestID).
		Str("method", method).
		Str("path", path)

	if userID != "" {
		logger = logger.Str(constants.UserIDContextKey, userID)
	}

	return logger.Logger()
}

// LogHTTPRequest logs an HTTP request with request details
func LogHTTPRequest(requestID, method, path, remoteAddr, userAgent string, statusCode int, latency time.Duration) {
	// Only log some paths at debug level to reduce noise
	if path == constants.HealthPath || path == constants.DefaultMetricsPath {
		if zerolog.GlobalLevel() > zerolog.DebugLevel {
			return
		}
	}

	event := log.Debug()

	// Elevate error responses to warning/error level
	if statusCode >= 400 && statusCode < 500 {
		event = log.Warn()
	} else if statusCode >= 500 {
		event = log.Error()
	} else if strings.HasPrefix(path, constants.APIBasePath) {
		event = log.Info()
	}

	event.
		Str(constants.RequestIDContextKey, requestID).
		Str("method", method).
		Str("path", path).
		Str("remote_addr", remoteAddr).
		Str("user_agent", userAgent).
		Int("status", statusCode).
		Dur("latency", latency).
		Msg("HTTP Request")
}

// LogError logs an error with context information
func LogError(err error, context map[string]interface{}) {
	event := log.Error().Err(err)

	for key, value := range context {
		switch v := value.(type) {
		case string:
			event = event.Str(key, v)
		case int:
			event = event.Int(key, v)
		case int64:
			event = event.Int64(key, v)
		case float64:
			event = event.Float64(key, v)
		case bool:
			event = event.Bool(key, v)
		default:
			event = event.Interface(key, v)
		}
	}

	event.Msg("Error occurred")
}

// LogPanic logs a recovered panic value
func LogPanic(recovered interface{}, stack []byte) {
	log.Error().
		Interface("panic", recovered).
		Str("stack", string(stack)).
		Msg("Panic recovered")
}

// LogDBQuery logs a database query for debugging
func LogDBQuery(query string, args []interface{}, duration time.Duration, err error) {
	lowerQuery := strings.ToLower(query)
	sensitive := strings.Contains(lowerQuery, constants.ColumnPasswordHash) ||
		strings.Contains(lowerQuery, "secret") ||
		strings.Contains(lowerQuery, "token")

	// Mask string arguments of queries touching sensitive columns
	safeArgs := make([]interface{}, len(args))
	for i, arg := range args {
		if _, ok := arg.(string); ok && sensitive {
			safeArgs[i] = constants.LogRedactedValue
			continue
		}
		safeArgs[i] = arg
	}

	event := log.Debug()
	if err != nil {
		event = log.Error().Err(err)
	}

	event.
		Str("query", query).
		Interface("args", safeArgs).
		Dur("duration", duration).
		Msg("Database query executed")
}

// LogAuth logs authentication events
func LogAuth(event string, userID, email string, success bool, reason string) {
	logEvent := log.Info()
	if !success {
		logEvent = log.Warn()
	}

	logEvent = logEvent.
		Str("category", constants.LogCategoryAuth).
		Str("event", event).
		Str(constants.UserIDContextKey, userID).
		Str(constants.EmailContextKey, email).
		Bool("success", success)

	if reason != "" {
		logEvent = logEvent.Str("reason", reason)
	}

	logEvent.Msg("Authentication event")
}

// LogSearch logs a completed profile search
func LogSearch(filterFields, results int, excludeUserID string, duration time.Duration) {
	log.Info().
		Str("category", constants.LogCategorySearch).
		Str("event", "search").
		Int("filter_fields", filterFields).
		Int("results", results).
		Bool("excluding_user", excludeUserID != "").
		Dur("duration", duration).
		Msg("Profile search completed")
}

// GetLogLevel returns the current global log level as a string
func GetLogLevel() string {
	return zerolog.GlobalLevel().String()
}

// SetLogLevel updates the global log level
func SetLogLevel(level string) error {
	parsedLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level: %s", level)
	}

	zerolog.SetGlobalLevel(parsedLevel)
	log.Debug().Str("level", parsedLevel.String()).Msg("Log level changed")

	return nil
}
