package logging

import (
	"fmt"

	"github.com/spoorthi/outreach-ai/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func parseLevel(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func build(level zapcore.Level, jsonFormat bool, filePath string) (*zap.Logger, error) {
	var logConfig zap.Config
	if jsonFormat {
		logConfig = zap.NewProductionConfig()
	} else {
		logConfig = zap.NewDevelopmentConfig()
		logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	logConfig.Level = zap.NewAtomicLevelAt(level)
	if filePath != "" {
		logConfig.OutputPaths = append(logConfig.OutputPaths, filePath)
	}

	logger, err := logConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// InitLogger initializes a logger based on configuration. When logging.file
// is set the log is duplicated to that file alongside stderr, which keeps a
// record of long runs next to the result artifacts.
func InitLogger(cfg *config.Config) (*zap.Logger, error) {
	return build(
		parseLevel(cfg.GetString("logging.level")),
		cfg.GetString("logging.format") == "json",
		cfg.GetString("logging.file"),
	)
}

// InitConsoleLogger initializes a console-friendly logger for the CLI tools.
func InitConsoleLogger(verbose bool, jsonFormat bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	return build(level, jsonFormat, "")
}
