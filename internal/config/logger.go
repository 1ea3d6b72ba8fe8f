package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggingConfig selects the console log level (none, normal or debug) and an
// optional JSON log file rotated by size.
type LoggingConfig struct {
	Level string `yaml:"level"`

	File       string `yaml:"file,omitempty"`
	MaxSize    int    `yaml:"max_size,omitempty"` // megabytes
	MaxBackups int    `yaml:"max_backups,omitempty"`
}

// Validate checks the level name
func (c LoggingConfig) Validate() error {
	switch c.Level {
	case "none", "normal", "debug":
	default:
		return fmt.Errorf("invalid logging level: %s (valid: none, normal, debug)", c.Level)
	}
	if c.MaxSize < 0 || c.MaxBackups < 0 {
		return fmt.Errorf("log rotation limits must not be negative")
	}
	return nil
}

// Prepare returns a console logger writing to stderr, so it never mixes with program output
func (c LoggingConfig) Prepare() (*zap.Logger, error) {
	return c.PrepareTo(zapcore.Lock(os.Stderr))
}

// PrepareTo returns a console logger writing to ws. When File is set every
// entry is also written there as JSON.
func (c LoggingConfig) PrepareTo(ws zapcore.WriteSyncer) (*zap.Logger, error) {
	var level zapcore.Level
	switch c.Level {
	case "none":
		return zap.NewNop(), nil
	case "normal":
		level = zapcore.InfoLevel
	case "debug":
		level = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("invalid logging level: %s", c.Level)
	}
	enabler := zap.NewAtomicLevelAt(level)

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	cores := []zapcore.Core{zapcore.NewCore(zapcore.NewConsoleEncoder(ec), ws, enabler)}

	if c.File != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSize,
			MaxBackups: c.MaxBackups,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), fileWriter, enabler))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
