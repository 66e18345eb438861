package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	base  *zap.Logger
	sugar *zap.SugaredLogger
)

// Init initializes the process logger. Verbose enables debug output; when
// logDir is set, logs are written to logDir/toolgate.log instead of stderr.
func Init(verbose bool, logDir string) {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0755); err == nil {
			cfg.OutputPaths = []string{filepath.Join(logDir, "toolgate.log")}
		}
	}

	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}

	Set(l)
}

// Set replaces the process logger
func Set(l *zap.Logger) {
	base = l
	sugar = l.Sugar()
	zap.ReplaceGlobals(l)
}

// Close flushes buffered log entries
func Close() {
	if base != nil {
		_ = base.Sync()
	}
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	if sugar != nil {
		sugar.Debugw(msg, args...)
	}
}

// Info logs an info message
func Info(msg string, args ...any) {
	if sugar != nil {
		sugar.Infow(msg, args...)
	}
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	if sugar != nil {
		sugar.Warnw(msg, args...)
	}
}

// Error logs an error message
func Error(msg string, args ...any) {
	if sugar != nil {
		sugar.Errorw(msg, args...)
	}
}
