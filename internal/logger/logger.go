// Package logger provides the process-wide structured logger built on zap.
package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log modes accepted by Init.
const (
	ModeDebug      = "debug"
	ModeProduction = "production"
)

var (
	mu  sync.RWMutex
	log = zap.NewNop()
)

// Init configures the global logger. "debug" selects a human readable
// development encoder, "production" or an empty mode the JSON encoder.
func Init(mode string) error {
	var cfg zap.Config
	switch mode {
	case ModeDebug:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case ModeProduction, "":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return fmt.Errorf("unknown log mode %q", mode)
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	mu.Lock()
	log = l
	mu.Unlock()
	return nil
}

// InitTestLogger installs a no-op logger so tests stay quiet.
func InitTestLogger() {
	mu.Lock()
	log = zap.NewNop()
	mu.Unlock()
}

// Set replaces the global logger. Mostly useful for tests with observers.
func Set(l *zap.Logger) {
	mu.Lock()
	log = l.WithOptions(zap.AddCallerSkip(1))
	mu.Unlock()
}

func current() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Debug(msg string, fields ...zap.Field) { current().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { current().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { current().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { current().Error(msg, fields...) }

// Sync flushes buffered log entries.
func Sync() {
	_ = current().Sync()
}
