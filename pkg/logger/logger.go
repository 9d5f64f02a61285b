package logger

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	Logger *zap.Logger
)

// InitLogger initializes Zap logger with configuration
func InitLogger(cfg *config.Config) error {
	// Configure log level based on environment
	var zapLevel zapcore.Level
	switch cfg.App.Environment {
	case "production":
		zapLevel = zapcore.InfoLevel
	default:
		zapLevel = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	infoWriter := zapcore.AddSync(os.Stdout)
	errorWriter := zapcore.AddSync(os.Stderr)

	// Optional file sinks, enabled by LOGS_PATH
	if logsPath := os.Getenv("LOGS_PATH"); logsPath != "" {
		if err := os.MkdirAll(logsPath, 0755); err != nil {
			return err
		}

		infoFile, err := os.OpenFile(filepath.Join(logsPath, "info.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}

		errorFile, err := os.OpenFile(filepath.Join(logsPath, "error.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			infoFile.Close()
			return err
		}

		infoWriter = zapcore.NewMultiWriteSyncer(infoWriter, zapcore.AddSync(infoFile))
		errorWriter = zapcore.NewMultiWriteSyncer(errorWriter, zapcore.AddSync(errorFile))
	}

	infoCore := zapcore.NewCore(encoder, infoWriter, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapLevel && l < zapcore.ErrorLevel
	}))
	errorCore := zapcore.NewCore(encoder, errorWriter, zapcore.ErrorLevel)

	SetLogger(zap.New(zapcore.NewTee(infoCore, errorCore), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))

	return nil
}

// SetLogger replaces the process-wide logger. Tests use it with zap.NewNop or an observer core.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	Logger = l
	mu.Unlock()

	resetOptimizedLogger()
}

// GetLogger returns the structured logger, or a no-op logger before InitLogger runs.
func GetLogger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()

	if Logger == nil {
		return zap.NewNop()
	}
	return Logger
}

// Sync syncs all logs (call this before application exits)
func Sync() {
	_ = GetLogger().Sync()
}

// LogPanic logs a recovered panic with its stack
func LogPanic(recovered interface{}) {
	GetLogger().Error("Panic recovered",
		zap.Any("panic", recovered),
		zap.Stack("stack"),
	)
}

// LogAuth logs authentication events
func LogAuth(userID, action string, success bool, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.String("user_id", userID),
		zap.String("action", action),
		zap.Bool("success", success),
	}, fields...)

	if success {
		GetLogger().Info("Authentication success", allFields...)
	} else {
		GetLogger().Warn("Authentication failure", allFields...)
	}
}
