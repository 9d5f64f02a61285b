package logger

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// PerformanceConfig gates builder-based logging before fields are collected.
type PerformanceConfig struct {
	MinLogLevel     zapcore.Level `json:"min_log_level"`
	MaxLogPerSecond int           `json:"max_log_per_second"`
	EnableRateLimit bool          `json:"enable_rate_limit"`
}

func DefaultPerformanceConfig() PerformanceConfig {
	return PerformanceConfig{
		MinLogLevel:     zapcore.DebugLevel,
		MaxLogPerSecond: 1000,
		EnableRateLimit: false,
	}
}

// OptimizedLogger wraps a zap logger with an early level check and an optional rate cap.
type OptimizedLogger struct {
	config      PerformanceConfig
	logger      *zap.Logger
	rateLimiter *RateLimiter
}

// RateLimiter caps the number of log lines per second
type RateLimiter struct {
	maxLogs   int
	current   int
	lastReset time.Time
	mu        sync.Mutex
}

func NewRateLimiter(maxLogs int) *RateLimiter {
	return &RateLimiter{
		maxLogs:   maxLogs,
		lastReset: time.Now(),
	}
}

func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastReset) >= time.Second {
		rl.current = 0
		rl.lastReset = now
	}

	if rl.current >= rl.maxLogs {
		return false
	}

	rl.current++
	return true
}

func NewOptimizedLogger(base *zap.Logger, config PerformanceConfig) *OptimizedLogger {
	return &OptimizedLogger{
		config:      config,
		logger:      base,
		rateLimiter: NewRateLimiter(config.MaxLogPerSecond),
	}
}

// ShouldLog reports whether a record at level would be written
func (ol *OptimizedLogger) ShouldLog(level zapcore.Level) bool {
	if level < ol.config.MinLogLevel {
		return false
	}
	if !ol.logger.Core().Enabled(level) {
		return false
	}
	if ol.config.EnableRateLimit && !ol.rateLimiter.Allow() {
		return false
	}
	return true
}

var (
	optimizedMu     sync.Mutex
	optimizedLogger *OptimizedLogger
)

// GetOptimizedLogger returns the shared gated logger, built lazily over GetLogger.
func GetOptimizedLogger() *OptimizedLogger {
	optimizedMu.Lock()
	defer optimizedMu.Unlock()

	if optimizedLogger == nil {
		optimizedLogger = NewOptimizedLogger(GetLogger(), DefaultPerformanceConfig())
	}
	return optimizedLogger
}

func resetOptimizedLogger() {
	optimizedMu.Lock()
	optimizedLogger = nil
	optimizedMu.Unlock()
}
