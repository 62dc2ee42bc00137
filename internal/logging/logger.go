// Package logging builds the zap logger used across the benchmark and
// mirrors every log entry into Prometheus counters.
package logging

import (
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// LogEntriesTotal counts log entries by level.
	LogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sievebench_log_entries_total",
			Help: "Total number of log entries by level",
		},
		[]string{"level"},
	)

	// LogErrorsTotal counts error-level log entries specifically.
	LogErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sievebench_log_errors_total",
			Help: "Total number of error log entries",
		},
	)
)

// Config holds logger options.
type Config struct {
	// Format is the output format, "json" or "console".
	Format string
	// Level is the minimum level: "debug", "info", "warn", or "error".
	Level string
	// Output is where entries are written; defaults to os.Stdout.
	Output zapcore.WriteSyncer
}

// DefaultConfig returns console output at info level.
func DefaultConfig() Config {
	return Config{
		Format: "console",
		Level:  "info",
		Output: os.Stdout,
	}
}

// NewLogger creates a zap logger from cfg. Every entry it writes also
// increments the Prometheus log counters.
func NewLogger(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	var encoder zapcore.Encoder
	if strings.ToLower(cfg.Format) == "console" {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := &metricsHookCore{Core: zapcore.NewCore(encoder, output, level)}
	return zap.New(core), nil
}

// DiscardLogger returns a logger that drops all output, for tests.
func DiscardLogger() *zap.Logger {
	return zap.NewNop()
}

// metricsHookCore wraps a zapcore.Core to count written entries.
type metricsHookCore struct {
	zapcore.Core
}

func (c *metricsHookCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *metricsHookCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	LogEntriesTotal.WithLabelValues(entry.Level.String()).Inc()
	if entry.Level >= zapcore.ErrorLevel {
		LogErrorsTotal.Inc()
	}
	return c.Core.Write(entry, fields)
}

func (c *metricsHookCore) With(fields []zapcore.Field) zapcore.Core {
	return &metricsHookCore{Core: c.Core.With(fields)}
}
