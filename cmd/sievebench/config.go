package main

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/0x19f/sievebench"
)

// Config validation errors
var (
	ErrMissingWordFile   = errors.New("word list path cannot be empty")
	ErrMissingQueryFile  = errors.New("query list path cannot be empty")
	ErrInvalidTargetRate = errors.New("target_fp_rate must be between 0 and 1 exclusive")
	ErrInvalidWorkers    = errors.New("workers cannot be negative")
	ErrInvalidLogFormat  = errors.New("log_format must be 'json' or 'console'")
)

// Config holds the benchmark's runtime configuration. Values are layered
// as defaults < SIEVEBENCH_* environment (optionally from a .env file)
// < flags.
type Config struct {
	WordFile     string  `envconfig:"WORD_FILE"`
	QueryFile    string  `envconfig:"QUERY_FILE"`
	TargetFPRate float64 `envconfig:"TARGET_FP_RATE" default:"0.01"`
	Workers      int     `envconfig:"WORKERS" default:"0"`
	HashFamily   string  `envconfig:"HASH_FAMILY" default:"ap"`
	MetricsAddr  string  `envconfig:"METRICS_ADDR"`
	LogFormat    string  `envconfig:"LOG_FORMAT" default:"console"`
	LogLevel     string  `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig reads the environment layer. A .env file is picked up when
// present but is not required.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("sievebench", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidateConfig validates the configuration and returns an error if
// invalid.
func ValidateConfig(cfg *Config) error {
	if cfg.WordFile == "" {
		return ErrMissingWordFile
	}
	if cfg.QueryFile == "" {
		return ErrMissingQueryFile
	}
	if cfg.TargetFPRate <= 0 || cfg.TargetFPRate >= 1 {
		return ErrInvalidTargetRate
	}
	if cfg.Workers < 0 {
		return ErrInvalidWorkers
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return ErrInvalidLogFormat
	}
	if _, err := sievebench.FamilyByName(cfg.HashFamily); err != nil {
		return err
	}
	return nil
}
