package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all run settings, populated from environment variables.
type Config struct {
	InputPath      string
	InputDelimiter rune
	OutputDir      string
	LogLevel       string
	LogFormat      string
	RunTimeout     time.Duration

	ExportTables   bool
	ParallelRender bool

	// SpiralFrameDelay is the per-frame delay of the climate spiral GIF.
	SpiralFrameDelay time.Duration

	// MetricsTextfile, when set, receives the Prometheus text exposition
	// after the run.
	MetricsTextfile string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	delimiter, err := parseDelimiter(sharedcfg.EnvOrDefault("INPUT_DELIMITER", ","))
	if err != nil {
		return nil, err
	}

	runTimeout, err := parsePositiveDuration("RUN_TIMEOUT", "5m")
	if err != nil {
		return nil, err
	}

	frameDelay, err := parsePositiveDuration("SPIRAL_FRAME_DELAY", "100ms")
	if err != nil {
		return nil, err
	}
	if frameDelay < 10*time.Millisecond {
		return nil, errors.New("invalid SPIRAL_FRAME_DELAY: GIF frames need at least 10ms")
	}

	exportTables, err := parseBool("EXPORT_TABLES", "true")
	if err != nil {
		return nil, err
	}

	parallel, err := parseBool("RENDER_PARALLEL", "true")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		InputPath:        sharedcfg.EnvOrDefault("INPUT_PATH", "data/global_temperature_anomaly.csv"),
		InputDelimiter:   delimiter,
		OutputDir:        sharedcfg.EnvOrDefault("OUTPUT_DIR", "output"),
		LogLevel:         sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		RunTimeout:       runTimeout,
		ExportTables:     exportTables,
		ParallelRender:   parallel,
		SpiralFrameDelay: frameDelay,
		MetricsTextfile:  sharedcfg.EnvOrDefault("METRICS_TEXTFILE", ""),
	}

	if cfg.InputPath == "" {
		return nil, errors.New("INPUT_PATH is required")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("OUTPUT_DIR is required")
	}
	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: want debug, info, warn or error", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want json or text", cfg.LogFormat)
	}

	return cfg, nil
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// parseDelimiter accepts a single character or the escape `\t`.
func parseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("invalid INPUT_DELIMITER %q: want a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid INPUT_DELIMITER %q", s)
	}
	return r, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBool(key, def string) (bool, error) {
	b, err := strconv.ParseBool(sharedcfg.EnvOrDefault(key, def))
	if err != nil {
		return false, fmt.Errorf("invalid %s", key)
	}
	return b, nil
}
