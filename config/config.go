// Package config loads and validates session configuration from YAML or JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Aliyansayz/candlestick-realtime/chart"
)

// Config represents the complete session configuration.
type Config struct {
	Playback   PlaybackConfig   `json:"playback" yaml:"playback"`
	Indicators IndicatorsConfig `json:"indicators" yaml:"indicators"`
	View       ViewConfig       `json:"view" yaml:"view"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
}

// PlaybackConfig contains tick cadence and synthetic-walk parameters.
type PlaybackConfig struct {
	Interval   string  `json:"interval" yaml:"interval"` // e.g. "500ms", "1s"
	Seed       int64   `json:"seed" yaml:"seed"`
	StartPrice float64 `json:"start_price" yaml:"start_price"`
	NoiseSigma float64 `json:"noise_sigma" yaml:"noise_sigma"`
	History    int     `json:"history" yaml:"history"`
}

// ParseInterval converts the interval string to a time.Duration.
func (p PlaybackConfig) ParseInterval() (time.Duration, error) {
	if p.Interval == "" {
		return 0, nil
	}
	return time.ParseDuration(p.Interval)
}

// IndicatorConfig contains one indicator's tunables. Multiplier is unused by
// EMA and RSI.
type IndicatorConfig struct {
	Period     int     `json:"period" yaml:"period"`
	Multiplier float64 `json:"multiplier,omitempty" yaml:"multiplier,omitempty"`
	Enabled    bool    `json:"enabled" yaml:"enabled"`
}

// IndicatorsConfig contains the per-indicator parameters.
type IndicatorsConfig struct {
	EMA        IndicatorConfig `json:"ema" yaml:"ema"`
	RSI        IndicatorConfig `json:"rsi" yaml:"rsi"`
	Supertrend IndicatorConfig `json:"supertrend" yaml:"supertrend"`
	ATRBands   IndicatorConfig `json:"atr_bands" yaml:"atr_bands"`
}

// ViewConfig contains the visible-window parameters.
type ViewConfig struct {
	WindowSize int     `json:"window_size" yaml:"window_size"`
	ZoomBuffer float64 `json:"zoom_buffer" yaml:"zoom_buffer"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	CandlesFile string `json:"candles_file,omitempty" yaml:"candles_file,omitempty"`
	RunsFile    string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON based on content).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.Playback.ParseInterval(); err != nil {
		return fmt.Errorf("playback.interval: %w", err)
	}
	if c.Playback.StartPrice < 0 {
		return fmt.Errorf("playback.start_price must not be negative")
	}
	if c.Playback.NoiseSigma < 0 {
		return fmt.Errorf("playback.noise_sigma must not be negative")
	}
	if c.Playback.History < 0 {
		return fmt.Errorf("playback.history must not be negative")
	}

	for name, ic := range map[string]IndicatorConfig{
		"ema":        c.Indicators.EMA,
		"rsi":        c.Indicators.RSI,
		"supertrend": c.Indicators.Supertrend,
		"atr_bands":  c.Indicators.ATRBands,
	} {
		if ic.Period < 0 {
			return fmt.Errorf("indicators.%s.period must not be negative", name)
		}
		if ic.Multiplier < 0 {
			return fmt.Errorf("indicators.%s.multiplier must not be negative", name)
		}
	}

	if c.View.WindowSize != 0 && c.View.WindowSize < chart.MinWindowSize {
		return fmt.Errorf("view.window_size must be at least %d", chart.MinWindowSize)
	}
	if c.View.ZoomBuffer != 0 &&
		(c.View.ZoomBuffer < chart.MinZoomBuffer || c.View.ZoomBuffer > chart.MaxZoomBuffer) {
		return fmt.Errorf("view.zoom_buffer must be within [%g, %g]",
			chart.MinZoomBuffer, chart.MaxZoomBuffer)
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.CandlesFile == "" || c.Journal.RunsFile == "" {
			return fmt.Errorf("journal candles_file and runs_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Playback: PlaybackConfig{
			Interval:   "500ms",
			Seed:       1,
			StartPrice: 100,
			NoiseSigma: 0.5,
			History:    30,
		},
		Indicators: IndicatorsConfig{
			EMA:        IndicatorConfig{Period: 14, Enabled: true},
			RSI:        IndicatorConfig{Period: 14, Enabled: true},
			Supertrend: IndicatorConfig{Period: 10, Multiplier: 3, Enabled: true},
			ATRBands:   IndicatorConfig{Period: 20, Multiplier: 2, Enabled: true},
		},
		View: ViewConfig{
			WindowSize: chart.DefaultWindowSize,
			ZoomBuffer: chart.DefaultZoomBuffer,
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}
