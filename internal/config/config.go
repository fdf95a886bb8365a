package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Zuo-Peng/ris/internal/analysis"
	"github.com/Zuo-Peng/ris/internal/metric"
	"github.com/Zuo-Peng/ris/internal/score"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type Config struct {
	LogLevel               string         `toml:"log_level"`
	Timezone               string         `toml:"timezone"`
	MinMessages            int            `toml:"min_messages"`
	SessionGapMinutes      int            `toml:"session_gap_minutes"`
	ResponseHorizonMinutes int            `toml:"response_horizon_minutes"`
	ExportPath             string         `toml:"export_path"`
	Server                 ServerConfig   `toml:"server"`
	Weights                score.Weights  `toml:"weights"`
	Lexicon                metric.Lexicon `toml:"lexicon"`

	// Path is the config file that was read, empty when none exists.
	Path string `toml:"-"`
}

// env holds the RIS_* overrides.
type env struct {
	Config     string `envconfig:"CONFIG"`
	LogLevel   string `envconfig:"LOG_LEVEL"`
	Timezone   string `envconfig:"TIMEZONE"`
	Addr       string `envconfig:"ADDR"`
	ExportPath string `envconfig:"EXPORT_PATH"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return load(home)
}

func load(home string) (*Config, error) {
	var e env
	if err := envconfig.Process("RIS", &e); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	cfg := &Config{
		LogLevel:               "info",
		Timezone:               "UTC",
		MinMessages:            5,
		SessionGapMinutes:      int(metric.DefaultSessionGap / time.Minute),
		ResponseHorizonMinutes: int(metric.DefaultResponseHorizon / time.Minute),
		ExportPath:             filepath.Join(home, ".config", "ris", "ris.db"),
		Server:                 ServerConfig{Addr: ":8080"},
		Weights:                score.DefaultWeights(),
		Lexicon:                metric.DefaultLexicon(),
	}

	cfgPath := filepath.Join(home, ".config", "ris", "config.toml")
	explicit := e.Config != ""
	if explicit {
		cfgPath = expandHome(e.Config, home)
	}
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
		cfg.Path = cfgPath
	} else if explicit {
		return nil, fmt.Errorf("config %s: %w", cfgPath, err)
	}

	if e.LogLevel != "" {
		cfg.LogLevel = e.LogLevel
	}
	if e.Timezone != "" {
		cfg.Timezone = e.Timezone
	}
	if e.Addr != "" {
		cfg.Server.Addr = e.Addr
	}
	if e.ExportPath != "" {
		cfg.ExportPath = e.ExportPath
	}

	// expand ~ in paths
	cfg.ExportPath = expandHome(cfg.ExportPath, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate reports every setting that would make analysis meaningless.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if c.MinMessages < 1 {
		errs = append(errs, fmt.Errorf("min_messages must be at least 1, got %d", c.MinMessages))
	}
	if c.SessionGapMinutes <= 0 {
		errs = append(errs, fmt.Errorf("session_gap_minutes must be positive, got %d", c.SessionGapMinutes))
	}
	if c.ResponseHorizonMinutes <= 0 {
		errs = append(errs, fmt.Errorf("response_horizon_minutes must be positive, got %d", c.ResponseHorizonMinutes))
	}
	for _, w := range []struct {
		name string
		v    float64
	}{
		{"sentiment", c.Weights.Sentiment},
		{"keywords", c.Weights.Keywords},
		{"initiation", c.Weights.Initiation},
		{"questions", c.Weights.Questions},
		{"velocity", c.Weights.Velocity},
		{"effort", c.Weights.Effort},
	} {
		if w.v < 0 {
			errs = append(errs, fmt.Errorf("weights.%s must not be negative, got %v", w.name, w.v))
		}
	}
	return errors.Join(errs...)
}

// Warnings lists settings that are allowed but probably unintended.
func (c *Config) Warnings() []string {
	var out []string
	if sum := c.Weights.Sum(); math.Abs(sum-1) > 1e-6 {
		out = append(out, fmt.Sprintf("weights sum to %.3f, not 1; final scores will not read as percentages", sum))
	}
	if len(c.Lexicon.Sentiment) == 0 {
		out = append(out, "lexicon.sentiment is empty; sentiment will always be 0.5")
	}
	if len(c.Lexicon.Keywords) == 0 {
		out = append(out, "lexicon.keywords is empty; keywords will always be 0")
	}
	return out
}

func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// AnalysisOptions turns the config into analyzer options. Call Validate
// first; an unknown timezone is still reported here.
func (c *Config) AnalysisOptions() (analysis.Options, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return analysis.Options{}, fmt.Errorf("timezone: %w", err)
	}
	return analysis.Options{
		Location:        loc,
		Lexicon:         c.Lexicon,
		Weights:         c.Weights,
		MinMessages:     c.MinMessages,
		SessionGap:      time.Duration(c.SessionGapMinutes) * time.Minute,
		ResponseHorizon: time.Duration(c.ResponseHorizonMinutes) * time.Minute,
	}, nil
}
