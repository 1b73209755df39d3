// Package config loads training and serving settings from YAML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"bankloan/internal/metrics"
	"bankloan/internal/pipeline"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Data     Data            `yaml:"data"`
	Split    Split           `yaml:"split"`
	Params   pipeline.Params `yaml:"params"`
	Models   Models          `yaml:"models"`
	Metrics  metrics.Options `yaml:"metrics"`
	Log      Log             `yaml:"log"`
	Server   Server          `yaml:"server"`
	Analyzer Analyzer        `yaml:"analyzer"`
}

type Data struct {
	Path          string   `yaml:"path" validate:"required"`
	Sheet         string   `yaml:"sheet"`
	LabelColumn   string   `yaml:"label_column" validate:"required"`
	PositiveLabel string   `yaml:"positive_label"`
	DropColumns   []string `yaml:"drop_columns"`
	// AllowMissingDrops accepts tables that already lack the drop columns.
	AllowMissingDrops bool `yaml:"allow_missing_drops"`
}

type Split struct {
	TestRatio float64 `yaml:"test_ratio" validate:"gt=0,lt=1"`
	Stratify  bool    `yaml:"stratify"`
}

type Models struct {
	Dir        string   `yaml:"dir" validate:"required"`
	Algorithms []string `yaml:"algorithms" validate:"min=1,dive,required"`
}

type Log struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file"`
}

type Server struct {
	Port      string `yaml:"port" validate:"required,numeric"`
	APIKey    string `yaml:"api_key"`
	ModelPath string `yaml:"model_path"`
	// Threshold is the approval probability cut-off.
	Threshold float64 `yaml:"threshold" validate:"gt=0,lt=1"`
}

type Analyzer struct {
	Algorithm string `yaml:"algorithm" validate:"required"`
	Points    int    `yaml:"points" validate:"gte=2"`
	MinSize   int    `yaml:"min_size" validate:"gte=1"`
	Log       bool   `yaml:"log_scale"`
	CSV       string `yaml:"csv" validate:"required"`
	PNG       string `yaml:"png" validate:"required"`
}

func Default() Config {
	return Config{
		Data: Data{
			Path:        "data/bankloan.csv",
			LabelColumn: "Personal Loan",
			DropColumns: []string{"ID", "ZIP Code"},
		},
		Split:  Split{TestRatio: 0.2},
		Params: pipeline.DefaultParams(),
		Models: Models{
			Dir:        "models",
			Algorithms: []string{"logistic-regression", "k-nearest-neighbors", "random-forest", "xgboost"},
		},
		Metrics: metrics.Options{Table: metrics.DefaultTable},
		Log:     Log{Level: "info"},
		Server:  Server{Port: "8080", Threshold: 0.5},
		Analyzer: Analyzer{
			Algorithm: "random-forest",
			Points:    8,
			MinSize:   10,
			CSV:       "data/learning_curve.csv",
			PNG:       "data/learning_curve.png",
		},
	}
}

// Load reads path over the defaults, applies env overrides and validates.
// An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("METRICS_DSN"); v != "" {
		c.Metrics.DSN = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("API_KEY"); v != "" {
		c.Server.APIKey = v
	}
	if v := os.Getenv("MODEL_PATH"); v != "" {
		c.Server.ModelPath = v
	}
	if v := os.Getenv("SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: SEED=%q", ErrInvalid, v)
		}
		c.Params.Seed = seed
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for _, id := range append(append([]string{}, c.Models.Algorithms...), c.Analyzer.Algorithm) {
		if _, err := pipeline.ParseAlgorithm(id); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	return nil
}
