package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/chaoscope/internal/pipeline"
)

const (
	DefaultLength     = 5000
	DefaultDt         = 1.0
	DefaultMaxLag     = 50
	DefaultEmbedDim   = 3
	DefaultMinDim     = 1
	DefaultMaxDim     = 5
	DefaultRadius     = 0.3
	DefaultTheiler    = 10
	DefaultMaxSteps   = 15
	DefaultFitLo      = 1
	DefaultFitHi      = 8
	DefaultSampleSize = 300
	DefaultSeed       = 42
	DefaultHomology   = 1
	DefaultMaxScale   = 1.0
)

type Config struct {
	Source   string         `yaml:"source"`
	Length   int            `yaml:"length"`
	Dt       float64        `yaml:"dt"`
	Seed     int64          `yaml:"seed"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

type AnalysisConfig struct {
	MaxLag      int     `yaml:"max_lag"`
	Bins        int     `yaml:"bins"`
	EmbedDim    int     `yaml:"embed_dim"`
	MinDim      int     `yaml:"min_dim"`
	MaxDim      int     `yaml:"max_dim"`
	Radius      float64 `yaml:"radius"`
	Theiler     int     `yaml:"theiler"`
	MaxSteps    int     `yaml:"max_steps"`
	FitLo       int     `yaml:"fit_lo"`
	FitHi       int     `yaml:"fit_hi"`
	SampleSize  int     `yaml:"sample_size"`
	HomologyDim int     `yaml:"max_dimension"`
	MaxScale    float64 `yaml:"max_scale"`
}

func DefaultConfig() *Config {
	return &Config{
		Source: "logistic",
		Length: DefaultLength,
		Dt:     DefaultDt,
		Seed:   DefaultSeed,
		Analysis: AnalysisConfig{
			MaxLag:      DefaultMaxLag,
			EmbedDim:    DefaultEmbedDim,
			MinDim:      DefaultMinDim,
			MaxDim:      DefaultMaxDim,
			Radius:      DefaultRadius,
			Theiler:     DefaultTheiler,
			MaxSteps:    DefaultMaxSteps,
			FitLo:       DefaultFitLo,
			FitHi:       DefaultFitHi,
			SampleSize:  DefaultSampleSize,
			HomologyDim: DefaultHomology,
			MaxScale:    DefaultMaxScale,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToPipeline flattens the file-facing config into the explicit parameter
// struct the pipeline takes by value.
func (c *Config) ToPipeline() pipeline.Config {
	a := c.Analysis
	return pipeline.Config{
		MaxLag:      a.MaxLag,
		Bins:        a.Bins,
		EmbedDim:    a.EmbedDim,
		MinDim:      a.MinDim,
		MaxDim:      a.MaxDim,
		Radius:      a.Radius,
		Theiler:     a.Theiler,
		MaxSteps:    a.MaxSteps,
		FitLo:       a.FitLo,
		FitHi:       a.FitHi,
		SampleSize:  a.SampleSize,
		Seed:        c.Seed,
		HomologyDim: a.HomologyDim,
		MaxScale:    a.MaxScale,
	}
}
