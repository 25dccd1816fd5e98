package config

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/coastsim/internal/bmi"
)

const (
	DefaultRows      = 100
	DefaultCols      = 200
	DefaultSpacing   = 200.0
	DefaultAsymmetry = 0.5
	DefaultHighness  = 0.2
	DefaultHeight    = 2.0
	DefaultPeriod    = 7.0
	DefaultSteps     = 3000
	DefaultSeed      = 1
)

type Config struct {
	Coastline CoastlineConfig `yaml:"coastline"`
	Waves     WavesConfig     `yaml:"waves"`
	Run       RunConfig       `yaml:"run"`
}

type CoastlineConfig struct {
	Rows         int     `yaml:"rows"`
	Cols         int     `yaml:"cols"`
	Spacing      float64 `yaml:"spacing"`
	ShelfSlope   float64 `yaml:"shelf_slope"`
	ClosureDepth float64 `yaml:"closure_depth"`
	Transport    float64 `yaml:"transport"`
}

type WavesConfig struct {
	Asymmetry float64 `yaml:"asymmetry"`
	Highness  float64 `yaml:"highness"`
	Height    float64 `yaml:"height"`
	Period    float64 `yaml:"period"`
	Seed      int64   `yaml:"seed"`
}

type RunConfig struct {
	Steps int `yaml:"steps"`
}

func DefaultConfig() *Config {
	return &Config{
		Coastline: CoastlineConfig{
			Rows:    DefaultRows,
			Cols:    DefaultCols,
			Spacing: DefaultSpacing,
		},
		Waves: WavesConfig{
			Asymmetry: DefaultAsymmetry,
			Highness:  DefaultHighness,
			Height:    DefaultHeight,
			Period:    DefaultPeriod,
			Seed:      DefaultSeed,
		},
		Run: RunConfig{
			Steps: DefaultSteps,
		},
	}
}

// Load reads a run configuration, rejecting unknown keys and out-of-range
// values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, &bmi.ConfigError{Option: path, Reason: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
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

func (c *Config) Validate() error {
	if c.Coastline.Rows <= 0 {
		return &bmi.ConfigError{Option: "coastline.rows", Reason: "must be positive"}
	}
	if c.Coastline.Cols <= 0 {
		return &bmi.ConfigError{Option: "coastline.cols", Reason: "must be positive"}
	}
	if c.Coastline.Spacing <= 0 {
		return &bmi.ConfigError{Option: "coastline.spacing", Reason: "must be positive"}
	}
	if c.Waves.Asymmetry < -1 || c.Waves.Asymmetry > 1 {
		return &bmi.ConfigError{Option: "waves.asymmetry", Reason: "must be in [-1,1]"}
	}
	if c.Waves.Highness < 0 || c.Waves.Highness > 1 {
		return &bmi.ConfigError{Option: "waves.highness", Reason: "must be in [0,1]"}
	}
	if c.Waves.Height <= 0 {
		return &bmi.ConfigError{Option: "waves.height", Reason: "must be positive"}
	}
	if c.Waves.Period <= 0 {
		return &bmi.ConfigError{Option: "waves.period", Reason: "must be positive"}
	}
	if c.Run.Steps <= 0 {
		return &bmi.ConfigError{Option: "run.steps", Reason: "must be positive"}
	}
	return nil
}

// CoastlineOptions maps the coastline section onto engine options. Zero-value
// optional fields are omitted so engine defaults apply.
func (c *Config) CoastlineOptions() bmi.Config {
	opts := bmi.Config{
		"number_of_rows": float64(c.Coastline.Rows),
		"number_of_cols": float64(c.Coastline.Cols),
		"grid_spacing":   c.Coastline.Spacing,
	}
	if c.Coastline.ShelfSlope > 0 {
		opts["shelf_slope"] = c.Coastline.ShelfSlope
	}
	if c.Coastline.ClosureDepth > 0 {
		opts["closure_depth"] = c.Coastline.ClosureDepth
	}
	if c.Coastline.Transport > 0 {
		opts["transport_coefficient"] = c.Coastline.Transport
	}
	return opts
}

// WavesOptions maps the waves section onto engine options.
func (c *Config) WavesOptions() bmi.Config {
	return bmi.Config{
		"angle_asymmetry":       c.Waves.Asymmetry,
		"angle_highness_factor": c.Waves.Highness,
		"height":                c.Waves.Height,
		"period":                c.Waves.Period,
		"seed":                  float64(c.Waves.Seed),
	}
}
