package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDuration = 1.0
	DefaultAbstol   = 1e-3
	DefaultReltol   = 1e-6
	DefaultMu       = 1.0
	DefaultSigma    = 0.5
	DefaultTheta    = 1.0
	DefaultBirth    = 10.0
	DefaultDeath    = 0.1
	DefaultSeed     = 1
)

type Config struct {
	Model       string      `yaml:"model"`
	Algorithm   string      `yaml:"algorithm"`
	Dt          float64     `yaml:"dt"` // 0 means estimate automatically
	Duration    float64     `yaml:"duration"`
	Seed        uint64      `yaml:"seed"`
	Adaptive    bool        `yaml:"adaptive"`
	Abstol      float64     `yaml:"abstol"`
	Reltol      float64     `yaml:"reltol"`
	SaveEvery   int         `yaml:"save_every"`
	InitState   []float64   `yaml:"init_state"`
	ModelParams ModelConfig `yaml:"model_params"`
}

type ModelConfig struct {
	Mu    float64 `yaml:"mu"`
	Sigma float64 `yaml:"sigma"`
	A     float64 `yaml:"a"`
	B     float64 `yaml:"b"`
	Theta float64 `yaml:"theta"`
	Mean  float64 `yaml:"mean"`
	Birth float64 `yaml:"birth"`
	Death float64 `yaml:"death"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:     "gbm",
		Algorithm: "SRIW1Optimized",
		Duration:  DefaultDuration,
		Seed:      DefaultSeed,
		Abstol:    DefaultAbstol,
		Reltol:    DefaultReltol,
		SaveEvery: 1,
		ModelParams: ModelConfig{
			Mu:    DefaultMu,
			Sigma: DefaultSigma,
			A:     1.0,
			B:     0.25,
			Theta: DefaultTheta,
			Birth: DefaultBirth,
			Death: DefaultDeath,
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

// GetInitState returns the configured initial state, falling back to a
// sensible starting point for the chosen model.
func (c *Config) GetInitState() []float64 {
	if len(c.InitState) > 0 {
		s := make([]float64, len(c.InitState))
		copy(s, c.InitState)
		return s
	}
	switch c.Model {
	case "birth_death":
		if c.ModelParams.Death > 0 {
			return []float64{c.ModelParams.Birth / c.ModelParams.Death}
		}
		return []float64{c.ModelParams.Birth}
	case "ou":
		return []float64{c.ModelParams.Mean + 1.0}
	case "additive":
		return []float64{0.0}
	default:
		return []float64{0.5}
	}
}
