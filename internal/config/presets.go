package config

var Presets = map[string]map[string]*Config{
	"gbm": {
		"calm": {
			Model: "gbm", Algorithm: "SRIW1Optimized", Duration: 1.0, Adaptive: true,
			Abstol: 1e-3, Reltol: 1e-6, SaveEvery: 1, Seed: DefaultSeed,
			InitState:   []float64{0.5},
			ModelParams: ModelConfig{Mu: 1.0, Sigma: 0.25},
		},
		"volatile": {
			Model: "gbm", Algorithm: "SRIW1Optimized", Duration: 1.0, Adaptive: true,
			Abstol: 1e-4, Reltol: 1e-6, SaveEvery: 1, Seed: DefaultSeed,
			InitState:   []float64{0.5},
			ModelParams: ModelConfig{Mu: 0.5, Sigma: 1.5},
		},
		"euler": {
			Model: "gbm", Algorithm: "EM", Dt: 0.001, Duration: 1.0,
			SaveEvery: 10, Seed: DefaultSeed,
			InitState:   []float64{0.5},
			ModelParams: ModelConfig{Mu: 1.0, Sigma: 0.5},
		},
	},
	"additive": {
		"drift": {
			Model: "additive", Algorithm: "SRA1Optimized", Duration: 2.0, Adaptive: true,
			Abstol: 1e-4, Reltol: 1e-6, SaveEvery: 1, Seed: DefaultSeed,
			InitState:   []float64{0.0},
			ModelParams: ModelConfig{A: 1.0, B: 0.25},
		},
		"noisy": {
			Model: "additive", Algorithm: "SRA1Optimized", Dt: 0.01, Duration: 2.0,
			SaveEvery: 1, Seed: DefaultSeed,
			InitState:   []float64{0.0},
			ModelParams: ModelConfig{A: 0.2, B: 1.0},
		},
	},
	"ou": {
		"reverting": {
			Model: "ou", Algorithm: "SRA1Optimized", Duration: 5.0, Adaptive: true,
			Abstol: 1e-3, Reltol: 1e-6, SaveEvery: 1, Seed: DefaultSeed,
			InitState:   []float64{2.0},
			ModelParams: ModelConfig{Theta: 1.0, Mean: 0.0, Sigma: 0.3},
		},
		"stiff": {
			Model: "ou", Algorithm: "SRA1Optimized", Duration: 1.0, Adaptive: true,
			Abstol: 1e-4, Reltol: 1e-7, SaveEvery: 1, Seed: DefaultSeed,
			InitState:   []float64{1.0},
			ModelParams: ModelConfig{Theta: 25.0, Mean: 0.0, Sigma: 0.5},
		},
	},
	"birth_death": {
		"equilibrium": {
			Model: "birth_death", Algorithm: "TauLeaping", Dt: 0.01, Duration: 10.0,
			SaveEvery: 10, Seed: DefaultSeed,
			InitState:   []float64{100},
			ModelParams: ModelConfig{Birth: 50, Death: 0.5},
		},
		"extinction": {
			Model: "birth_death", Algorithm: "TauLeaping", Dt: 0.005, Duration: 20.0,
			SaveEvery: 20, Seed: DefaultSeed,
			InitState:   []float64{20},
			ModelParams: ModelConfig{Birth: 0, Death: 0.3},
		},
		"langevin": {
			Model: "birth_death", Algorithm: "EM", Dt: 0.001, Duration: 10.0,
			SaveEvery: 100, Seed: DefaultSeed,
			InitState:   []float64{100},
			ModelParams: ModelConfig{Birth: 50, Death: 0.5},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
