package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "gbm" {
		t.Errorf("expected model gbm, got %s", cfg.Model)
	}
	if cfg.Dt != 0 {
		t.Error("default dt should be 0 (automatic)")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Abstol <= 0 || cfg.Reltol <= 0 {
		t.Error("tolerances should be positive")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Model = "ou"
	cfg.Adaptive = true
	cfg.InitState = []float64{2.5}
	cfg.ModelParams.Theta = 3.0

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Model != "ou" || !got.Adaptive {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.ModelParams.Theta != 3.0 {
		t.Errorf("theta = %v, want 3", got.ModelParams.Theta)
	}
	if len(got.InitState) != 1 || got.InitState[0] != 2.5 {
		t.Errorf("init state = %v", got.InitState)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("model: additive\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Model != "additive" {
		t.Errorf("model = %s", cfg.Model)
	}
	if cfg.Abstol != DefaultAbstol {
		t.Error("unset fields should keep their defaults")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("gbm", "calm")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.ModelParams.Sigma != 0.25 {
		t.Errorf("expected sigma 0.25, got %f", cfg.ModelParams.Sigma)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("gbm", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "calm"); cfg != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets("birth_death"); len(presets) == 0 {
		t.Error("expected presets for birth_death")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestGetInitState(t *testing.T) {
	tests := []struct {
		model    string
		expected float64
	}{
		{"gbm", 0.5},
		{"additive", 0.0},
		{"ou", 1.0},
		{"birth_death", 100},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Model = tt.model
		state := cfg.GetInitState()
		if len(state) != 1 {
			t.Fatalf("model %s: expected scalar state, got %v", tt.model, state)
		}
		if state[0] != tt.expected {
			t.Errorf("model %s: state = %v, want %v", tt.model, state[0], tt.expected)
		}
	}

	cfg := DefaultConfig()
	cfg.InitState = []float64{1, 2, 3}
	got := cfg.GetInitState()
	if len(got) != 3 {
		t.Errorf("explicit init state ignored: %v", got)
	}
	got[0] = 99
	if cfg.InitState[0] == 99 {
		t.Error("GetInitState should return a copy")
	}
}
