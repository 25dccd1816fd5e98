package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/coastsim/internal/bmi"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Coastline.Rows != 100 || cfg.Coastline.Cols != 200 {
		t.Errorf("unexpected default grid %dx%d", cfg.Coastline.Rows, cfg.Coastline.Cols)
	}
	if cfg.Coastline.Spacing <= 0 {
		t.Error("spacing should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Waves.Asymmetry = 0.7
	cfg.Run.Steps = 42
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Waves.Asymmetry != 0.7 {
		t.Errorf("expected asymmetry 0.7, got %f", loaded.Waves.Asymmetry)
	}
	if loaded.Run.Steps != 42 {
		t.Errorf("expected 42 steps, got %d", loaded.Run.Steps)
	}
}

func TestLoadUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := "waves:\n  asymmetry: 0.5\n  wavelength: 3.0\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var cerr *bmi.ConfigError
	if !errors.As(err, &cerr) {
		t.Errorf("expected ConfigError for unknown key, got %v", err)
	}
}

func TestLoadOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := "waves:\n  asymmetry: 1.5\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var cerr *bmi.ConfigError
	if !errors.As(err, &cerr) {
		t.Errorf("expected ConfigError for asymmetry out of range, got %v", err)
	}
}

func TestPresets(t *testing.T) {
	cfg := GetPreset("capes")
	if cfg == nil {
		t.Fatal("expected capes preset")
	}
	if cfg.Waves.Highness < 0.5 {
		t.Error("capes preset should be high-angle dominated")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}

	if len(ListPresets()) == 0 {
		t.Error("expected some presets")
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := DefaultConfig()

	opts := cfg.CoastlineOptions()
	if opts["number_of_rows"] != 100 || opts["grid_spacing"] != 200.0 {
		t.Errorf("unexpected coastline options: %v", opts)
	}
	if _, ok := opts["shelf_slope"]; ok {
		t.Error("unset shelf_slope should be omitted")
	}

	wopts := cfg.WavesOptions()
	if wopts["angle_asymmetry"] != DefaultAsymmetry {
		t.Errorf("unexpected waves options: %v", wopts)
	}
}
