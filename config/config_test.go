package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Simulation.HorizonDays != 252 {
		t.Errorf("horizon: got %d, want 252", cfg.Simulation.HorizonDays)
	}
	if cfg.Simulation.Model != "lognormal" {
		t.Errorf("model: got %q, want lognormal", cfg.Simulation.Model)
	}
	if cfg.Simulation.PriceFloor != 0.01 || cfg.Simulation.PriceCap != 3000 {
		t.Errorf("clamp range: got [%v, %v]", cfg.Simulation.PriceFloor, cfg.Simulation.PriceCap)
	}
	if cfg.Simulation.Seed != 42 {
		t.Errorf("seed: got %d, want 42", cfg.Simulation.Seed)
	}
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9999
simulation:
  model: jump_diffusion
  paths: 50
symbols: [AAPL, MSFT]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port override lost: %d", cfg.Server.Port)
	}
	if cfg.Simulation.Model != "jump_diffusion" || cfg.Simulation.Paths != 50 {
		t.Errorf("simulation overrides lost: %+v", cfg.Simulation)
	}
	// Unset fields still get defaults.
	if cfg.Simulation.HorizonDays != 252 {
		t.Errorf("horizon default lost: %d", cfg.Simulation.HorizonDays)
	}
	if len(cfg.Symbols) != 2 {
		t.Errorf("symbols: %v", cfg.Symbols)
	}
}

func TestLoadRejectsInvalidModel(t *testing.T) {
	path := writeConfig(t, "simulation:\n  model: gaussian\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown model")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	path := writeConfig(t, "server:\n  port: -1\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for negative port")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
