package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/ascension/internal/games/ascension/core"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML: %v", err)
	}
	if cfg != DefaultAscensionConfig() {
		t.Errorf("embedded config = %+v\nbuiltin = %+v", cfg, DefaultAscensionConfig())
	}
	if cfg.ToRules() != core.DefaultRules() {
		t.Errorf("rules = %+v, want %+v", cfg.ToRules(), core.DefaultRules())
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("session:\n  seconds: 120\nrules:\n  coin_cooldown: 2s\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAscension(path)
	if err != nil {
		t.Fatalf("LoadAscension: %v", err)
	}
	if cfg.Session.Seconds != 120 {
		t.Errorf("seconds = %d, want 120", cfg.Session.Seconds)
	}
	if cfg.Rules.CoinCooldown != 2*time.Second {
		t.Errorf("cooldown = %v, want 2s", cfg.Rules.CoinCooldown)
	}
	if cfg.Session.StartEnergy != 300 || cfg.Viewport.Width != 11 {
		t.Errorf("unset values lost their defaults: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadAscension(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("session: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAscension(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("rules:\n  tool_slots: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAscension(invalid); err == nil {
		t.Error("expected validation error")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		seconds    int
		energy     int
		exhaustion bool
	}{
		{DifficultyEasy, 900, 400, false},
		{DifficultyNormal, 600, 300, false},
		{DifficultyHard, 420, 200, true},
		{DifficultyFixed, 45, 50, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultAscensionConfig()
			cfg.Session.Seconds = 45
			cfg.Session.StartEnergy = 50
			ApplyPreset(&cfg, tt.preset)

			if cfg.Session.Seconds != tt.seconds || cfg.Session.StartEnergy != tt.energy {
				t.Errorf("got %ds/%d energy, want %ds/%d", cfg.Session.Seconds, cfg.Session.StartEnergy, tt.seconds, tt.energy)
			}
			if cfg.Rules.EndOnExhaustion != tt.exhaustion {
				t.Errorf("end on exhaustion = %v", cfg.Rules.EndOnExhaustion)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyFixed {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
