package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // Keep configured values untouched
)

// Presets lists the presets in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset validates a preset name. An empty name means fixed.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyFixed, nil
	}
	for _, p := range Presets() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", name)
}

// IsFixedPreset returns true if the preset leaves the configuration as loaded.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset adjusts session length and energy for a difficulty preset.
func ApplyPreset(cfg *AscensionConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		return
	}

	switch preset {
	case DifficultyEasy:
		cfg.Session.Seconds = 900
		cfg.Session.StartEnergy = 400
		cfg.Rules.EndOnExhaustion = false
	case DifficultyNormal:
		cfg.Session.Seconds = 600
		cfg.Session.StartEnergy = 300
		cfg.Rules.EndOnExhaustion = false
	case DifficultyHard:
		cfg.Session.Seconds = 420
		cfg.Session.StartEnergy = 200
		cfg.Rules.EndOnExhaustion = true
	}
}
