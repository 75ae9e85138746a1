package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/ascension/internal/games/ascension/core"
)

//go:embed defaults/ascension.yaml
var defaultAscensionYAML []byte

// DefaultAscensionConfig returns the built-in configuration.
func DefaultAscensionConfig() AscensionConfig {
	rules := core.DefaultRules()
	return AscensionConfig{
		Session: SessionConfig{
			Seconds:     rules.SessionSeconds,
			StartEnergy: rules.StartEnergy,
			MaxMastery:  rules.MaxMastery,
			StartLevel:  1,
		},
		Rules: RulesConfig{
			ToolSlots:        rules.ToolSlots,
			CoinCooldown:     rules.CoinCooldown,
			EnforceToolGates: rules.EnforceToolGates,
			EndOnExhaustion:  rules.EndOnExhaustion,
		},
		Input: InputConfig{
			SwipeThreshold: core.DefaultSwipeThreshold,
		},
		Viewport: ViewportConfig{
			Width:  11,
			Height: 11,
		},
		Leads: LeadsConfig{
			Timeout: 5 * time.Second,
		},
		API: APIConfig{
			Addr: ":8080",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultAscensionYAML
}
