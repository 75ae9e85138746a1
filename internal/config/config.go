// Package config provides YAML-based configuration loading and difficulty
// presets for the Ascension game.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/ascension/internal/games/ascension/core"
)

// AscensionConfig contains all configuration for the game and its servers.
type AscensionConfig struct {
	Session  SessionConfig  `yaml:"session"`
	Rules    RulesConfig    `yaml:"rules"`
	Input    InputConfig    `yaml:"input"`
	Viewport ViewportConfig `yaml:"viewport"`
	Leads    LeadsConfig    `yaml:"leads"`
	API      APIConfig      `yaml:"api"`
}

// SessionConfig defines the starting resources of a session.
type SessionConfig struct {
	Seconds     int     `yaml:"seconds"`
	StartEnergy int     `yaml:"start_energy"`
	MaxMastery  float64 `yaml:"max_mastery"`
	StartLevel  int     `yaml:"start_level"`
}

// RulesConfig defines gameplay rules.
type RulesConfig struct {
	ToolSlots        int           `yaml:"tool_slots"`
	CoinCooldown     time.Duration `yaml:"coin_cooldown"`
	EnforceToolGates bool          `yaml:"enforce_tool_gates"`
	EndOnExhaustion  bool          `yaml:"end_on_exhaustion"`
}

// InputConfig defines input mapping parameters.
type InputConfig struct {
	SwipeThreshold float64 `yaml:"swipe_threshold"`
}

// ViewportConfig defines the visible board window in cells.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LeadsConfig defines where captured e-mail addresses are sent.
type LeadsConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

// APIConfig defines the HTTP API server.
type APIConfig struct {
	Addr       string `yaml:"addr"`
	CORSOrigin string `yaml:"cors_origin"` // Empty disables CORS headers
}

// Validate checks that every value is usable.
func (c AscensionConfig) Validate() error {
	switch {
	case c.Session.Seconds <= 0:
		return fmt.Errorf("config: session.seconds must be positive, got %d", c.Session.Seconds)
	case c.Session.StartEnergy < 0:
		return fmt.Errorf("config: session.start_energy must not be negative, got %d", c.Session.StartEnergy)
	case c.Session.MaxMastery <= 0:
		return fmt.Errorf("config: session.max_mastery must be positive, got %v", c.Session.MaxMastery)
	case c.Rules.ToolSlots <= 0:
		return fmt.Errorf("config: rules.tool_slots must be positive, got %d", c.Rules.ToolSlots)
	case c.Rules.CoinCooldown < 0:
		return fmt.Errorf("config: rules.coin_cooldown must not be negative, got %v", c.Rules.CoinCooldown)
	case c.Input.SwipeThreshold < 0:
		return fmt.Errorf("config: input.swipe_threshold must not be negative, got %v", c.Input.SwipeThreshold)
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("config: viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	return nil
}

// ToRules converts the session and rules sections into engine rules.
func (c AscensionConfig) ToRules() core.Rules {
	return core.Rules{
		SessionSeconds:   c.Session.Seconds,
		StartEnergy:      c.Session.StartEnergy,
		MaxMastery:       c.Session.MaxMastery,
		ToolSlots:        c.Rules.ToolSlots,
		CoinCooldown:     c.Rules.CoinCooldown,
		EnforceToolGates: c.Rules.EnforceToolGates,
		EndOnExhaustion:  c.Rules.EndOnExhaustion,
	}
}
