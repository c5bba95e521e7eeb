package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tovald/ChipsBot_Go/internal/games"
)

// Rules holds the game economics: bet limits, starting balance,
// cooldowns, and payout tables. Everything ships with stock defaults
// and can be overridden by a YAML file.
type Rules struct {
	MinBet         int64 `yaml:"min_bet"`
	MaxBet         int64 `yaml:"max_bet"`
	InitialBalance int64 `yaml:"initial_balance"`

	DefaultCooldownSeconds int            `yaml:"default_cooldown_seconds"`
	CooldownSeconds        map[string]int `yaml:"cooldown_seconds"`

	Games games.Config `yaml:"games"`
}

// DefaultRules returns the stock rules.
func DefaultRules() Rules {
	return Rules{
		MinBet:                 1,
		MaxBet:                 10000,
		InitialBalance:         0,
		DefaultCooldownSeconds: 3,
		Games:                  games.DefaultConfig(),
	}
}

// LoadRules reads the rules file at path, layered over the defaults.
// An empty path returns the defaults unchanged.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules file: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("invalid rules file: %w", err)
	}
	return rules, nil
}

// Validate checks the rules for consistency.
func (r Rules) Validate() error {
	if r.MinBet < 0 {
		return fmt.Errorf("min_bet must not be negative")
	}
	if r.MaxBet < r.MinBet {
		return fmt.Errorf("max_bet %d is below min_bet %d", r.MaxBet, r.MinBet)
	}
	if r.InitialBalance < 0 {
		return fmt.Errorf("initial_balance must not be negative")
	}
	if r.DefaultCooldownSeconds < 0 {
		return fmt.Errorf("default_cooldown_seconds must not be negative")
	}
	for command, seconds := range r.CooldownSeconds {
		if seconds < 0 {
			return fmt.Errorf("cooldown for %q must not be negative", command)
		}
	}
	return r.Games.Validate()
}

// Cooldowns converts the per-command second values to durations.
func (r Rules) Cooldowns() map[string]time.Duration {
	if len(r.CooldownSeconds) == 0 {
		return nil
	}
	cooldowns := make(map[string]time.Duration, len(r.CooldownSeconds))
	for command, seconds := range r.CooldownSeconds {
		cooldowns[command] = time.Duration(seconds) * time.Second
	}
	return cooldowns
}

// DefaultCooldown returns the fallback cooldown duration.
func (r Rules) DefaultCooldown() time.Duration {
	return time.Duration(r.DefaultCooldownSeconds) * time.Second
}
