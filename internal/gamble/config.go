package gamble

import "time"

// Default bet limits and cooldowns, matching the stock rules file.
const (
	DefaultMinBet          = 1
	DefaultMaxBet          = 10000
	DefaultInitialBalance  = 0
	DefaultCooldownPeriod  = 3 * time.Second
	DefaultLeaderboardSize = 10
	MaxLeaderboardSize     = 100
)

// Config holds the orchestrator's betting rules.
type Config struct {
	MinBet         int64
	MaxBet         int64
	InitialBalance int64

	// Cooldowns maps a command name to its cooldown period.
	// DefaultCooldown applies to commands not listed.
	Cooldowns       map[string]time.Duration
	DefaultCooldown time.Duration

	// BypassCooldowns disables throttling entirely, for dev setups.
	BypassCooldowns bool
}

// DefaultConfig returns the stock betting rules.
func DefaultConfig() Config {
	return Config{
		MinBet:          DefaultMinBet,
		MaxBet:          DefaultMaxBet,
		InitialBalance:  DefaultInitialBalance,
		DefaultCooldown: DefaultCooldownPeriod,
	}
}

// CooldownFor returns the cooldown period for a command.
func (c Config) CooldownFor(command string) time.Duration {
	if d, ok := c.Cooldowns[command]; ok {
		return d
	}
	return c.DefaultCooldown
}
