package games

import (
	"errors"
	"fmt"
)

// WeightedSymbol is one slot reel symbol with its relative draw weight.
type WeightedSymbol struct {
	Name   string `yaml:"name"`
	Weight int    `yaml:"weight"`
}

// SlotsConfig holds the reel symbol table and the payout multipliers
// for each match tier.
type SlotsConfig struct {
	JackpotSymbol     string           `yaml:"jackpot_symbol"`
	JackpotMultiplier float64          `yaml:"jackpot_multiplier"`
	TripleMultiplier  float64          `yaml:"triple_multiplier"`
	DoubleMultiplier  float64          `yaml:"double_multiplier"`
	Symbols           []WeightedSymbol `yaml:"symbols"`
}

// Config holds the payout rules for all games.
type Config struct {
	CoinFlipMultiplier float64     `yaml:"coinflip_multiplier"`
	DiceMultiplier     float64     `yaml:"dice_multiplier"`
	Slots              SlotsConfig `yaml:"slots"`
}

// DefaultConfig returns the stock game rules: a slight house edge on
// coin flip and dice, and a seven-symbol reel with one rare jackpot
// symbol.
func DefaultConfig() Config {
	return Config{
		CoinFlipMultiplier: 1.1,
		DiceMultiplier:     1.25,
		Slots: SlotsConfig{
			JackpotSymbol:     "seven",
			JackpotMultiplier: 1.5,
			TripleMultiplier:  1.3,
			DoubleMultiplier:  1.2,
			Symbols: []WeightedSymbol{
				{Name: "cherry", Weight: 12},
				{Name: "lemon", Weight: 12},
				{Name: "orange", Weight: 12},
				{Name: "grape", Weight: 12},
				{Name: "melon", Weight: 12},
				{Name: "diamond", Weight: 18},
				{Name: "seven", Weight: 3},
			},
		},
	}
}

// Validate checks that the configured rules are playable.
func (c Config) Validate() error {
	if c.CoinFlipMultiplier <= 0 || c.DiceMultiplier <= 0 {
		return errors.New("game multipliers must be positive")
	}
	s := c.Slots
	if s.JackpotMultiplier <= 0 || s.TripleMultiplier <= 0 || s.DoubleMultiplier <= 0 {
		return errors.New("slots multipliers must be positive")
	}
	if len(s.Symbols) == 0 {
		return errors.New("slots symbol table is empty")
	}
	jackpotFound := false
	for _, sym := range s.Symbols {
		if sym.Name == "" {
			return errors.New("slots symbol with empty name")
		}
		if sym.Weight <= 0 {
			return fmt.Errorf("slots symbol %q has non-positive weight %d", sym.Name, sym.Weight)
		}
		if sym.Name == s.JackpotSymbol {
			jackpotFound = true
		}
	}
	if !jackpotFound {
		return fmt.Errorf("jackpot symbol %q not in symbol table", s.JackpotSymbol)
	}
	return nil
}
