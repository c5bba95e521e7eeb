package games

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/tovald/ChipsBot_Go/internal/domain"
)

const (
	defaultDiceTarget = 6
	diceSides         = 6
	reelCount         = 3
)

// Engine resolves game outcomes. It is stateless apart from its
// configuration and safe for concurrent use.
type Engine struct {
	cfg    Config
	picker *weightedPicker
	rng    func(int) int // injectable for deterministic tests
}

// NewEngine builds an engine from validated config, seeded from the
// default math/rand source.
func NewEngine(cfg Config) (*Engine, error) {
	return NewEngineWithRNG(cfg, defaultRNG)
}

// NewEngineWithRNG is NewEngine with an explicit randomness source.
func NewEngineWithRNG(cfg Config, rng func(int) int) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	picker, err := newWeightedPicker(cfg.Slots.Symbols)
	if err != nil {
		return nil, fmt.Errorf("invalid symbol table: %w", err)
	}
	return &Engine{cfg: cfg, picker: picker, rng: rng}, nil
}

//nolint:gosec // game randomness, not security critical
func defaultRNG(n int) int {
	return rand.Intn(n)
}

// ValidateRequest checks game parameters without drawing an outcome.
// Bet amounts are validated by the caller against its limits.
func (e *Engine) ValidateRequest(req domain.BetRequest) error {
	switch req.Kind {
	case domain.GameCoinFlip:
		choice := strings.ToLower(req.Choice)
		if choice != domain.CoinHeads && choice != domain.CoinTails {
			return fmt.Errorf("%w: choose %s or %s", domain.ErrInvalidChoice, domain.CoinHeads, domain.CoinTails)
		}
	case domain.GameDice:
		if req.Target != 0 && (req.Target < 1 || req.Target > diceSides) {
			return fmt.Errorf("%w: target must be between 1 and %d", domain.ErrInvalidTarget, diceSides)
		}
	case domain.GameSlots:
		// No extra parameters.
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownGame, req.Kind)
	}
	return nil
}

// Resolve draws and resolves a single play. The request must already
// have passed ValidateRequest.
func (e *Engine) Resolve(req domain.BetRequest) (domain.GameOutcome, error) {
	switch req.Kind {
	case domain.GameCoinFlip:
		return e.ResolveCoinFlip(req.Amount, req.Choice)
	case domain.GameDice:
		return e.ResolveDice(req.Amount, req.Target)
	case domain.GameSlots:
		return e.ResolveSlots(req.Amount)
	default:
		return domain.GameOutcome{}, fmt.Errorf("%w: %q", domain.ErrUnknownGame, req.Kind)
	}
}

// ResolveCoinFlip flips a fair coin against the caller's choice.
func (e *Engine) ResolveCoinFlip(bet int64, choice string) (domain.GameOutcome, error) {
	choice = strings.ToLower(choice)
	if choice != domain.CoinHeads && choice != domain.CoinTails {
		return domain.GameOutcome{}, fmt.Errorf("%w: choose %s or %s", domain.ErrInvalidChoice, domain.CoinHeads, domain.CoinTails)
	}

	face := domain.CoinHeads
	if e.rng(2) == 1 {
		face = domain.CoinTails
	}

	out := domain.GameOutcome{
		Kind:     domain.GameCoinFlip,
		Won:      face == choice,
		CoinFace: face,
	}
	if out.Won {
		out.Payout = applyMultiplier(bet, e.cfg.CoinFlipMultiplier)
	}
	out.Message = coinFlipMessage(out, bet)
	return out, nil
}

// ResolveDice rolls a fair six-sided die against the target. A zero
// target defaults to six. The multiplier is flat across targets; the
// target only picks which face wins.
func (e *Engine) ResolveDice(bet int64, target int) (domain.GameOutcome, error) {
	if target == 0 {
		target = defaultDiceTarget
	}
	if target < 1 || target > diceSides {
		return domain.GameOutcome{}, fmt.Errorf("%w: target must be between 1 and %d", domain.ErrInvalidTarget, diceSides)
	}

	roll := e.rng(diceSides) + 1

	out := domain.GameOutcome{
		Kind:   domain.GameDice,
		Won:    roll == target,
		Roll:   roll,
		Target: target,
	}
	if out.Won {
		out.Payout = applyMultiplier(bet, e.cfg.DiceMultiplier)
	}
	out.Message = diceMessage(out, bet)
	return out, nil
}

// ResolveSlots spins three independent weighted reels. Match tiers are
// checked in precedence order: jackpot triple, any triple, any double.
func (e *Engine) ResolveSlots(bet int64) (domain.GameOutcome, error) {
	reels := make([]string, reelCount)
	for i := range reels {
		reels[i] = e.picker.pick(e.rng)
	}

	out := domain.GameOutcome{
		Kind:  domain.GameSlots,
		Reels: reels,
		Combo: classifyReels(reels, e.cfg.Slots.JackpotSymbol),
	}
	switch out.Combo {
	case domain.ComboJackpot:
		out.Won = true
		out.Payout = applyMultiplier(bet, e.cfg.Slots.JackpotMultiplier)
	case domain.ComboTriple:
		out.Won = true
		out.Payout = applyMultiplier(bet, e.cfg.Slots.TripleMultiplier)
	case domain.ComboDouble:
		out.Won = true
		out.Payout = applyMultiplier(bet, e.cfg.Slots.DoubleMultiplier)
	case domain.ComboNone:
	}
	out.Message = slotsMessage(out, bet)
	return out, nil
}

func classifyReels(reels []string, jackpot string) domain.SlotsCombo {
	switch {
	case reels[0] == reels[1] && reels[1] == reels[2] && reels[0] == jackpot:
		return domain.ComboJackpot
	case reels[0] == reels[1] && reels[1] == reels[2]:
		return domain.ComboTriple
	case reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2]:
		return domain.ComboDouble
	default:
		return domain.ComboNone
	}
}

// applyMultiplier computes the total payout for a winning bet,
// truncating any fractional coin.
func applyMultiplier(bet int64, multiplier float64) int64 {
	return int64(float64(bet) * multiplier)
}
