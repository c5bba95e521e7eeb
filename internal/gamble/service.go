// Package gamble orchestrates a play session: throttling, bet
// validation, outcome resolution, and the ledger commit.
package gamble

import (
	"context"
	"errors"
	"fmt"

	"github.com/tovald/ChipsBot_Go/internal/cooldown"
	"github.com/tovald/ChipsBot_Go/internal/domain"
	"github.com/tovald/ChipsBot_Go/internal/games"
	"github.com/tovald/ChipsBot_Go/internal/logger"
	"github.com/tovald/ChipsBot_Go/internal/metrics"
	"github.com/tovald/ChipsBot_Go/internal/repository"
)

// Service is the play orchestrator and account query surface.
type Service interface {
	// Play runs one complete game session and returns the outcome
	// with the committed balance.
	Play(ctx context.Context, accountID, communityID string, req domain.BetRequest) (*domain.PlayResult, error)

	GetBalance(ctx context.Context, accountID, communityID string) (int64, error)
	GetStats(ctx context.Context, accountID, communityID string) (*domain.Account, error)
	GetLeaderboard(ctx context.Context, communityID string, limit int) ([]domain.LeaderboardEntry, error)

	// AdminSetBalance overwrites a balance, bypassing bet validation
	// and cooldowns but using the same atomic ledger path.
	AdminSetBalance(ctx context.Context, accountID, communityID string, balance int64) (int64, error)

	// AdminResetAccount restores a balance to the configured initial
	// value.
	AdminResetAccount(ctx context.Context, accountID, communityID string) (int64, error)
}

type service struct {
	ledger    repository.Ledger
	cooldowns cooldown.Service
	engine    *games.Engine
	cfg       Config
}

// NewService creates the orchestrator.
func NewService(ledger repository.Ledger, cooldowns cooldown.Service, engine *games.Engine, cfg Config) Service {
	return &service{
		ledger:    ledger,
		cooldowns: cooldowns,
		engine:    engine,
		cfg:       cfg,
	}
}

// Play sequences one session: cooldown acquisition, validation,
// resolution, then the atomic ledger commit. The cooldown is consumed
// up front, before validation, so a rejected bet still counts as an
// attempt for throttling purposes.
func (s *service) Play(ctx context.Context, accountID, communityID string, req domain.BetRequest) (*domain.PlayResult, error) {
	log := logger.FromContext(ctx)
	command := string(req.Kind)

	if !s.cfg.BypassCooldowns {
		acquired, remaining, err := s.cooldowns.TryAcquire(ctx, accountID, communityID, command, s.cfg.CooldownFor(command))
		if err != nil {
			return nil, fmt.Errorf("cooldown check failed: %w", err)
		}
		if !acquired {
			metrics.CooldownRejections.WithLabelValues(command).Inc()
			return nil, &cooldown.ErrOnCooldown{Command: command, Remaining: remaining}
		}
	}

	if err := s.engine.ValidateRequest(req); err != nil {
		metrics.BetsRejected.WithLabelValues("invalid_params").Inc()
		return nil, err
	}
	if err := s.validateBet(ctx, accountID, communityID, req.Amount); err != nil {
		return nil, err
	}

	outcome, err := s.engine.Resolve(req)
	if err != nil {
		return nil, err
	}

	// Ledger delta: net winnings on a win, the full bet on a loss.
	delta := -req.Amount
	winnings, losses := int64(0), req.Amount
	if outcome.Won {
		delta = outcome.Payout - req.Amount
		winnings, losses = max(outcome.Payout-req.Amount, 0), 0
	}

	newBalance, err := s.ledger.ApplyDelta(ctx, accountID, communityID, delta)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			// The balance moved between the pre-check and the commit.
			// The guard is authoritative; nothing was charged.
			return nil, fmt.Errorf("%w: balance changed during play", domain.ErrInsufficientFunds)
		}
		return nil, fmt.Errorf("failed to commit play: %w", err)
	}

	if err := s.ledger.RecordResult(ctx, accountID, communityID, winnings, losses); err != nil {
		// The balance is already committed. Stats lag until the next
		// successful play; surfacing the error would misreport an
		// applied payout.
		log.Error("Failed to record play stats",
			"error", err, "account_id", accountID, "community_id", communityID)
	}

	s.recordPlayMetrics(req, outcome)
	log.Info("Play resolved",
		"account_id", accountID,
		"community_id", communityID,
		"game", command,
		"bet", req.Amount,
		"won", outcome.Won,
		"payout", outcome.Payout,
		"new_balance", newBalance)

	return &domain.PlayResult{Outcome: outcome, NewBalance: newBalance}, nil
}

// validateBet enforces the bet limits and the funds pre-check, in that
// order. The pre-check gives a clean rejection before resolution; the
// ledger guard at commit time is the authoritative enforcement.
func (s *service) validateBet(ctx context.Context, accountID, communityID string, amount int64) error {
	if amount < s.cfg.MinBet {
		metrics.BetsRejected.WithLabelValues("below_minimum").Inc()
		return fmt.Errorf("%w: minimum bet is %d", domain.ErrBetBelowMinimum, s.cfg.MinBet)
	}
	if amount > s.cfg.MaxBet {
		metrics.BetsRejected.WithLabelValues("above_maximum").Inc()
		return fmt.Errorf("%w: maximum bet is %d", domain.ErrBetAboveMaximum, s.cfg.MaxBet)
	}

	balance, err := s.ledger.GetBalance(ctx, accountID, communityID)
	if err != nil {
		return fmt.Errorf("failed to check balance: %w", err)
	}
	if balance < amount {
		metrics.BetsRejected.WithLabelValues("insufficient_funds").Inc()
		return fmt.Errorf("%w: balance %d, bet %d", domain.ErrInsufficientFunds, balance, amount)
	}
	return nil
}

func (s *service) recordPlayMetrics(req domain.BetRequest, outcome domain.GameOutcome) {
	result := metrics.ResultLoss
	if outcome.Won {
		result = metrics.ResultWin
	}
	metrics.GamesPlayed.WithLabelValues(string(req.Kind), result).Inc()
	metrics.CoinsWagered.Add(float64(req.Amount))
	if outcome.Won {
		metrics.CoinsPaidOut.Add(float64(outcome.Payout))
	}
}

func (s *service) GetBalance(ctx context.Context, accountID, communityID string) (int64, error) {
	return s.ledger.GetBalance(ctx, accountID, communityID)
}

func (s *service) GetStats(ctx context.Context, accountID, communityID string) (*domain.Account, error) {
	return s.ledger.GetStats(ctx, accountID, communityID)
}

func (s *service) GetLeaderboard(ctx context.Context, communityID string, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}
	if limit > MaxLeaderboardSize {
		limit = MaxLeaderboardSize
	}
	return s.ledger.GetLeaderboard(ctx, communityID, limit)
}

func (s *service) AdminSetBalance(ctx context.Context, accountID, communityID string, balance int64) (int64, error) {
	if balance < 0 {
		return 0, fmt.Errorf("%w: balance must not be negative", domain.ErrInvalidAmount)
	}

	newBalance, err := s.ledger.SetBalance(ctx, accountID, communityID, balance)
	if err != nil {
		return 0, fmt.Errorf("failed to set balance: %w", err)
	}

	logger.FromContext(ctx).Info("Admin set balance",
		"account_id", accountID, "community_id", communityID, "balance", newBalance)
	return newBalance, nil
}

func (s *service) AdminResetAccount(ctx context.Context, accountID, communityID string) (int64, error) {
	return s.AdminSetBalance(ctx, accountID, communityID, s.cfg.InitialBalance)
}
