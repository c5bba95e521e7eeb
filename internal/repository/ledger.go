// Package repository defines storage contracts implemented by the
// database backends.
package repository

import (
	"context"

	"github.com/tovald/ChipsBot_Go/internal/domain"
)

// Ledger is the storage contract for community coin accounts.
//
// Implementations create accounts lazily with the configured initial
// balance on first touch, and guarantee that ApplyDelta is atomic per
// account: concurrent deltas never lose updates and the balance never
// goes negative.
type Ledger interface {
	// GetBalance returns the current balance, creating the account
	// if it does not exist yet.
	GetBalance(ctx context.Context, accountID, communityID string) (int64, error)

	// ApplyDelta adjusts the balance by delta in a single atomic
	// read-modify-write. It returns domain.ErrInsufficientFunds and
	// leaves the balance untouched if the result would be negative.
	ApplyDelta(ctx context.Context, accountID, communityID string, delta int64) (int64, error)

	// RecordResult adds to the aggregate win/loss counters and
	// increments games played.
	RecordResult(ctx context.Context, accountID, communityID string, winnings, losses int64) error

	// SetBalance overwrites the balance unconditionally. Admin path;
	// callers validate that balance is non-negative.
	SetBalance(ctx context.Context, accountID, communityID string, balance int64) (int64, error)

	// GetStats returns the full account row, or (nil, nil) when the
	// account has never been touched.
	GetStats(ctx context.Context, accountID, communityID string) (*domain.Account, error)

	// GetLeaderboard returns up to limit accounts ordered by balance
	// descending, ties broken by account creation order.
	GetLeaderboard(ctx context.Context, communityID string, limit int) ([]domain.LeaderboardEntry, error)
}
