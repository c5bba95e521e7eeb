// Package postgres implements the repository contracts on PostgreSQL
// via pgx. All balance mutations are single statements so the row lock
// serializes concurrent updates per account.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tovald/ChipsBot_Go/internal/domain"
)

const (
	sqlEnsureAccount = `
		INSERT INTO accounts (account_id, community_id, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id, community_id) DO NOTHING`

	sqlSelectBalance = `
		SELECT balance FROM accounts
		WHERE account_id = $1 AND community_id = $2`

	// The balance guard makes the statement a no-op when the delta
	// would overdraw; no rows returned means insufficient funds.
	sqlApplyDelta = `
		UPDATE accounts
		SET balance = balance + $3, updated_at = NOW()
		WHERE account_id = $1 AND community_id = $2 AND balance + $3 >= 0
		RETURNING balance`

	sqlRecordResult = `
		UPDATE accounts
		SET total_winnings = total_winnings + $3,
		    total_losses = total_losses + $4,
		    games_played = games_played + 1,
		    updated_at = NOW()
		WHERE account_id = $1 AND community_id = $2`

	sqlSetBalance = `
		UPDATE accounts
		SET balance = $3, updated_at = NOW()
		WHERE account_id = $1 AND community_id = $2
		RETURNING balance`

	sqlSelectStats = `
		SELECT account_id, community_id, balance, total_winnings, total_losses,
		       games_played, created_at, updated_at
		FROM accounts
		WHERE account_id = $1 AND community_id = $2`

	sqlSelectLeaderboard = `
		SELECT account_id, balance FROM accounts
		WHERE community_id = $1
		ORDER BY balance DESC, id ASC
		LIMIT $2`
)

// LedgerRepository is the PostgreSQL ledger.
type LedgerRepository struct {
	db             *pgxpool.Pool
	initialBalance int64
}

// NewLedgerRepository creates a ledger that seeds new accounts with
// initialBalance.
func NewLedgerRepository(db *pgxpool.Pool, initialBalance int64) *LedgerRepository {
	return &LedgerRepository{db: db, initialBalance: initialBalance}
}

// ensureAccount lazily creates the account row. Idempotent under
// concurrent callers.
func (r *LedgerRepository) ensureAccount(ctx context.Context, accountID, communityID string) error {
	if _, err := r.db.Exec(ctx, sqlEnsureAccount, accountID, communityID, r.initialBalance); err != nil {
		return fmt.Errorf("failed to ensure account: %w", err)
	}
	return nil
}

func (r *LedgerRepository) GetBalance(ctx context.Context, accountID, communityID string) (int64, error) {
	if err := r.ensureAccount(ctx, accountID, communityID); err != nil {
		return 0, err
	}

	var balance int64
	if err := r.db.QueryRow(ctx, sqlSelectBalance, accountID, communityID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

func (r *LedgerRepository) ApplyDelta(ctx context.Context, accountID, communityID string, delta int64) (int64, error) {
	if err := r.ensureAccount(ctx, accountID, communityID); err != nil {
		return 0, err
	}

	var balance int64
	err := r.db.QueryRow(ctx, sqlApplyDelta, accountID, communityID, delta).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		// Row exists after ensureAccount, so the guard rejected the delta.
		return 0, domain.ErrInsufficientFunds
	}
	if err != nil {
		return 0, fmt.Errorf("failed to apply delta: %w", err)
	}
	return balance, nil
}

func (r *LedgerRepository) RecordResult(ctx context.Context, accountID, communityID string, winnings, losses int64) error {
	if err := r.ensureAccount(ctx, accountID, communityID); err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sqlRecordResult, accountID, communityID, winnings, losses); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	return nil
}

func (r *LedgerRepository) SetBalance(ctx context.Context, accountID, communityID string, balance int64) (int64, error) {
	if err := r.ensureAccount(ctx, accountID, communityID); err != nil {
		return 0, err
	}

	var newBalance int64
	if err := r.db.QueryRow(ctx, sqlSetBalance, accountID, communityID, balance).Scan(&newBalance); err != nil {
		return 0, fmt.Errorf("failed to set balance: %w", err)
	}
	return newBalance, nil
}

func (r *LedgerRepository) GetStats(ctx context.Context, accountID, communityID string) (*domain.Account, error) {
	var acct domain.Account
	err := r.db.QueryRow(ctx, sqlSelectStats, accountID, communityID).Scan(
		&acct.AccountID, &acct.CommunityID, &acct.Balance,
		&acct.TotalWinnings, &acct.TotalLosses, &acct.GamesPlayed,
		&acct.CreatedAt, &acct.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &acct, nil
}

func (r *LedgerRepository) GetLeaderboard(ctx context.Context, communityID string, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, sqlSelectLeaderboard, communityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		entry := domain.LeaderboardEntry{Rank: len(entries) + 1}
		if err := rows.Scan(&entry.AccountID, &entry.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	return entries, nil
}
