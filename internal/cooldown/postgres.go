package cooldown

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// One-statement check-and-set: the insert wins when no row exists,
	// the update wins only when the existing row has expired. No rows
	// returned means the cooldown is still active.
	sqlTryAcquire = `
		INSERT INTO cooldowns (account_id, community_id, command, expires_at)
		VALUES ($1, $2, $3, NOW() + ($4 * INTERVAL '1 second'))
		ON CONFLICT (account_id, community_id, command) DO UPDATE
		SET expires_at = EXCLUDED.expires_at
		WHERE cooldowns.expires_at <= NOW()
		RETURNING expires_at`

	sqlSelectExpiry = `
		SELECT expires_at FROM cooldowns
		WHERE account_id = $1 AND community_id = $2 AND command = $3`

	sqlDeleteCooldown = `
		DELETE FROM cooldowns
		WHERE account_id = $1 AND community_id = $2 AND command = $3`

	sqlPruneExpired = `
		DELETE FROM cooldowns WHERE expires_at <= NOW()`
)

type postgresService struct {
	db *pgxpool.Pool
}

// NewPostgresService creates a cooldown tracker backed by the
// cooldowns table. Atomicity comes from the single upsert statement.
func NewPostgresService(db *pgxpool.Pool) Service {
	return &postgresService{db: db}
}

func (s *postgresService) TryAcquire(ctx context.Context, accountID, communityID, command string, duration time.Duration) (bool, time.Duration, error) {
	var expiresAt time.Time
	err := s.db.QueryRow(ctx, sqlTryAcquire, accountID, communityID, command, duration.Seconds()).Scan(&expiresAt)
	if err == nil {
		return true, 0, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, 0, fmt.Errorf("failed to acquire cooldown: %w", err)
	}

	remaining, err := s.Remaining(ctx, accountID, communityID, command)
	if err != nil {
		return false, 0, err
	}
	return false, remaining, nil
}

func (s *postgresService) Remaining(ctx context.Context, accountID, communityID, command string) (time.Duration, error) {
	var expiresAt time.Time
	err := s.db.QueryRow(ctx, sqlSelectExpiry, accountID, communityID, command).Scan(&expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cooldown: %w", err)
	}

	remaining := time.Until(expiresAt)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (s *postgresService) Reset(ctx context.Context, accountID, communityID, command string) error {
	if _, err := s.db.Exec(ctx, sqlDeleteCooldown, accountID, communityID, command); err != nil {
		return fmt.Errorf("failed to reset cooldown: %w", err)
	}
	return nil
}

// PruneExpired implements Pruner. Expired rows are dead weight; the
// tracker treats them as absent either way.
func (s *postgresService) PruneExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, sqlPruneExpired)
	if err != nil {
		return 0, fmt.Errorf("failed to prune cooldowns: %w", err)
	}
	return tag.RowsAffected(), nil
}
