// Package memory implements the repository contracts in process
// memory, mirroring the postgres semantics. Used for tests and
// single-node dev setups.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tovald/ChipsBot_Go/internal/domain"
)

type accountKey struct {
	accountID   string
	communityID string
}

type accountRecord struct {
	account domain.Account
	seq     int64 // creation order, leaderboard tie-break
}

// LedgerRepository is the in-memory ledger. All operations take the
// mutex, which gives the same per-account atomicity as the postgres
// single-statement updates.
type LedgerRepository struct {
	mu             sync.Mutex
	accounts       map[accountKey]*accountRecord
	nextSeq        int64
	initialBalance int64
}

// NewLedgerRepository creates a ledger that seeds new accounts with
// initialBalance.
func NewLedgerRepository(initialBalance int64) *LedgerRepository {
	return &LedgerRepository{
		accounts:       make(map[accountKey]*accountRecord),
		initialBalance: initialBalance,
	}
}

// ensure returns the record for the key, creating it lazily.
// Callers must hold the mutex.
func (r *LedgerRepository) ensure(accountID, communityID string) *accountRecord {
	key := accountKey{accountID, communityID}
	if rec, ok := r.accounts[key]; ok {
		return rec
	}
	now := time.Now()
	rec := &accountRecord{
		account: domain.Account{
			AccountID:   accountID,
			CommunityID: communityID,
			Balance:     r.initialBalance,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		seq: r.nextSeq,
	}
	r.nextSeq++
	r.accounts[key] = rec
	return rec
}

func (r *LedgerRepository) GetBalance(_ context.Context, accountID, communityID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ensure(accountID, communityID).account.Balance, nil
}

func (r *LedgerRepository) ApplyDelta(_ context.Context, accountID, communityID string, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := r.ensure(accountID, communityID)
	if rec.account.Balance+delta < 0 {
		return 0, domain.ErrInsufficientFunds
	}
	rec.account.Balance += delta
	rec.account.UpdatedAt = time.Now()
	return rec.account.Balance, nil
}

func (r *LedgerRepository) RecordResult(_ context.Context, accountID, communityID string, winnings, losses int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := r.ensure(accountID, communityID)
	rec.account.TotalWinnings += winnings
	rec.account.TotalLosses += losses
	rec.account.GamesPlayed++
	rec.account.UpdatedAt = time.Now()
	return nil
}

func (r *LedgerRepository) SetBalance(_ context.Context, accountID, communityID string, balance int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := r.ensure(accountID, communityID)
	rec.account.Balance = balance
	rec.account.UpdatedAt = time.Now()
	return rec.account.Balance, nil
}

func (r *LedgerRepository) GetStats(_ context.Context, accountID, communityID string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.accounts[accountKey{accountID, communityID}]
	if !ok {
		return nil, nil
	}
	acct := rec.account
	return &acct, nil
}

func (r *LedgerRepository) GetLeaderboard(_ context.Context, communityID string, limit int) ([]domain.LeaderboardEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var recs []*accountRecord
	for key, rec := range r.accounts {
		if key.communityID == communityID {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].account.Balance != recs[j].account.Balance {
			return recs[i].account.Balance > recs[j].account.Balance
		}
		return recs[i].seq < recs[j].seq
	})

	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	entries := make([]domain.LeaderboardEntry, 0, len(recs))
	for i, rec := range recs {
		entries = append(entries, domain.LeaderboardEntry{
			Rank:      i + 1,
			AccountID: rec.account.AccountID,
			Balance:   rec.account.Balance,
		})
	}
	return entries, nil
}
