package domain

import "time"

// Account is one ledger row: a member's coin balance and aggregate
// gambling stats, scoped to a single community. Accounts are created
// lazily on first touch and never deleted.
type Account struct {
	AccountID     string    `json:"account_id"`
	CommunityID   string    `json:"community_id"`
	Balance       int64     `json:"balance"`
	TotalWinnings int64     `json:"total_winnings"`
	TotalLosses   int64     `json:"total_losses"`
	GamesPlayed   int64     `json:"games_played"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NetProfit returns lifetime winnings minus lifetime losses.
func (a *Account) NetProfit() int64 {
	return a.TotalWinnings - a.TotalLosses
}

// LeaderboardEntry is one row of a community leaderboard, ordered by
// balance descending with ties broken by account creation order.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	AccountID string `json:"account_id"`
	Balance   int64  `json:"balance"`
}
