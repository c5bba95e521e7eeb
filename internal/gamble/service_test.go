package gamble

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tovald/ChipsBot_Go/internal/cooldown"
	"github.com/tovald/ChipsBot_Go/internal/database/memory"
	"github.com/tovald/ChipsBot_Go/internal/domain"
	"github.com/tovald/ChipsBot_Go/internal/games"
)

// cycleRNG replays a sequence of draws, wrapping around.
func cycleRNG(draws ...int) func(int) int {
	i := 0
	return func(n int) int {
		d := draws[i%len(draws)]
		i++
		if d >= n {
			d = n - 1
		}
		return d
	}
}

type testEnv struct {
	svc    Service
	ledger *memory.LedgerRepository
}

// newTestEnv wires the orchestrator against in-memory backends with a
// deterministic engine. Draw 0 wins a heads coin flip; draw 1 loses it.
func newTestEnv(t *testing.T, cfg Config, draws ...int) testEnv {
	t.Helper()
	engine, err := games.NewEngineWithRNG(games.DefaultConfig(), cycleRNG(draws...))
	require.NoError(t, err)

	ledger := memory.NewLedgerRepository(cfg.InitialBalance)
	return testEnv{
		svc:    NewService(ledger, cooldown.NewMemoryService(), engine, cfg),
		ledger: ledger,
	}
}

func bypassConfig() Config {
	cfg := DefaultConfig()
	cfg.BypassCooldowns = true
	return cfg
}

func seedBalance(t *testing.T, env testEnv, amount int64) {
	t.Helper()
	_, err := env.svc.AdminSetBalance(context.Background(), "alice", "guild-1", amount)
	require.NoError(t, err)
}

func coinFlipBet(amount int64) domain.BetRequest {
	return domain.BetRequest{Kind: domain.GameCoinFlip, Amount: amount, Choice: "heads"}
}

func TestPlay_WinCommitsNetWinnings(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, bypassConfig(), 0) // heads: alice wins
	seedBalance(t, env, 1000)

	result, err := env.svc.Play(ctx, "alice", "guild-1", coinFlipBet(100))
	require.NoError(t, err)

	assert.True(t, result.Outcome.Won)
	assert.Equal(t, int64(110), result.Outcome.Payout)
	assert.Equal(t, int64(1010), result.NewBalance)

	stats, err := env.svc.GetStats(ctx, "alice", "guild-1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, int64(10), stats.TotalWinnings)
	assert.Zero(t, stats.TotalLosses)
	assert.Equal(t, int64(1), stats.GamesPlayed)
}

func TestPlay_LossCommitsBet(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, bypassConfig(), 1) // tails: alice loses
	seedBalance(t, env, 1000)

	result, err := env.svc.Play(ctx, "alice", "guild-1", coinFlipBet(100))
	require.NoError(t, err)

	assert.False(t, result.Outcome.Won)
	assert.Zero(t, result.Outcome.Payout)
	assert.Equal(t, int64(900), result.NewBalance)

	stats, err := env.svc.GetStats(ctx, "alice", "guild-1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Zero(t, stats.TotalWinnings)
	assert.Equal(t, int64(100), stats.TotalLosses)
	assert.Equal(t, int64(1), stats.GamesPlayed)
}

func TestPlay_ValidationLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, bypassConfig(), 0)
	seedBalance(t, env, 500)

	tests := []struct {
		name    string
		req     domain.BetRequest
		wantErr error
	}{
		{"below minimum", coinFlipBet(0), domain.ErrBetBelowMinimum},
		{"above maximum", coinFlipBet(10001), domain.ErrBetAboveMaximum},
		{"insufficient funds", coinFlipBet(501), domain.ErrInsufficientFunds},
		{"invalid choice", domain.BetRequest{Kind: domain.GameCoinFlip, Amount: 10, Choice: "rim"}, domain.ErrInvalidChoice},
		{"invalid target", domain.BetRequest{Kind: domain.GameDice, Amount: 10, Target: 7}, domain.ErrInvalidTarget},
		{"unknown game", domain.BetRequest{Kind: "baccarat", Amount: 10}, domain.ErrUnknownGame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Play(ctx, "alice", "guild-1", tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// No rejected play moved coins or counted as a game.
	balance, err := env.svc.GetBalance(ctx, "alice", "guild-1")
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)

	stats, err := env.svc.GetStats(ctx, "alice", "guild-1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Zero(t, stats.GamesPlayed)
}

func TestPlay_ThrottledReportsRemaining(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.DefaultCooldown = time.Minute
	env := newTestEnv(t, cfg, 1)
	seedBalance(t, env, 1000)

	_, err := env.svc.Play(ctx, "alice", "guild-1", coinFlipBet(100))
	require.NoError(t, err)

	_, err = env.svc.Play(ctx, "alice", "guild-1", coinFlipBet(100))
	var onCooldown *cooldown.ErrOnCooldown
	require.ErrorAs(t, err, &onCooldown)
	assert.Equal(t, string(domain.GameCoinFlip), onCooldown.Command)
	assert.Greater(t, onCooldown.Remaining, time.Duration(0))

	// A different game has its own cooldown key.
	_, err = env.svc.Play(ctx, "alice", "guild-1", domain.BetRequest{Kind: domain.GameDice, Amount: 100})
	require.NoError(t, err)
}

func TestPlay_PerCommandCooldownOverride(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.DefaultCooldown = 0
	cfg.Cooldowns = map[string]time.Duration{string(domain.GameSlots): time.Minute}
	env := newTestEnv(t, cfg, 0, 12, 24) // cherry lemon orange: loss
	seedBalance(t, env, 1000)

	_, err := env.svc.Play(ctx, "alice", "guild-1", domain.BetRequest{Kind: domain.GameSlots, Amount: 10})
	require.NoError(t, err)

	_, err = env.svc.Play(ctx, "alice", "guild-1", domain.BetRequest{Kind: domain.GameSlots, Amount: 10})
	assert.ErrorIs(t, err, &cooldown.ErrOnCooldown{})
}

func TestAdminSetBalance(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, bypassConfig(), 0)

	balance, err := env.svc.AdminSetBalance(ctx, "alice", "guild-1", 5000)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), balance)

	_, err = env.svc.AdminSetBalance(ctx, "alice", "guild-1", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestAdminResetAccount(t *testing.T) {
	ctx := context.Background()
	cfg := bypassConfig()
	cfg.InitialBalance = 250
	env := newTestEnv(t, cfg, 0)
	seedBalance(t, env, 9000)

	balance, err := env.svc.AdminResetAccount(ctx, "alice", "guild-1")
	require.NoError(t, err)
	assert.Equal(t, int64(250), balance)
}

func TestGetLeaderboard_ClampsLimit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, bypassConfig(), 0)

	for _, id := range []string{"alice", "bob", "carol"} {
		_, err := env.svc.AdminSetBalance(ctx, id, "guild-1", 100)
		require.NoError(t, err)
	}

	entries, err := env.svc.GetLeaderboard(ctx, "guild-1", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	entries, err = env.svc.GetLeaderboard(ctx, "guild-1", 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
