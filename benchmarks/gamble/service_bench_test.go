package gamble_bench

import (
	"context"
	"testing"
	"time"

	"github.com/tovald/ChipsBot_Go/internal/cooldown"
	"github.com/tovald/ChipsBot_Go/internal/database/memory"
	"github.com/tovald/ChipsBot_Go/internal/domain"
	"github.com/tovald/ChipsBot_Go/internal/gamble"
	"github.com/tovald/ChipsBot_Go/internal/games"
)

// noopCooldown never throttles, so the benchmark measures the play
// path rather than the cooldown backend.
type noopCooldown struct{}

func (noopCooldown) TryAcquire(context.Context, string, string, string, time.Duration) (bool, time.Duration, error) {
	return true, 0, nil
}
func (noopCooldown) Remaining(context.Context, string, string, string) (time.Duration, error) {
	return 0, nil
}
func (noopCooldown) Reset(context.Context, string, string, string) error { return nil }

func newBenchService(b *testing.B) gamble.Service {
	b.Helper()

	// Fixed draws keep the outcome mix stable across runs.
	draws := []int{0, 1, 0, 3, 5, 2}
	idx := 0
	engine, err := games.NewEngineWithRNG(games.DefaultConfig(), func(n int) int {
		idx = (idx + 1) % len(draws)
		return draws[idx] % n
	})
	if err != nil {
		b.Fatalf("failed to build engine: %v", err)
	}

	// Deep enough bankroll that a losing streak never hits the floor.
	ledger := memory.NewLedgerRepository(1 << 60)
	cfg := gamble.Config{
		MinBet:          1,
		MaxBet:          10000,
		DefaultCooldown: time.Second,
		BypassCooldowns: true,
	}
	return gamble.NewService(ledger, noopCooldown{}, engine, cfg)
}

func BenchmarkPlay_CoinFlip(b *testing.B) {
	svc := newBenchService(b)
	ctx := context.Background()
	req := domain.BetRequest{Kind: domain.GameCoinFlip, Amount: 100, Choice: "heads"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Play(ctx, "bench-user", "bench-guild", req); err != nil {
			b.Fatalf("play failed: %v", err)
		}
	}
}

func BenchmarkPlay_Slots(b *testing.B) {
	svc := newBenchService(b)
	ctx := context.Background()
	req := domain.BetRequest{Kind: domain.GameSlots, Amount: 100}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Play(ctx, "bench-user", "bench-guild", req); err != nil {
			b.Fatalf("play failed: %v", err)
		}
	}
}

func BenchmarkPlay_Parallel(b *testing.B) {
	svc := newBenchService(b)
	req := domain.BetRequest{Kind: domain.GameDice, Amount: 100, Target: 4}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		for pb.Next() {
			if _, err := svc.Play(ctx, "bench-user", "bench-guild", req); err != nil {
				b.Fatalf("play failed: %v", err)
			}
		}
	})
}

var _ cooldown.Service = noopCooldown{}
