package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/tovald/ChipsBot_Go/internal/config"
	"github.com/tovald/ChipsBot_Go/internal/cooldown"
	"github.com/tovald/ChipsBot_Go/internal/gamble"
)

// newCooldownService selects the throttling backend from config.
func newCooldownService(cfg *config.Config, pool *pgxpool.Pool) cooldown.Service {
	switch cfg.CooldownBackend {
	case config.CooldownBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return cooldown.NewRedisService(client)
	case config.CooldownBackendMemory:
		return cooldown.NewMemoryService()
	default:
		return cooldown.NewPostgresService(pool)
	}
}

// gambleConfigFromRules maps the rules file onto the orchestrator
// config.
func gambleConfigFromRules(rules config.Rules, devMode bool) gamble.Config {
	return gamble.Config{
		MinBet:          rules.MinBet,
		MaxBet:          rules.MaxBet,
		InitialBalance:  rules.InitialBalance,
		Cooldowns:       rules.Cooldowns(),
		DefaultCooldown: rules.DefaultCooldown(),
		BypassCooldowns: devMode,
	}
}
