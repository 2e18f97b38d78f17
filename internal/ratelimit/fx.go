package ratelimit

import (
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/speedisha/speedisha/internal/config"
)

// NewRedisClient connects to redis when an address is configured.
// Without one the app runs unlimited, which is fine for local work.
func NewRedisClient(cfg config.Config, log *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Warn("redis not configured, rate limiting disabled")
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

var Module = fx.Module("ratelimit",
	fx.Provide(
		NewRedisClient,
		NewTokenBucket,
	),
)
