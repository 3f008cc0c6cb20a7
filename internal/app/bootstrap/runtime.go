package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/wolfman30/medmatch/internal/config"
	"github.com/wolfman30/medmatch/internal/directory"
	"github.com/wolfman30/medmatch/internal/session"
	"github.com/wolfman30/medmatch/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildSessionStore picks the Redis session store when a client is available
// and falls back to process memory otherwise.
func BuildSessionStore(redisClient *redis.Client, cfg *appconfig.Config, logger *logging.Logger) session.Store {
	if logger == nil {
		logger = logging.Default()
	}
	ttl := session.DefaultTTL
	if cfg != nil && cfg.SessionTTL > 0 {
		ttl = cfg.SessionTTL
	}
	if redisClient == nil {
		logger.Info("search sessions kept in memory", "ttl", ttl.String())
		return session.NewMemoryStore(ttl)
	}
	logger.Info("search sessions stored in redis", "ttl", ttl.String())
	return session.NewRedisStore(redisClient, ttl)
}

// BuildDirectory creates the doctor store, seeded with the demo doctors unless
// disabled.
func BuildDirectory(cfg *appconfig.Config, logger *logging.Logger) *directory.Store {
	if cfg != nil && !cfg.SeedDemoDoctors {
		return directory.NewStore(logger)
	}
	return directory.NewStore(logger, directory.Seed()...)
}
