package utils

import (
	"context"
	"time"

	"roadcare/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var cacheClient *redis.Client

// InitCache connects the Redis client used for workshop discovery and
// external mechanic search caching. It exits the process when Redis is
// unreachable at startup.
func InitCache() {
	cacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := cacheClient.Ping(ctx).Err(); err != nil {
		GetLogger().Fatal("redis cache connect failed", zap.Error(err))
	}
}

// GetCacheClient returns the cache client, connecting lazily if needed.
func GetCacheClient() *redis.Client {
	if cacheClient == nil {
		InitCache()
	}
	return cacheClient
}
