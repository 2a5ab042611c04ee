package configs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// OpenRedis returns nil without error when REDIS_ADDR is not configured.
func OpenRedis(ctx context.Context) (*redis.Client, error) {
	if LoadENV.RedisAddr == "" {
		log.Println("Redis not configured, login throttling disabled.")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        LoadENV.RedisAddr,
		Password:    LoadENV.RedisPassword,
		DB:          LoadENV.RedisDB,
		DialTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", LoadENV.RedisAddr, err)
	}

	log.Println("✅ Redis connected.")
	return rdb, nil
}
