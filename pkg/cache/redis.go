package cache

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/faculty-dashboard-api/pkg/config"
)

const (
	pingAttempts = 3
	pingTimeout  = 2 * time.Second
)

// NewRedis connects to the session and view-cache Redis. It returns a nil
// client when Redis is disabled, and gives up after a few failed pings.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  pingTimeout,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		if err = ping(ctx, client); err == nil {
			return client, nil
		}
		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
		}
	}
	_ = client.Close()
	return nil, fmt.Errorf("ping redis after %d attempts: %w", pingAttempts, err)
}

func ping(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return client.Ping(ctx).Err()
}
