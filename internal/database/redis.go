package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClients keeps publishing and subscribing on separate connections so a
// busy subscription never delays a publish.
type RedisClients struct {
	Publisher  *redis.Client
	Subscriber *redis.Client
}

func NewRedisClients(ctx context.Context, redisURL string) (*RedisClients, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pub := redis.NewClient(opt)
	if err := pub.Ping(ctx).Err(); err != nil {
		pub.Close()
		return nil, fmt.Errorf("failed to ping Redis (publisher): %w", err)
	}

	subOpt := *opt
	sub := redis.NewClient(&subOpt)
	if err := sub.Ping(ctx).Err(); err != nil {
		pub.Close()
		sub.Close()
		return nil, fmt.Errorf("failed to ping Redis (subscriber): %w", err)
	}

	return &RedisClients{Publisher: pub, Subscriber: sub}, nil
}

func (r *RedisClients) Close() {
	r.Publisher.Close()
	r.Subscriber.Close()
}
