package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"studyaid-backend/internal/models"
)

// ProgressChannel is the pub/sub channel carrying progress for one session.
func ProgressChannel(sessionID uuid.UUID) string {
	return fmt.Sprintf("generation_updates:%s", sessionID.String())
}

type ProgressPublisher interface {
	Publish(ctx context.Context, sessionID uuid.UUID, msg models.WSMessage)
}

type RedisProgressPublisher struct {
	redis *redis.Client
}

func NewRedisProgressPublisher(redisClient *redis.Client) *RedisProgressPublisher {
	return &RedisProgressPublisher{redis: redisClient}
}

// Publish sends a WebSocket update via Redis pub/sub
func (p *RedisProgressPublisher) Publish(ctx context.Context, sessionID uuid.UUID, msg models.WSMessage) {
	data, _ := json.Marshal(msg)
	p.redis.Publish(ctx, ProgressChannel(sessionID), string(data))
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, uuid.UUID, models.WSMessage) {}
