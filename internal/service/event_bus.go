package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/examhall/examhall-backend/internal/config"
)

// Exam lifecycle event types.
const (
	EventExamStarted = "started"
	EventExamStopped = "stopped"
)

// ExamEvent is the message pushed to connected clients when the exam
// lifecycle changes, so they do not have to poll the status endpoint.
type ExamEvent struct {
	Type            string     `json:"type"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	At              time.Time  `json:"at"`
}

// EventPublisher fans out exam lifecycle events.
type EventPublisher interface {
	PublishExamEvent(ctx context.Context, ev ExamEvent) error
}

// RedisEventBus publishes lifecycle events on the shared Redis channel
// consumed by the WebSocket event stream.
type RedisEventBus struct {
	rdb *redis.Client
}

// NewRedisEventBus creates a new RedisEventBus.
func NewRedisEventBus(rdb *redis.Client) *RedisEventBus {
	return &RedisEventBus{rdb: rdb}
}

// PublishExamEvent marshals the event and publishes it.
func (b *RedisEventBus) PublishExamEvent(ctx context.Context, ev ExamEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, config.CacheKey.ExamEventsChannel(), payload).Err()
}
