package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rewardof/FieldBookingApp/internal/models"
)

// BookingEventsChannel is the pub/sub channel booking events go to.
const BookingEventsChannel = "booking:events"

// InitRedis initializes the Redis client
func InitRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test the connection
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// RedisCodeGuard holds short lived keys so a code is not sent twice while
// the first send is still in flight or valid.
type RedisCodeGuard struct {
	client *redis.Client
}

func NewRedisCodeGuard(client *redis.Client) *RedisCodeGuard {
	return &RedisCodeGuard{client: client}
}

func (g *RedisCodeGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := g.client.SetNX(ctx, "otp:guard:"+key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire otp guard: %w", err)
	}
	return ok, nil
}

func (g *RedisCodeGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, "otp:guard:"+key).Err()
}

// RedisEventPublisher publishes booking events to Redis pub/sub
type RedisEventPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{client: client, channel: BookingEventsChannel}
}

func (p *RedisEventPublisher) PublishBookingEvent(ctx context.Context, event models.BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, data).Err()
}
