package gateways

import (
	"context"
	"fmt"
	"time"

	"github.com/giovaniif/locallawnpro/domain/payment"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyKeyPrefix = "idempotency:payment_intent:"
	idempotencyTTL       = 24 * time.Hour
)

type IdempotencyGatewayRedis struct {
	client *redis.Client
}

func NewIdempotencyGatewayRedis(client *redis.Client) *IdempotencyGatewayRedis {
	return &IdempotencyGatewayRedis{client: client}
}

func (c *IdempotencyGatewayRedis) key(idempotencyKey string) string {
	return idempotencyKeyPrefix + idempotencyKey
}

func (c *IdempotencyGatewayRedis) ReserveIdempotencyKey(ctx context.Context, idempotencyKey string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	_, err := c.client.SetArgs(ctx, c.key(idempotencyKey), "processing", redis.SetArgs{Mode: "NX", TTL: idempotencyTTL}).Result()
	if err == redis.Nil {
		return payment.ErrInFlight
	}
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *IdempotencyGatewayRedis) ReleaseIdempotencyKey(ctx context.Context, idempotencyKey string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := c.client.Del(ctx, c.key(idempotencyKey)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
