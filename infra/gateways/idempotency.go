package gateways

import (
	"context"
	"sync"
	"time"

	"github.com/giovaniif/locallawnpro/domain/payment"
)

type IdempotencyGatewayMemory struct {
	mutex           sync.Mutex
	ttl             time.Duration
	now             func() time.Time
	idempotencyKeys map[string]time.Time
}

func NewIdempotencyGatewayMemory() *IdempotencyGatewayMemory {
	return &IdempotencyGatewayMemory{
		ttl:             idempotencyTTL,
		now:             time.Now,
		idempotencyKeys: make(map[string]time.Time),
	}
}

func (c *IdempotencyGatewayMemory) ReserveIdempotencyKey(ctx context.Context, idempotencyKey string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	if expiresAt, exists := c.idempotencyKeys[idempotencyKey]; exists && now.Before(expiresAt) {
		return payment.ErrInFlight
	}
	c.idempotencyKeys[idempotencyKey] = now.Add(c.ttl)
	return nil
}

func (c *IdempotencyGatewayMemory) ReleaseIdempotencyKey(ctx context.Context, idempotencyKey string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.idempotencyKeys, idempotencyKey)
	return nil
}
