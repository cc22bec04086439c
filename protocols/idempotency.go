package protocols

import "context"

// IdempotencyGateway marks idempotency keys as in flight. Reserve returns
// payment.ErrInFlight when the key is already held.
type IdempotencyGateway interface {
	ReserveIdempotencyKey(ctx context.Context, idempotencyKey string) error
	ReleaseIdempotencyKey(ctx context.Context, idempotencyKey string) error
}
