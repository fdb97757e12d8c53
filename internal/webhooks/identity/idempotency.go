package identitywebhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studocs/studocs-backend/pkg/redis"
)

// IdempotencyGuard deduplicates webhook deliveries by message id. The
// provider retries until it sees a 2xx, so replays of an already-processed
// delivery are expected traffic.
type IdempotencyGuard struct {
	store redis.IdempotencyStore
	ttl   time.Duration
	scope string
}

func NewIdempotencyGuard(store redis.IdempotencyStore, ttl time.Duration, scope string) (*IdempotencyGuard, error) {
	if store == nil {
		return nil, errors.New("idempotency store is required")
	}
	if ttl < 0 {
		return nil, errors.New("ttl must be non-negative")
	}
	if scope == "" {
		return nil, errors.New("scope is required")
	}
	return &IdempotencyGuard{
		store: store,
		ttl:   ttl,
		scope: scope,
	}, nil
}

// CheckAndMark returns true when the message id was already seen. A fresh id
// is marked atomically so concurrent replays race on a single SETNX.
func (g *IdempotencyGuard) CheckAndMark(ctx context.Context, messageID string) (bool, error) {
	if messageID == "" {
		return false, errors.New("message id is required")
	}
	key := g.store.IdempotencyKey(g.scope, messageID)
	set, err := g.store.SetNX(ctx, key, "1", g.ttl)
	if err != nil {
		return false, fmt.Errorf("set idempotency key: %w", err)
	}
	return !set, nil
}

// Delete unmarks a message id so the provider's retry can reprocess it after
// a handler failure.
func (g *IdempotencyGuard) Delete(ctx context.Context, messageID string) error {
	if messageID == "" {
		return errors.New("message id is required")
	}
	key := g.store.IdempotencyKey(g.scope, messageID)
	return g.store.Del(ctx, key)
}
