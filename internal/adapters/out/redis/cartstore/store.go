// Package cartstore keeps session carts in Redis as JSON snapshots.
package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 24 * time.Hour

// RedisCartStore implements ports.CartStore.
type RedisCartStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisCartStore(client redis.UniversalClient, ttl time.Duration) *RedisCartStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCartStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisCartStore) Get(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(customerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errs.NewObjectNotFoundError("cart", customerID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var snapshot cart.Snapshot
	if err = json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return cart.Restore(snapshot)
}

// Save overwrites the customer's cart and refreshes its expiry.
func (s *RedisCartStore) Save(ctx context.Context, customerID kernel.UUID, c *cart.Cart) error {
	data, err := json.Marshal(c.Snapshot())
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err = s.client.Set(ctx, cartKey(customerID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

func (s *RedisCartStore) Delete(ctx context.Context, customerID kernel.UUID) error {
	if err := s.client.Del(ctx, cartKey(customerID)).Err(); err != nil {
		return fmt.Errorf("redis delete cart: %w", err)
	}
	return nil
}

func cartKey(customerID kernel.UUID) string {
	return "cart:" + customerID.String()
}
