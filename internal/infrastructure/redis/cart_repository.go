package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/freshkart/storefront/internal/domain/cart"
	"github.com/freshkart/storefront/internal/domain/storage"
)

// CartRepository keeps carts in redis as JSON blobs keyed per user, the way
// the storefront's session tier stores them. A zero TTL keeps carts forever.
type CartRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewCartRepository(client *redis.Client, serviceName string, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		prefix: serviceName,
		ttl:    ttl,
	}
}

func (r *CartRepository) key(userID string) string {
	return fmt.Sprintf("%s:cart:%s", r.prefix, userID)
}

func (r *CartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	raw, err := r.client.Get(ctx, r.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.New(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart repository: get: %w", errors.Join(storage.ErrUnavailable, err))
	}

	var c domain.Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("cart repository: decode: %w", err)
	}
	return &c, nil
}

func (r *CartRepository) Save(ctx context.Context, c *domain.Cart) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("cart repository: encode: %w", err)
	}
	if err := r.client.Set(ctx, r.key(c.UserID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("cart repository: set: %w", errors.Join(storage.ErrUnavailable, err))
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, r.key(userID)).Err(); err != nil {
		return fmt.Errorf("cart repository: del: %w", errors.Join(storage.ErrUnavailable, err))
	}
	return nil
}
