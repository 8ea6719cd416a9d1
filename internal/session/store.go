package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/ariefcatur/go-bbq-preorder/internal/orders"
	"github.com/ariefcatur/go-bbq-preorder/internal/redisx"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"time"
)

var ErrNotFound = errors.New("cart session not found")

// Store keeps one orders.Cart per customer session.
type Store interface {
	Create(ctx context.Context, c orders.Cart) (string, error)
	Get(ctx context.Context, id string) (orders.Cart, error)
	Save(ctx context.Context, id string, c orders.Cart) error
	Delete(ctx context.Context, id string) error
}

type RedisStore struct {
	Redis redis.Cmdable
	TTL   time.Duration
}

func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{Redis: rdb, TTL: redisx.TTLCartSession}
}

func key(id string) string { return fmt.Sprintf(redisx.KeyCartSession, id) }

func (s *RedisStore) Create(ctx context.Context, c orders.Cart) (string, error) {
	id := uuid.NewString()
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	ok, err := s.Redis.SetNX(ctx, key(id), b, s.TTL).Result()
	if err != nil {
		return "", fmt.Errorf("create cart session: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("create cart session: id collision %s", id)
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (orders.Cart, error) {
	b, err := s.Redis.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return orders.Cart{}, ErrNotFound
	}
	if err != nil {
		return orders.Cart{}, fmt.Errorf("get cart session: %w", err)
	}
	var c orders.Cart
	if err := json.Unmarshal(b, &c); err != nil {
		return orders.Cart{}, fmt.Errorf("decode cart session %s: %w", id, err)
	}
	return c, nil
}

// Save overwrites an existing session and slides its TTL.
func (s *RedisStore) Save(ctx context.Context, id string, c orders.Cart) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	ok, err := s.Redis.SetXX(ctx, key(id), b, s.TTL).Result()
	if err != nil {
		return fmt.Errorf("save cart session: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.Redis.Del(ctx, key(id)).Err()
}
