package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Pageblan/Carepulse/internal/catalog/domain"
)

const listKey = "medicines"

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r RedisCache) GetList(ctx context.Context) ([]domain.Medicine, error) {
	data, err := r.client.Get(ctx, listKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var medicines []domain.Medicine
	if err2 := json.Unmarshal(data, &medicines); err2 != nil {
		return nil, fmt.Errorf("unmarshal medicines failed: %w", err2)
	}
	return medicines, nil
}

func (r RedisCache) SetList(ctx context.Context, medicines []domain.Medicine) error {
	data, err := json.Marshal(medicines)
	if err != nil {
		return fmt.Errorf("marshal medicines failed: %w", err)
	}

	if err := r.client.Set(ctx, listKey, data, r.ttl()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r RedisCache) Get(ctx context.Context, id string) (*domain.Medicine, error) {
	data, err := r.client.Get(ctx, itemKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var med domain.Medicine
	if err2 := json.Unmarshal(data, &med); err2 != nil {
		return nil, fmt.Errorf("unmarshal medicine failed: %w", err2)
	}
	return &med, nil
}

func (r RedisCache) Set(ctx context.Context, m *domain.Medicine) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal medicine failed: %w", err)
	}

	if err := r.client.Set(ctx, itemKey(m.ID), data, r.ttl()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Invalidate drops the list key. Item keys age out on their own TTL;
// catalog documents are immutable once created apart from admin edits,
// which go through SetList again anyway.
func (r RedisCache) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, listKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// ttl jitters the base TTL so a cold start does not expire everything at once.
func (r RedisCache) ttl() time.Duration {
	return r.baseTTL + time.Duration(rand.Intn(5))*time.Minute
}

func itemKey(id string) string {
	return fmt.Sprintf("medicine:%s", id)
}
