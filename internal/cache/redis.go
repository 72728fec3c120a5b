package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/tripbooking/config"
	"github.com/Domenick1991/tripbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client    *redis.Client
	searchTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, searchTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		searchTTL: searchTTL,
	}
}

func (c *RedisCache) GetSearchResults(ctx context.Context, key string) ([]domain.HotelSummary, error) {
	data, err := c.client.Get(ctx, searchKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var hotels []domain.HotelSummary
	if err := json.Unmarshal(data, &hotels); err != nil {
		return nil, err
	}
	return hotels, nil
}

func (c *RedisCache) SetSearchResults(ctx context.Context, key string, hotels []domain.HotelSummary) error {
	payload, err := json.Marshal(hotels)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, searchKey(key), payload, c.searchTTL).Err()
}

// AcquireRoomTypeLock guards the reservation hot path per room type.
// The row lock in the store is the authoritative exclusion; this keeps
// concurrent requests from piling up on it.
func (c *RedisCache) AcquireRoomTypeLock(ctx context.Context, roomTypeID string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, roomTypeLockKey(roomTypeID), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseRoomTypeLock(ctx context.Context, roomTypeID string) error {
	return c.client.Del(ctx, roomTypeLockKey(roomTypeID)).Err()
}

func searchKey(key string) string {
	return "cache:search:" + key
}

func roomTypeLockKey(roomTypeID string) string {
	return fmt.Sprintf("lock:roomtype:%s", roomTypeID)
}
