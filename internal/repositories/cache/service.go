package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cardvault/internal/models"

	"github.com/redis/go-redis/v9"
)

const paymentMethodListKey = "payment_methods:list"

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Payment method list caching. The cached value is the display projection,
// never the vault tokens.
func (s *CacheService) CachePaymentMethods(ctx context.Context, methods []models.PaymentMethodDisplay) error {
	return s.Set(ctx, paymentMethodListKey, methods)
}

func (s *CacheService) GetPaymentMethods(ctx context.Context) ([]models.PaymentMethodDisplay, bool, error) {
	var methods []models.PaymentMethodDisplay
	found, err := s.Get(ctx, paymentMethodListKey, &methods)
	if err != nil || !found {
		return nil, false, err
	}
	return methods, true, nil
}

func (s *CacheService) InvalidatePaymentMethods(ctx context.Context) error {
	return s.Delete(ctx, paymentMethodListKey)
}

// HealthCheck pings Redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
