package store

import (
	"context"
	"time"

	"booking_service/domain"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const sessionTTL = 12 * time.Hour

type SessionRedisCache struct {
	client *redis.Client
	tracer trace.Tracer
	logger *logrus.Logger
}

func NewSessionRedisCache(client *redis.Client, tracer trace.Tracer, logger *logrus.Logger) domain.SessionCache {
	return &SessionRedisCache{
		client: client,
		tracer: tracer,
		logger: logger,
	}
}

func (cache *SessionRedisCache) PostCacheData(ctx context.Context, key string, value string) error {
	ctx, span := cache.tracer.Start(ctx, "SessionRedisCache.PostCacheData")
	defer span.End()

	result := cache.client.Set(key, value, sessionTTL)
	if result.Err() != nil {
		span.SetStatus(codes.Error, "Error posting cached value")
		cache.logger.Errorf("redis set error: %s", result.Err())
		return result.Err()
	}
	return nil
}

func (cache *SessionRedisCache) GetCachedValue(ctx context.Context, key string) (string, error) {
	ctx, span := cache.tracer.Start(ctx, "SessionRedisCache.GetCachedValue")
	defer span.End()

	result := cache.client.Get(key)
	value, err := result.Result()
	if err != nil {
		span.SetStatus(codes.Error, "Error getting cached value")
		return "", err
	}
	return value, nil
}

func (cache *SessionRedisCache) DelCachedValue(ctx context.Context, key string) error {
	ctx, span := cache.tracer.Start(ctx, "SessionRedisCache.DelCachedValue")
	defer span.End()

	result := cache.client.Del(key)
	if result.Err() != nil {
		span.SetStatus(codes.Error, "Error deleting cached value")
		cache.logger.Errorf("redis del error: %s", result.Err())
		return result.Err()
	}
	return nil
}
