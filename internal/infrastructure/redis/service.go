package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/changlade/intelligent-dashboard-demo/internal/config"
)

// Service is a thin wrapper around the Redis client, used as the backing
// store for short-lived caches.
type Service struct {
	client *redis.Client
}

// NewService connects to Redis if a URL is configured. It returns nil when
// Redis is unconfigured or unreachable; callers fall back to in-memory
// storage in that case.
func NewService() *Service {
	url := config.GetRedisURL()
	if url == "" {
		log.Warn().Msg("Redis URL not configured - falling back to in-memory caching")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     url,
		Password: config.GetRedisPassword(),
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Error().Err(err).Str("addr", url).Msg("Failed to establish Redis connection")
		return nil
	}

	log.Info().Str("addr", url).Msg("Redis connection established")
	return &Service{client: client}
}

// Set stores a value with an expiration.
func (s *Service) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := s.client.Set(ctx, key, value, expiration).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Redis SET operation failed")
		return err
	}
	return nil
}

// Get retrieves a value. A missing key returns redis.Nil as the error.
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil && err != redis.Nil {
		log.Error().Err(err).Str("key", key).Msg("Redis GET operation failed")
	}
	return val, err
}

// IsMissing reports whether err signals an absent key rather than a failure.
func IsMissing(err error) bool {
	return err == redis.Nil
}

// Ping checks if Redis is accessible.
func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *Service) Close() error {
	return s.client.Close()
}
