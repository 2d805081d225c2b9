package resultcache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/changlade/intelligent-dashboard-demo/internal/infrastructure/redis"
)

// Query results are immutable once a statement has executed, but attachments
// are only re-fetched within one rendering pass, so a short lifetime is enough.
const ResultLifetime = 60 * time.Second

// Store caches raw query-result payloads keyed by conversation, message and
// attachment. A miss is (nil, nil).
type Store interface {
	Set(ctx context.Context, key string, payload map[string]any) error
	Get(ctx context.Context, key string) (map[string]any, error)
}

type RedisStore struct {
	redisService *redis.Service
}

type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	payload   map[string]any
	expiresAt time.Time
}

type Service struct {
	store   Store
	backend string
}

func NewService(redisService *redis.Service) *Service {
	if redisService != nil {
		if err := redisService.Ping(context.Background()); err != nil {
			log.Error().Err(err).Msg("Redis connection failed")
			log.Warn().Msg("Falling back to in-memory result caching")
			return &Service{store: newMemoryStore(), backend: "memory"}
		}
		log.Info().Msg("Using Redis for query result caching")
		return &Service{store: &RedisStore{redisService: redisService}, backend: "redis"}
	}

	log.Info().Msg("Using in-memory query result caching")
	return &Service{store: newMemoryStore(), backend: "memory"}
}

func newMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Backend names the storage backing this cache, for health reporting.
func (s *Service) Backend() string {
	return s.backend
}

// Key builds the cache key for one attachment's query result.
func (s *Service) Key(conversationID, messageID, attachmentID string) string {
	return fmt.Sprintf("QueryResult:%s:%s:%s", conversationID, messageID, attachmentID)
}

func (s *Service) Put(ctx context.Context, key string, payload map[string]any) {
	if err := s.store.Set(ctx, key, payload); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to cache query result")
	}
}

func (s *Service) Lookup(ctx context.Context, key string) map[string]any {
	payload, err := s.store.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Query result cache lookup failed")
		return nil
	}
	return payload
}

// Redis Store implementation
func (rs *RedisStore) Set(ctx context.Context, key string, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return rs.redisService.Set(ctx, key, string(data), ResultLifetime)
}

func (rs *RedisStore) Get(ctx context.Context, key string) (map[string]any, error) {
	data, err := rs.redisService.Get(ctx, key)
	if err != nil {
		if redis.IsMissing(err) {
			return nil, nil
		}
		return nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Memory Store implementation
func (ms *MemoryStore) Set(ctx context.Context, key string, payload map[string]any) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.entries[key] = memoryEntry{
		payload:   payload,
		expiresAt: ms.now().Add(ResultLifetime),
	}
	return nil
}

func (ms *MemoryStore) Get(ctx context.Context, key string) (map[string]any, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	entry, exists := ms.entries[key]
	if !exists || ms.now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.payload, nil
}
