package shared

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sequencer hands out monotonically increasing per-day sequence numbers for
// document numbering. Counting records in memory would mint duplicates across
// processes or reloads; implementations must be atomic.
type Sequencer interface {
	Next(ctx context.Context, name string, day time.Time) (int64, error)
}

// FormatDocNumber renders a document number such as SO250901-001 from a
// prefix, the issue date and a sequence value.
func FormatDocNumber(prefix string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s%s-%03d", prefix, day.Format("060102"), seq)
}

// RedisSequencer implements Sequencer with a Redis INCR per (name, day) key.
type RedisSequencer struct {
	client *redis.Client
}

// NewRedisSequencer constructs a RedisSequencer.
func NewRedisSequencer(client *redis.Client) *RedisSequencer {
	return &RedisSequencer{client: client}
}

func (s *RedisSequencer) Next(ctx context.Context, name string, day time.Time) (int64, error) {
	key := fmt.Sprintf("seq:%s:%s", name, day.Format("20060102"))
	seq, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("sequence %s: %w", name, err)
	}
	// Day-scoped counters do not need to outlive their day by much.
	_ = s.client.Expire(ctx, key, 48*time.Hour).Err()
	return seq, nil
}

// MemorySequencer is an in-process Sequencer for tests.
type MemorySequencer struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewMemorySequencer constructs an empty MemorySequencer.
func NewMemorySequencer() *MemorySequencer {
	return &MemorySequencer{counts: make(map[string]int64)}
}

func (s *MemorySequencer) Next(ctx context.Context, name string, day time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := name + ":" + day.Format("20060102")
	s.counts[key]++
	return s.counts[key], nil
}
