package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "collection:"
	channelPrefix = "store:changed:"
)

// RedisStore keeps each collection under a single Redis key and publishes a
// change event after every write.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a RedisStore and verifies connectivity.
func NewRedis(ctx context.Context, client *redis.Client) (*RedisStore, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("store: ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Load(ctx context.Context, collection string) ([]byte, error) {
	data, err := s.client.Get(ctx, keyPrefix+collection).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: load %s: %w", collection, err)
	}
	return data, nil
}

func (s *RedisStore) Save(ctx context.Context, collection string, data []byte) error {
	if err := s.client.Set(ctx, keyPrefix+collection, data, 0).Err(); err != nil {
		return fmt.Errorf("store: save %s: %w", collection, err)
	}
	s.publish(ctx, collection)
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, collection string) error {
	if err := s.client.Del(ctx, keyPrefix+collection).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("store: delete %s: %w", collection, err)
	}
	s.publish(ctx, collection)
	return nil
}

// Watch subscribes to change events for a collection. The returned channel is
// closed when stop is called or the context ends.
func (s *RedisStore) Watch(ctx context.Context, collection string) (<-chan struct{}, func()) {
	sub := s.client.Subscribe(ctx, channelPrefix+collection)
	out := make(chan struct{}, 1)
	done := make(chan struct{})

	go func() {
		defer close(out)
		ch := sub.Channel()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
					// A pending tick already signals staleness.
				}
			}
		}
	}()

	var stopped bool
	stop := func() {
		if stopped {
			return
		}
		stopped = true
		close(done)
		_ = sub.Close()
	}
	return out, stop
}

func (s *RedisStore) publish(ctx context.Context, collection string) {
	// Best effort: a missed notification only delays cache refresh.
	_ = s.client.Publish(ctx, channelPrefix+collection, "1").Err()
}
