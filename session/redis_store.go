package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the storage key used when none is configured.
const DefaultRedisKey = "rsclient:session"

// RedisStore persists the session record as one JSON blob under a single
// redis key, for consumers that share a session across processes.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a redis-backed store. An empty key selects
// DefaultRedisKey.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Load fetches and decodes the record. A corrupt blob is deleted and
// reported as absent.
func (s *RedisStore) Load(ctx context.Context) (*Record, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	rec, err := decode(data)
	if err != nil {
		_ = s.client.Del(ctx, s.key).Err()
		return nil, nil
	}
	return rec, nil
}

// Save stores the record with no expiry; the token's own lifetime bounds
// the session.
func (s *RedisStore) Save(ctx context.Context, rec *Record) error {
	data, err := encode(rec)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Clear deletes the record.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
