package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces session keys in a shared Redis.
const DefaultKeyPrefix = "sightline:session:"

// maxUpdateAttempts bounds optimistic retries when a session changes
// between read and write.
const maxUpdateAttempts = 5

// RedisStore keeps sessions as JSON values that expire with the session.
// The store does not own the client.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore uses client with keys under prefix. An empty prefix selects
// [DefaultKeyPrefix].
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(id uuid.UUID) string {
	return s.prefix + id.String()
}

// Get loads and decodes the session, or returns SESSION_NOT_FOUND when the
// key is missing or the session has expired.
func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.get(ctx, s.client, id)
}

func (s *RedisStore) get(ctx context.Context, c redis.Cmdable, id uuid.UUID) (*Session, error) {
	data, err := c.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if sess.IsExpired() {
		return nil, notFound(id)
	}
	return &sess, nil
}

// Set writes the session with its remaining lifetime as the key TTL. An
// already expired session is deleted instead.
func (s *RedisStore) Set(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := sess.TTL()
	if ttl == 0 {
		return s.Delete(ctx, sess.ID)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Update reads, modifies and writes the session inside a WATCH transaction,
// retrying when another writer got there first.
func (s *RedisStore) Update(ctx context.Context, id uuid.UUID, fn func(*Session) error) (*Session, error) {
	key := s.key(id)
	var result *Session

	txf := func(tx *redis.Tx) error {
		sess, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(sess); err != nil {
			return err
		}
		sess.ID = id
		data, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, redis.KeepTTL)
			return nil
		})
		if err == nil {
			result = sess
		}
		return err
	}

	for i := 0; i < maxUpdateAttempts; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, fmt.Errorf("update session %s: too many concurrent writers", id)
}

// Delete removes the session key. Deleting a missing session is not an error.
func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

// Cleanup is a no-op: Redis expires session keys itself.
func (s *RedisStore) Cleanup(context.Context) (int, error) { return 0, nil }

var _ Store = (*RedisStore)(nil)
