package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix is the key prefix for sessions stored in Redis.
const DefaultPrefix = "folio:session:"

// RedisStore keeps sessions in Redis as JSON documents.
type RedisStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithTTL expires sessions after ttl of inactivity. Zero keeps them forever.
func WithTTL(ttl time.Duration) (opt RedisOption) {
	opt = func(s *RedisStore) {
		s.ttl = ttl
	}
	return opt
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) (opt RedisOption) {
	opt = func(s *RedisStore) {
		s.prefix = prefix
	}
	return opt
}

// NewRedisStore connects to the Redis server at address.
func NewRedisStore(address, password string, db int, opts ...RedisOption) (store *RedisStore) {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	store = NewRedisStoreFromClient(client, opts...)
	return store
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *backend.Client, opts ...RedisOption) (store *RedisStore) {
	store = &RedisStore{
		client: client,
		prefix: DefaultPrefix,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (r *RedisStore) key(id string) (key string) {
	key = r.prefix + id
	return key
}

// Ping checks the connection.
func (r *RedisStore) Ping(ctx context.Context) (err error) {
	err = r.client.Ping(ctx).Err()
	if err != nil {
		err = errors.Wrap(err, "redis ping failed")
	}
	return err
}

// Create starts and stores a new session.
func (r *RedisStore) Create(ctx context.Context, workflow string) (s Session, err error) {
	s, err = New(workflow)
	if err != nil {
		return s, err
	}

	var data []byte
	data, err = r.encode(s)
	if err != nil {
		return s, err
	}

	err = r.client.Set(ctx, r.key(s.ID), data, r.ttl).Err()
	if err != nil {
		err = errors.Wrap(err, "failed to save session to redis")
		return s, err
	}

	return s, err
}

// Get loads a session.
func (r *RedisStore) Get(ctx context.Context, id string) (s Session, err error) {
	var val string
	val, err = r.client.Get(ctx, r.key(id)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			err = ErrNotFound
			return s, err
		}
		err = errors.Wrap(err, "failed to get session from redis")
		return s, err
	}

	err = json.Unmarshal([]byte(val), &s)
	if err != nil {
		err = errors.Wrap(err, "failed to unmarshal session")
		return s, err
	}

	if s.Fields == nil {
		s.Fields = map[string]any{}
	}

	return s, err
}

// Save replaces a stored session and refreshes its expiry. The write only
// happens if the key still exists, so deleted or expired sessions are not
// recreated.
func (r *RedisStore) Save(ctx context.Context, s Session) (err error) {
	if s.ID == "" {
		err = ErrNotFound
		return err
	}

	s.UpdatedAt = time.Now().UTC()

	var data []byte
	data, err = r.encode(s)
	if err != nil {
		return err
	}

	var replaced bool
	replaced, err = r.client.SetXX(ctx, r.key(s.ID), data, r.ttl).Result()
	if err != nil && !errors.Is(err, backend.Nil) {
		err = errors.Wrap(err, "failed to save session to redis")
		return err
	}

	if !replaced {
		err = ErrNotFound
		return err
	}

	err = nil
	return err
}

// Delete removes a session.
func (r *RedisStore) Delete(ctx context.Context, id string) (err error) {
	var removed int64
	removed, err = r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		err = errors.Wrap(err, "failed to delete session from redis")
		return err
	}

	if removed == 0 {
		err = ErrNotFound
		return err
	}

	return err
}

// Close closes the client.
func (r *RedisStore) Close() (err error) {
	err = r.client.Close()
	return err
}

func (r *RedisStore) encode(s Session) (data []byte, err error) {
	data, err = json.Marshal(s)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal session")
		return data, err
	}
	return data, err
}
