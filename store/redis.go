package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/go-redis/redis/v8"
	"github.com/rotisserie/eris"

	"companyintel/model"
)

// RecordsHash is the Redis hash holding every record, keyed by company key.
const RecordsHash = "companyintel:records"

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore keeps records as JSON values in a single Redis hash.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	if opts.Addr == "" {
		opts.Addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, eris.Wrapf(err, "store: connect redis %s", opts.Addr)
	}
	return &RedisStore{client: client}, nil
}

// Put stores rec under key.
func (s *RedisStore) Put(ctx context.Context, key string, rec model.CompanyRecord) error {
	if err := validKey(key); err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "store: marshal record")
	}
	if err := s.client.HSet(ctx, RecordsHash, key, data).Err(); err != nil {
		return eris.Wrapf(err, "store: redis put %s", key)
	}
	return nil
}

// Get returns the record stored under key.
func (s *RedisStore) Get(ctx context.Context, key string) (model.CompanyRecord, error) {
	var rec model.CompanyRecord
	data, err := s.client.HGet(ctx, RecordsHash, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, eris.Wrapf(err, "store: redis get %s", key)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, eris.Wrapf(err, "store: decode %s", key)
	}
	return rec, nil
}

// List returns every record in the hash.
func (s *RedisStore) List(ctx context.Context) ([]Entry, error) {
	all, err := s.client.HGetAll(ctx, RecordsHash).Result()
	if err != nil {
		return nil, eris.Wrap(err, "store: redis list")
	}

	entries := make([]Entry, 0, len(all))
	for key, data := range all {
		var rec model.CompanyRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			continue
		}
		entries = append(entries, Entry{Key: key, Record: rec})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
