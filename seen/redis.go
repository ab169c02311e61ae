package seen

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"dealfeed/types"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis connection and hash key
type RedisConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	Key      string        // redis hash holding id -> deal JSON
	TTL      time.Duration // sliding expiry; zero disables
}

// RedisStore keeps deals in a single Redis hash so every server instance shares them
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore connects and verifies the server with a ping
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return NewRedisStoreWithClient(client, cfg.Key, cfg.TTL), nil
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(client *redis.Client, key string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, key: key, ttl: ttl}
}

// Close closes the underlying Redis client
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) Has(ctx context.Context, id string) (bool, error) {
	ok, err := r.client.HExists(ctx, r.key, id).Result()
	if err != nil {
		return false, fmt.Errorf("redis HEXISTS %s: %w", id, err)
	}
	return ok, nil
}

// Put stores the item and refreshes the key's expiry
func (r *RedisStore) Put(ctx context.Context, item types.DealItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal deal %s: %w", item.ID, err)
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, r.key, item.ID, data)
	if r.ttl > 0 {
		pipe.Expire(ctx, r.key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis HSET %s: %w", item.ID, err)
	}
	return nil
}

// All returns every stored deal ordered by id; undecodable entries are skipped
func (r *RedisStore) All(ctx context.Context) ([]types.DealItem, error) {
	raw, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis HGETALL: %w", err)
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]types.DealItem, 0, len(ids))
	for _, id := range ids {
		var item types.DealItem
		if err := json.Unmarshal([]byte(raw[id]), &item); err != nil {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *RedisStore) Len(ctx context.Context) (int, error) {
	n, err := r.client.HLen(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis HLEN: %w", err)
	}
	return int(n), nil
}
