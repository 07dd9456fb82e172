// Package cache wraps a pooled Redis client with a small set of generic
// key, hash, list and set helpers, plus the distributed lock in lock.go
// that rsmqctl takes around delete-queue so two admin processes do not
// run the same destructive operation concurrently.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures the pooled Redis connection a Client opens.
type Config struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// DefaultConfig returns a local Redis instance on db 0 with a small pool,
// suitable for a CLI process that only opens a handful of connections.
func DefaultConfig() Config {
	return Config{
		Addr:         "localhost:6379",
		Password:     "",
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 2,
	}
}

// Client is a thin, typed wrapper over *redis.Client.
type Client struct {
	rdb *redis.Client
}

// New opens a pooled connection per cfg. It does not ping the server;
// callers that need to fail fast should call Ping.
func New(cfg Config) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})
	return &Client{rdb: rdb}
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies connectivity to the server.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// GetClient returns the underlying *redis.Client for callers that need a
// command not wrapped here.
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Pipeline starts a non-transactional pipeline.
func (c *Client) Pipeline() redis.Pipeliner {
	return c.rdb.Pipeline()
}

// TxPipeline starts a MULTI/EXEC transactional pipeline.
func (c *Client) TxPipeline() redis.Pipeliner {
	return c.rdb.TxPipeline()
}

// Get returns the string value of key.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

// Set stores value at key with the given expiration (0 means no expiry).
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Exists reports whether key is present.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes key.
func (c *Client) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// Expire sets key's time-to-live.
func (c *Client) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.rdb.Expire(ctx, key, ttl).Err()
}

// TTL returns key's remaining time-to-live.
func (c *Client) TTL(ctx context.Context, key string) (time.Duration, error) {
	return c.rdb.TTL(ctx, key).Result()
}

// HSet sets a single hash field.
func (c *Client) HSet(ctx context.Context, key, field string, value interface{}) error {
	return c.rdb.HSet(ctx, key, field, value).Err()
}

// HGet returns a single hash field's value.
func (c *Client) HGet(ctx context.Context, key, field string) (string, error) {
	return c.rdb.HGet(ctx, key, field).Result()
}

// HGetAll returns every field/value pair in a hash.
func (c *Client) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return c.rdb.HGetAll(ctx, key).Result()
}

// HDel removes one hash field.
func (c *Client) HDel(ctx context.Context, key, field string) error {
	return c.rdb.HDel(ctx, key, field).Err()
}

// LPush pushes value onto the head of a list.
func (c *Client) LPush(ctx context.Context, key string, value interface{}) error {
	return c.rdb.LPush(ctx, key, value).Err()
}

// RPush pushes value onto the tail of a list.
func (c *Client) RPush(ctx context.Context, key string, value interface{}) error {
	return c.rdb.RPush(ctx, key, value).Err()
}

// LPop pops a value off the head of a list.
func (c *Client) LPop(ctx context.Context, key string) (string, error) {
	return c.rdb.LPop(ctx, key).Result()
}

// RPop pops a value off the tail of a list.
func (c *Client) RPop(ctx context.Context, key string) (string, error) {
	return c.rdb.RPop(ctx, key).Result()
}

// LRange returns a range of list elements.
func (c *Client) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return c.rdb.LRange(ctx, key, start, stop).Result()
}

// SAdd adds a member to a set.
func (c *Client) SAdd(ctx context.Context, key string, member interface{}) error {
	return c.rdb.SAdd(ctx, key, member).Err()
}

// SMembers returns every member of a set.
func (c *Client) SMembers(ctx context.Context, key string) ([]string, error) {
	return c.rdb.SMembers(ctx, key).Result()
}

// SIsMember reports whether member belongs to a set.
func (c *Client) SIsMember(ctx context.Context, key string, member interface{}) (bool, error) {
	return c.rdb.SIsMember(ctx, key, member).Result()
}

// SRem removes a member from a set.
func (c *Client) SRem(ctx context.Context, key string, member interface{}) error {
	return c.rdb.SRem(ctx, key, member).Err()
}
