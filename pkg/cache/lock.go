package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Default tuning for Lock's acquire-with-retry loop.
const (
	DefaultLockTTL     = 10 * time.Second
	DefaultRetryDelay  = 100 * time.Millisecond
	DefaultMaxRetries  = 50
	DefaultLockTimeout = 5 * time.Second
)

var (
	// ErrLockNotAcquired is returned by TryLock when the key is already
	// held, and by Lock when every retry is exhausted.
	ErrLockNotAcquired = errors.New("cache: lock not acquired")
	// ErrLockNotOwned is returned by Unlock/Extend when the caller's token
	// no longer matches the value stored in Redis (expired, or held by a
	// different holder).
	ErrLockNotOwned = errors.New("cache: lock not owned")
)

var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`)

var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
else
	return 0
end
`)

// LockOptions configures Lock's acquire-with-retry behavior.
type LockOptions struct {
	TTL         time.Duration
	RetryDelay  time.Duration
	MaxRetries  int
	LockTimeout time.Duration
}

// DefaultLockOptions returns the package's default retry tuning.
func DefaultLockOptions() LockOptions {
	return LockOptions{
		TTL:         DefaultLockTTL,
		RetryDelay:  DefaultRetryDelay,
		MaxRetries:  DefaultMaxRetries,
		LockTimeout: DefaultLockTimeout,
	}
}

func generateLockValue() string {
	return uuid.NewString()
}

// DistributedLock is a held lock token. The zero value is not usable;
// obtain one via Client.TryLock or Client.Lock.
type DistributedLock struct {
	client *Client
	key    string
	value  string
	ttl    time.Duration
}

// Key returns the Redis key this lock guards.
func (l *DistributedLock) Key() string { return l.key }

// Value returns the random token identifying this holder.
func (l *DistributedLock) Value() string { return l.value }

// Unlock releases the lock, but only if it is still held by this token; a
// lock that already expired or was stolen returns ErrLockNotOwned.
func (l *DistributedLock) Unlock(ctx context.Context) error {
	n, err := unlockScript.Run(ctx, l.client.rdb, []string{l.key}, l.value).Int64()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLockNotOwned
	}
	return nil
}

// IsLocked reports whether this token currently holds the lock.
func (l *DistributedLock) IsLocked(ctx context.Context) (bool, error) {
	val, err := l.client.rdb.Get(ctx, l.key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == l.value, nil
}

// GetTTL returns the lock key's remaining time-to-live.
func (l *DistributedLock) GetTTL(ctx context.Context) (time.Duration, error) {
	return l.client.rdb.TTL(ctx, l.key).Result()
}

// Extend resets the lock's TTL to newTTL, failing with ErrLockNotOwned if
// this token no longer holds it.
func (l *DistributedLock) Extend(ctx context.Context, newTTL time.Duration) error {
	n, err := extendScript.Run(ctx, l.client.rdb, []string{l.key}, l.value, newTTL.Milliseconds()).Int64()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLockNotOwned
	}
	l.ttl = newTTL
	return nil
}

// TryLock attempts to acquire key once, failing immediately with
// ErrLockNotAcquired if it is already held.
func (c *Client) TryLock(ctx context.Context, key string, ttl time.Duration) (*DistributedLock, error) {
	value := generateLockValue()
	ok, err := c.rdb.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockNotAcquired
	}
	return &DistributedLock{client: c, key: key, value: value, ttl: ttl}, nil
}

// Lock acquires key, retrying per opts (or DefaultLockOptions if none is
// given) until LockTimeout elapses or MaxRetries is exhausted.
func (c *Client) Lock(ctx context.Context, key string, opts ...LockOptions) (*DistributedLock, error) {
	o := DefaultLockOptions()
	if len(opts) > 0 {
		o = opts[0]
	}

	deadline := time.Now().Add(o.LockTimeout)
	for attempt := 0; attempt <= o.MaxRetries; attempt++ {
		lock, err := c.TryLock(ctx, key, o.TTL)
		if err == nil {
			return lock, nil
		}
		if !errors.Is(err, ErrLockNotAcquired) {
			return nil, err
		}
		if time.Now().After(deadline) {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(o.RetryDelay):
		}
	}
	return nil, ErrLockNotAcquired
}

// WithLock acquires key with DefaultLockOptions, runs fn while holding it,
// and always releases the lock afterward.
func (c *Client) WithLock(ctx context.Context, key string, fn func() error) error {
	lock, err := c.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer lock.Unlock(ctx)
	return fn()
}
