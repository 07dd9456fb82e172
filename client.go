package rsmq

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the typed facade over the queue engine. T is the payload type a
// Codec converts to and from the raw bytes stored in Redis; most callers
// want StringCodec or BytesCodec, but any Codec[T] works.
type Client[T any] struct {
	engine *engine
	codec  Codec[T]
	close  func() error
}

// NewClient opens one dedicated connection to Redis and returns a Client
// backed by it. Every call on the returned Client is serialized onto that
// single connection (go-redis's *redis.Conn does not itself multiplex
// commands), which matches the upstream implementations' "single socket"
// client model; use NewPooledClient instead for concurrent throughput.
func NewClient[T any](ctx context.Context, opts Options, codec Codec[T]) (*Client[T], error) {
	redisOpts, err := redisOptions(opts)
	if err != nil {
		return nil, err
	}

	rc := redis.NewClient(redisOpts)
	conn := rc.Conn()
	if err := conn.Ping(ctx).Err(); err != nil {
		_ = conn.Close()
		_ = rc.Close()
		return nil, wrapTransport(err)
	}

	eng := newEngine(conn, opts.namespace())
	if opts.Realtime {
		eng.realtimeHook = newRealtimeHook(conn, opts.namespace())
	}

	return &Client[T]{
		engine: eng,
		codec:  codec,
		close: func() error {
			if err := conn.Close(); err != nil {
				return err
			}
			return rc.Close()
		},
	}, nil
}

// NewPooledClient opens a pooled connection to Redis, sized per
// Options.PoolSize and Options.MinIdleConns, and returns a Client backed by
// it. Concurrent calls share the pool the way any other go-redis consumer
// would.
func NewPooledClient[T any](ctx context.Context, opts Options, codec Codec[T]) (*Client[T], error) {
	redisOpts, err := redisOptions(opts)
	if err != nil {
		return nil, err
	}
	redisOpts.PoolSize = opts.PoolSize
	redisOpts.MinIdleConns = opts.MinIdleConns

	rc := redis.NewClient(redisOpts)
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, wrapTransport(err)
	}

	eng := newEngine(rc, opts.namespace())
	if opts.Realtime {
		eng.realtimeHook = newRealtimeHook(rc, opts.namespace())
	}

	return &Client[T]{
		engine: eng,
		codec:  codec,
		close:  rc.Close,
	}, nil
}

func redisOptions(o Options) (*redis.Options, error) {
	tlsConfig, err := buildTLSConfig(o)
	if err != nil {
		return nil, err
	}
	return &redis.Options{
		Addr:      o.addr(),
		DB:        o.DB,
		Username:  o.Username,
		Password:  o.Password,
		TLSConfig: tlsConfig,
	}, nil
}

// Close releases the underlying Redis connection(s).
func (c *Client[T]) Close() error {
	return c.close()
}

// CreateQueue creates a new named queue. It returns ErrQueueExists if the
// queue is already present.
func (c *Client[T]) CreateQueue(ctx context.Context, qname string, opts ...QueueOption) error {
	return c.engine.createQueue(ctx, qname, opts...)
}

// DeleteQueue removes a queue and every message in it.
func (c *Client[T]) DeleteQueue(ctx context.Context, qname string) error {
	return c.engine.deleteQueue(ctx, qname)
}

// ListQueues returns every queue name registered under this client's
// namespace.
func (c *Client[T]) ListQueues(ctx context.Context) ([]string, error) {
	return c.engine.listQueues(ctx)
}

// GetQueueAttributes returns a queue's configuration and live statistics.
func (c *Client[T]) GetQueueAttributes(ctx context.Context, qname string) (*QueueAttributes, error) {
	return c.engine.getQueueAttributes(ctx, qname)
}

// SetQueueAttributes updates one or more of a queue's visibility timeout,
// delay or maxsize, and returns its attributes afterward. At least one
// QueueOption is required.
func (c *Client[T]) SetQueueAttributes(ctx context.Context, qname string, opts ...QueueOption) (*QueueAttributes, error) {
	return c.engine.setQueueAttributes(ctx, qname, opts...)
}

// SendMessage encodes body with this client's Codec and enqueues it,
// returning the new message's id.
func (c *Client[T]) SendMessage(ctx context.Context, qname string, body T, opts ...SendOption) (string, error) {
	payload := c.codec.Encode(body)
	return c.engine.sendMessage(ctx, qname, payload, opts...)
}

// ReceiveMessage returns the oldest visible message, hiding it from other
// consumers for the queue's visibility timeout (or the override supplied),
// or (nil, nil) if no message is currently visible.
func (c *Client[T]) ReceiveMessage(ctx context.Context, qname string, opts ...ReceiveOption) (*Message[T], error) {
	raw, err := c.engine.receiveMessage(ctx, qname, opts...)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return c.decode(raw)
}

// PopMessage atomically returns and removes the oldest visible message, or
// (nil, nil) if no message is currently visible.
func (c *Client[T]) PopMessage(ctx context.Context, qname string) (*Message[T], error) {
	raw, err := c.engine.popMessage(ctx, qname)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return c.decode(raw)
}

// ChangeMessageVisibility resets how much longer a received message stays
// hidden from other consumers.
func (c *Client[T]) ChangeMessageVisibility(ctx context.Context, qname, id string, vt time.Duration) error {
	return c.engine.changeMessageVisibility(ctx, qname, id, vt)
}

// DeleteMessage removes a message by id, reporting whether it was still
// present.
func (c *Client[T]) DeleteMessage(ctx context.Context, qname, id string) (bool, error) {
	return c.engine.deleteMessage(ctx, qname, id)
}

func (c *Client[T]) decode(raw *rawMessage) (*Message[T], error) {
	body, err := c.codec.Decode(raw.body)
	if err != nil {
		return nil, &DecodeError{Raw: raw.body, Err: err}
	}
	return &Message[T]{
		ID:            raw.id,
		Body:          body,
		ReceiveCount:  raw.receiveCount,
		FirstReceived: raw.firstReceived,
		Sent:          raw.sent,
	}, nil
}
