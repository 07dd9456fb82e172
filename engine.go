package rsmq

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Default queue attributes, matching the upstream implementations' defaults.
const (
	defaultVisibilityTimeout = 30 * time.Second
	defaultDelay             = 0 * time.Second
	defaultMaxSize           = int64(65536)
)

// QueueOption configures CreateQueue and SetQueueAttributes.
type QueueOption func(*queueOptions)

type queueOptions struct {
	vt      *int64
	delay   *int64
	maxsize *int64
}

// WithVisibilityTimeout sets a queue's visibility timeout, in the inclusive
// range [0, 9999999000] milliseconds.
func WithVisibilityTimeout(d time.Duration) QueueOption {
	return func(o *queueOptions) {
		ms := d.Milliseconds()
		o.vt = &ms
	}
}

// WithDelay sets a queue's default send delay, in the inclusive range
// [0, 9999999000] milliseconds.
func WithDelay(d time.Duration) QueueOption {
	return func(o *queueOptions) {
		ms := d.Milliseconds()
		o.delay = &ms
	}
}

// WithMaxSize sets a queue's maximum message size in bytes, either a value
// in [1024, 65536] or -1 for unlimited.
func WithMaxSize(n int64) QueueOption {
	return func(o *queueOptions) {
		o.maxsize = &n
	}
}

// SendOption configures SendMessage.
type SendOption func(*sendOptions)

type sendOptions struct {
	delay *int64
}

// WithSendDelay overrides a queue's default delay for one message, in the
// inclusive range [0, 9999999000] milliseconds.
func WithSendDelay(d time.Duration) SendOption {
	return func(o *sendOptions) {
		ms := d.Milliseconds()
		o.delay = &ms
	}
}

// ReceiveOption configures ReceiveMessage.
type ReceiveOption func(*receiveOptions)

type receiveOptions struct {
	vt *int64
}

// WithVisibilityOverride overrides a queue's default visibility timeout for
// one receive, in the inclusive range [0, 9999999000] milliseconds.
func WithVisibilityOverride(d time.Duration) ReceiveOption {
	return func(o *receiveOptions) {
		ms := d.Milliseconds()
		o.vt = &ms
	}
}

// rawMessage is the engine-level message shape, before Codec decoding.
type rawMessage struct {
	id            string
	body          []byte
	receiveCount  uint64
	firstReceived time.Time
	sent          time.Time
}

// engine implements the nine RSMQ operations against an Executor. It holds
// no connection state of its own; Client wraps it with a Codec and exposes
// the typed, public-facing API.
type engine struct {
	ex Executor
	ns string

	// realtimeHook publishes a notification carrying a queue's post-send
	// message count. It is nil unless Options.Realtime is set, in which
	// case the facade wires it in at construction time; the engine itself
	// never reads Options. Errors are the hook's problem to log; a failed
	// publish must not invalidate an already-committed send.
	realtimeHook func(ctx context.Context, qname string, count int64)
}

func newEngine(ex Executor, ns string) *engine {
	return &engine{ex: ex, ns: ns}
}

func (e *engine) createQueue(ctx context.Context, qname string, opts ...QueueOption) error {
	if err := validateName(qname); err != nil {
		return err
	}

	o := queueOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	vt := defaultVisibilityTimeout.Milliseconds()
	if o.vt != nil {
		vt = *o.vt
	}
	delay := defaultDelay.Milliseconds()
	if o.delay != nil {
		delay = *o.delay
	}
	maxsize := defaultMaxSize
	if o.maxsize != nil {
		maxsize = *o.maxsize
	}

	if err := validateDuration("vt", vt); err != nil {
		return err
	}
	if err := validateDuration("delay", delay); err != nil {
		return err
	}
	if err := validateMaxSize(maxsize); err != nil {
		return err
	}

	timeCmd := e.ex.Time(ctx)
	if err := timeCmd.Err(); err != nil {
		return wrapTransport(err)
	}
	tsMs := uint64(timeCmd.Val().UnixMilli())
	key := configKey(e.ns, qname)

	pipe := e.ex.TxPipeline()
	created := pipe.HSetNX(ctx, key, "created", tsMs)
	pipe.HSetNX(ctx, key, "modified", tsMs)
	pipe.HSetNX(ctx, key, "vt", vt)
	pipe.HSetNX(ctx, key, "delay", delay)
	pipe.HSetNX(ctx, key, "maxsize", maxsize)
	pipe.HSetNX(ctx, key, "totalrecv", 0)
	pipe.HSetNX(ctx, key, "totalsent", 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return wrapTransport(err)
	}
	if !created.Val() {
		return ErrQueueExists
	}

	if err := e.ex.SAdd(ctx, registryKey(e.ns), qname).Err(); err != nil {
		return wrapTransport(err)
	}
	return nil
}

func (e *engine) deleteQueue(ctx context.Context, qname string) error {
	if err := validateName(qname); err != nil {
		return err
	}

	pipe := e.ex.TxPipeline()
	configDel := pipe.Del(ctx, configKey(e.ns, qname))
	pipe.Del(ctx, indexKey(e.ns, qname))
	pipe.SRem(ctx, registryKey(e.ns), qname)
	if _, err := pipe.Exec(ctx); err != nil {
		return wrapTransport(err)
	}
	if configDel.Val() == 0 {
		return ErrQueueNotFound
	}
	return nil
}

func (e *engine) listQueues(ctx context.Context) ([]string, error) {
	names, err := e.ex.SMembers(ctx, registryKey(e.ns)).Result()
	if err != nil {
		return nil, wrapTransport(err)
	}
	return names, nil
}

func (e *engine) getQueueAttributes(ctx context.Context, qname string) (*QueueAttributes, error) {
	if err := validateName(qname); err != nil {
		return nil, err
	}

	key := configKey(e.ns, qname)
	idx := indexKey(e.ns, qname)

	timeCmd := e.ex.Time(ctx)
	if err := timeCmd.Err(); err != nil {
		return nil, wrapTransport(err)
	}
	tsMs := timeCmd.Val().UnixMilli()

	names := []string{"vt", "delay", "maxsize", "totalrecv", "totalsent", "created", "modified"}

	pipe := e.ex.TxPipeline()
	hmget := pipe.HMGet(ctx, key, names...)
	total := pipe.ZCard(ctx, idx)
	hiddenCmd := pipe.ZCount(ctx, idx, strconv.FormatInt(tsMs, 10), "+inf")
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, wrapTransport(err)
	}

	fields := make(map[string]string, len(names))
	for i, v := range hmget.Val() {
		s, ok := v.(string)
		if !ok {
			return nil, ErrQueueNotFound
		}
		fields[names[i]] = s
	}
	hidden := hiddenCmd.Val()

	vt, _ := strconv.ParseInt(fields["vt"], 10, 64)
	delay, _ := strconv.ParseInt(fields["delay"], 10, 64)
	maxsize, _ := strconv.ParseInt(fields["maxsize"], 10, 64)
	created, _ := strconv.ParseInt(fields["created"], 10, 64)
	modified, _ := strconv.ParseInt(fields["modified"], 10, 64)
	totalrecv, _ := strconv.ParseUint(fields["totalrecv"], 10, 64)
	totalsent, _ := strconv.ParseUint(fields["totalsent"], 10, 64)

	return &QueueAttributes{
		VisibilityTimeout: time.Duration(vt) * time.Millisecond,
		Delay:             time.Duration(delay) * time.Millisecond,
		MaxSize:           maxsize,
		TotalReceived:     totalrecv,
		TotalSent:         totalsent,
		Created:           time.UnixMilli(created),
		Modified:          time.UnixMilli(modified),
		Messages:          uint64(total.Val()),
		HiddenMessages:    uint64(hidden),
	}, nil
}

func (e *engine) setQueueAttributes(ctx context.Context, qname string, opts ...QueueOption) (*QueueAttributes, error) {
	if err := validateName(qname); err != nil {
		return nil, err
	}

	o := queueOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.vt == nil && o.delay == nil && o.maxsize == nil {
		return nil, ErrNoAttributeSupplied
	}
	if o.vt != nil {
		if err := validateDuration("vt", *o.vt); err != nil {
			return nil, err
		}
	}
	if o.delay != nil {
		if err := validateDuration("delay", *o.delay); err != nil {
			return nil, err
		}
	}
	if o.maxsize != nil {
		if err := validateMaxSize(*o.maxsize); err != nil {
			return nil, err
		}
	}

	key := configKey(e.ns, qname)
	timeCmd := e.ex.Time(ctx)
	if err := timeCmd.Err(); err != nil {
		return nil, wrapTransport(err)
	}
	tsMs := uint64(timeCmd.Val().UnixMilli())

	exists, err := e.ex.Exists(ctx, key).Result()
	if err != nil {
		return nil, wrapTransport(err)
	}
	if exists == 0 {
		return nil, ErrQueueNotFound
	}

	fields := map[string]interface{}{"modified": tsMs}
	if o.vt != nil {
		fields["vt"] = *o.vt
	}
	if o.delay != nil {
		fields["delay"] = *o.delay
	}
	if o.maxsize != nil {
		fields["maxsize"] = *o.maxsize
	}
	if err := e.ex.HSet(ctx, key, fields).Err(); err != nil {
		return nil, wrapTransport(err)
	}

	return e.getQueueAttributes(ctx, qname)
}

func (e *engine) sendMessage(ctx context.Context, qname string, payload []byte, opts ...SendOption) (string, error) {
	if err := validateName(qname); err != nil {
		return "", err
	}

	o := sendOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.delay != nil {
		if err := validateDuration("delay", *o.delay); err != nil {
			return "", err
		}
	}

	q, err := getQueue(ctx, e.ex, e.ns, qname, true)
	if err != nil {
		return "", err
	}

	if q.maxsize != unlimited && int64(len(payload)) > q.maxsize {
		return "", ErrMessageTooLong
	}

	delayMs := q.delay
	if o.delay != nil {
		delayMs = uint64(*o.delay)
	}
	deadline := q.tsMs + delayMs

	key := configKey(e.ns, qname)
	idx := indexKey(e.ns, qname)

	pipe := e.ex.TxPipeline()
	pipe.ZAdd(ctx, idx, redis.Z{Score: float64(deadline), Member: q.uid})
	pipe.HSet(ctx, key, q.uid, payload)
	pipe.HIncrBy(ctx, key, "totalsent", 1)
	var cardCmd *redis.IntCmd
	if e.realtimeHook != nil {
		cardCmd = pipe.ZCard(ctx, idx)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return "", wrapTransport(err)
	}

	// The publish happens outside the transaction and is fire-and-forget: a
	// subscriber may observe the new count slightly after the message is
	// already visible, and a failed publish must not undo the send.
	if e.realtimeHook != nil {
		e.realtimeHook(ctx, qname, cardCmd.Val())
	}

	return q.uid, nil
}

func (e *engine) receiveMessage(ctx context.Context, qname string, opts ...ReceiveOption) (*rawMessage, error) {
	if err := validateName(qname); err != nil {
		return nil, err
	}

	o := receiveOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.vt != nil {
		if err := validateDuration("vt", *o.vt); err != nil {
			return nil, err
		}
	}

	q, err := getQueue(ctx, e.ex, e.ns, qname, false)
	if err != nil {
		return nil, err
	}

	vtMs := q.vt
	if o.vt != nil {
		vtMs = uint64(*o.vt)
	}
	deadline := q.tsMs + vtMs

	idx := indexKey(e.ns, qname)
	key := configKey(e.ns, qname)

	result, err := runDequeueScript(ctx, e.ex, receiveMessageScript, []string{idx, key}, q.tsMs, deadline)
	if err != nil {
		return nil, err
	}
	if !result.found {
		return nil, nil
	}

	return &rawMessage{
		id:            result.id,
		body:          result.message,
		receiveCount:  result.rc,
		firstReceived: time.UnixMilli(int64(result.fr)),
		sent:          time.UnixMilli(int64(decodeSentMillis(result.id))),
	}, nil
}

func (e *engine) popMessage(ctx context.Context, qname string) (*rawMessage, error) {
	if err := validateName(qname); err != nil {
		return nil, err
	}

	q, err := getQueue(ctx, e.ex, e.ns, qname, false)
	if err != nil {
		return nil, err
	}

	idx := indexKey(e.ns, qname)
	key := configKey(e.ns, qname)

	result, err := runDequeueScript(ctx, e.ex, popMessageScript, []string{idx, key}, q.tsMs)
	if err != nil {
		return nil, err
	}
	if !result.found {
		return nil, nil
	}

	return &rawMessage{
		id:            result.id,
		body:          result.message,
		receiveCount:  result.rc,
		firstReceived: time.UnixMilli(int64(result.fr)),
		sent:          time.UnixMilli(int64(decodeSentMillis(result.id))),
	}, nil
}

func (e *engine) changeMessageVisibility(ctx context.Context, qname, id string, vt time.Duration) error {
	if err := validateName(qname); err != nil {
		return err
	}
	if id == "" {
		return &MissingParameterError{Name: "id"}
	}
	vtMs := vt.Milliseconds()
	if err := validateDuration("vt", vtMs); err != nil {
		return err
	}

	q, err := getQueue(ctx, e.ex, e.ns, qname, false)
	if err != nil {
		return err
	}

	deadline := q.tsMs + uint64(vtMs)
	idx := indexKey(e.ns, qname)
	return runChangeVisibilityScript(ctx, e.ex, idx, id, deadline)
}

func (e *engine) deleteMessage(ctx context.Context, qname, id string) (bool, error) {
	if err := validateName(qname); err != nil {
		return false, err
	}
	if id == "" {
		return false, &MissingParameterError{Name: "id"}
	}

	idx := indexKey(e.ns, qname)
	key := configKey(e.ns, qname)

	pipe := e.ex.TxPipeline()
	zrem := pipe.ZRem(ctx, idx, id)
	hdel := pipe.HDel(ctx, key, id, id+":rc", id+":fr")
	if _, err := pipe.Exec(ctx); err != nil {
		return false, wrapTransport(err)
	}

	return zrem.Val() == 1 && hdel.Val() > 0, nil
}
