package rsmq

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// queueDescriptor is the result of one getQueue round trip: the queue's
// vt/delay/maxsize config plus the authoritative Redis server timestamp the
// rest of the operation should use as "now". uid is only populated when the
// caller is about to send a message.
type queueDescriptor struct {
	vt      uint64 // ms
	delay   uint64 // ms
	maxsize int64
	tsMs    uint64
	uid     string
}

// getQueue fetches a queue's config and the Redis server clock in a single
// round trip. Like the TIME calls in createQueue, getQueueAttributes and
// setQueueAttributes, it reads the Redis server clock; every deadline
// computed downstream derives from tsMs, never the local wall clock, so the
// queue stays correct under client-side clock skew.
//
// When withUID is true a fresh message id is minted from tsMs for the
// caller's imminent send.
func getQueue(ctx context.Context, ex Executor, ns, qname string, withUID bool) (*queueDescriptor, error) {
	key := configKey(ns, qname)

	pipe := ex.TxPipeline()
	hmget := pipe.HMGet(ctx, key, "vt", "delay", "maxsize")
	timeCmd := pipe.Time(ctx)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, wrapTransport(err)
	}

	vals := hmget.Val()
	if len(vals) < 3 || vals[0] == nil || vals[1] == nil || vals[2] == nil {
		return nil, ErrQueueNotFound
	}

	vt, err := strconv.ParseUint(vals[0].(string), 10, 64)
	if err != nil {
		return nil, ErrQueueNotFound
	}
	delay, err := strconv.ParseUint(vals[1].(string), 10, 64)
	if err != nil {
		return nil, ErrQueueNotFound
	}
	maxsize, err := strconv.ParseInt(vals[2].(string), 10, 64)
	if err != nil {
		return nil, ErrQueueNotFound
	}

	tsMs := uint64(timeCmd.Val().UnixMilli())

	desc := &queueDescriptor{vt: vt, delay: delay, maxsize: maxsize, tsMs: tsMs}

	if withUID {
		uid, err := generateMessageID(tsMs)
		if err != nil {
			return nil, err
		}
		desc.uid = uid
	}

	return desc, nil
}
