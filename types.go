package rsmq

import "time"

// QueueAttributes describes a queue's configuration and live statistics, as
// returned by GetQueueAttributes and SetQueueAttributes.
type QueueAttributes struct {
	// VisibilityTimeout is how long a received message stays hidden from
	// other consumers before it becomes visible again.
	VisibilityTimeout time.Duration
	// Delay is how long a newly sent message stays invisible before its
	// first delivery.
	Delay time.Duration
	// MaxSize is the maximum payload size in bytes, or -1 for unlimited.
	MaxSize int64
	// TotalReceived is the monotonic count of successful receives (via
	// ReceiveMessage or PopMessage) against this queue.
	TotalReceived uint64
	// TotalSent is the monotonic count of successful sends.
	TotalSent uint64
	// Created is when the queue was created, per the Redis server clock.
	Created time.Time
	// Modified is when the queue's attributes were last changed.
	Modified time.Time
	// Messages is the total number of messages currently in the queue,
	// visible or hidden.
	Messages uint64
	// HiddenMessages is the number of those messages whose visibility
	// deadline has not yet passed.
	HiddenMessages uint64
}

// Message is a message handed back by ReceiveMessage or PopMessage.
type Message[T any] struct {
	// ID identifies the message for ChangeMessageVisibility and
	// DeleteMessage.
	ID string
	// Body is the decoded payload.
	Body T
	// ReceiveCount is how many times this message has been delivered,
	// including this delivery.
	ReceiveCount uint64
	// FirstReceived is when this message was first delivered to any
	// consumer, per the Redis server clock.
	FirstReceived time.Time
	// Sent is when this message was sent, recovered from the timestamp
	// embedded in its id.
	Sent time.Time
}

// Codec converts between a caller-chosen payload type and the raw bytes
// rsmq stores in Redis. Encode must be total (every value of T must be
// representable); Decode may fail, in which case the caller gets back a
// *DecodeError carrying the raw bytes so it can fall back instead of
// losing the message.
type Codec[T any] interface {
	Encode(T) []byte
	Decode([]byte) (T, error)
}

// StringCodec is the built-in Codec for UTF-8 string payloads.
type StringCodec struct{}

// Encode returns the UTF-8 bytes of s.
func (StringCodec) Encode(s string) []byte { return []byte(s) }

// Decode returns s unchanged; it never fails, since any byte slice is a
// valid (if not necessarily well-formed UTF-8) Go string.
func (StringCodec) Decode(b []byte) (string, error) { return string(b), nil }

// BytesCodec is the built-in Codec for raw byte payloads. It performs no
// conversion at all.
type BytesCodec struct{}

// Encode returns b unchanged.
func (BytesCodec) Encode(b []byte) []byte { return b }

// Decode returns b unchanged; it never fails.
func (BytesCodec) Decode(b []byte) ([]byte, error) { return b, nil }
