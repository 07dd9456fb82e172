package rsmq

import (
	"errors"
	"fmt"
)

// Sentinel errors callers can compare against with errors.Is.
var (
	// ErrQueueNotFound is returned when an operation targets a queue whose
	// config hash does not exist in Redis.
	ErrQueueNotFound = errors.New("rsmq: queue not found")
	// ErrQueueExists is returned by CreateQueue when the queue already
	// exists. Exactly one of N concurrent CreateQueue calls on the same
	// name observes success; the rest observe this error.
	ErrQueueExists = errors.New("rsmq: queue already exists")
	// ErrMessageTooLong is returned by SendMessage when the encoded payload
	// exceeds the queue's configured maxsize.
	ErrMessageTooLong = errors.New("rsmq: message too long")
	// ErrNoAttributeSupplied is returned by SetQueueAttributes when none of
	// the visibility timeout, delay or maxsize options were given.
	ErrNoAttributeSupplied = errors.New("rsmq: no attribute supplied")
	// ErrBugCreatingRandomValue is returned by the id generator when the
	// platform's entropy source refuses to yield random bytes.
	ErrBugCreatingRandomValue = errors.New("rsmq: could not create random value")
)

// InvalidFormatError is returned when a queue name fails the name-format
// check: 1-160 characters drawn from [A-Za-z0-9_-].
type InvalidFormatError struct {
	Name string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("rsmq: invalid queue name format: %q", e.Name)
}

// InvalidValueError is returned when a numeric argument falls outside its
// documented inclusive range.
type InvalidValueError struct {
	Field string
	Value int64
	Min   int64
	Max   int64
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("rsmq: %s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}

// MissingParameterError is returned when a required argument was left
// empty at a call site that requires it.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("rsmq: missing required parameter %q", e.Name)
}

// DecodeError is returned by ReceiveMessage and PopMessage when the Codec
// could not convert the stored bytes back into the caller's payload type.
// The raw bytes are preserved so the caller can fall back to handling them
// directly instead of losing the message.
type DecodeError struct {
	Raw []byte
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("rsmq: cannot decode message: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TransportError wraps any error returned directly by the Redis client
// (connection failures, protocol errors). A script reply of an unexpected
// shape is reported as a plain error, not a TransportError. It is never
// returned for the "no message available" case, which is represented by a
// nil result instead.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("rsmq: transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func wrapTransport(err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Err: err}
}
