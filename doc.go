// Package rsmq implements a Redis-backed Simple Message Queue client.
//
// It layers named queues with per-message visibility timeouts, send delays,
// receive counters and an optional realtime notification channel on top of a
// plain Redis server (v2.6+). The wire layout of the keys it reads and
// writes is compatible with the original JavaScript rsmq implementation, so
// producers and consumers written against either implementation can share
// the same Redis instance.
//
// The package is split into a queue-semantics engine (this package) and two
// facades that bind the engine to a concrete connection strategy: NewClient
// opens a single dedicated connection, NewPooledClient opens a
// pool-backed client. Both accept a Codec that converts between the
// caller's payload type and the raw bytes stored in Redis; Codec
// implementations are provided for strings and raw byte slices, and callers
// may supply their own for structured payloads.
package rsmq
