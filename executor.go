package rsmq

import "github.com/redis/go-redis/v9"

// Executor is the command surface the queue engine needs from a Redis
// connection: pipelines, scripts, TIME and PUBLISH. redis.Cmdable already
// provides all of it, so *redis.Client (pool-backed), *redis.Conn
// (single dedicated connection, i.e. "multiplexed") and *redis.ClusterClient
// all satisfy it without adapters. Connection pooling strategy, RESP
// framing and transport are entirely the executor's concern; the engine
// never looks past this interface.
type Executor interface {
	redis.Cmdable
}
