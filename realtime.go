package rsmq

import (
	"context"

	"github.com/julesChu12/rsmq/pkg/logger"
)

// newRealtimeHook returns the publish callback wired into an engine when
// Options.Realtime is set. It publishes the pre-computed post-send message
// count on realtimeChannel(ns, qname), matching the notification the
// upstream JS/Rust implementations emit so existing subscribers keep
// working unchanged against this client. A failed publish is logged, never
// surfaced: the send it rides on has already committed.
func newRealtimeHook(ex Executor, ns string) func(context.Context, string, int64) {
	return func(ctx context.Context, qname string, count int64) {
		if err := ex.Publish(ctx, realtimeChannel(ns, qname), count).Err(); err != nil {
			logger.NewDefault().WithContext(ctx).Warnw("rsmq: realtime publish failed",
				"queue", qname, "error", err)
		}
	}
}
