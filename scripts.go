package rsmq

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

//go:embed lua/changeMessageVisibility.lua
var changeMessageVisibilitySrc string

//go:embed lua/receiveMessage.lua
var receiveMessageSrc string

//go:embed lua/popMessage.lua
var popMessageSrc string

var (
	changeMessageVisibilityScript = redis.NewScript(changeMessageVisibilitySrc)
	receiveMessageScript          = redis.NewScript(receiveMessageSrc)
	popMessageScript              = redis.NewScript(popMessageSrc)
)

// dequeueResult is the decoded shape shared by receiveMessage.lua and
// popMessage.lua: {0} on nothing visible, or {1, id, message, rc, fr}.
type dequeueResult struct {
	found   bool
	id      string
	message []byte
	rc      uint64
	fr      uint64
}

func runDequeueScript(ctx context.Context, ex Executor, script *redis.Script, keys []string, args ...interface{}) (*dequeueResult, error) {
	reply, err := script.Run(ctx, ex, keys, args...).Result()
	if err != nil {
		return nil, wrapTransport(err)
	}

	items, ok := reply.([]interface{})
	if !ok || len(items) == 0 {
		return nil, fmt.Errorf("rsmq: unexpected script reply shape %T", reply)
	}

	found, err := toInt64(items[0])
	if err != nil {
		return nil, err
	}
	if found == 0 {
		return &dequeueResult{found: false}, nil
	}
	if len(items) != 5 {
		return nil, fmt.Errorf("rsmq: unexpected script reply length %d", len(items))
	}

	id, ok := items[1].(string)
	if !ok {
		return nil, fmt.Errorf("rsmq: unexpected id type %T", items[1])
	}

	var message []byte
	if s, ok := items[2].(string); ok {
		message = []byte(s)
	}

	rc, err := toInt64(items[3])
	if err != nil {
		return nil, err
	}

	fr, err := toUint64FromScriptValue(items[4])
	if err != nil {
		return nil, err
	}

	return &dequeueResult{
		found:   true,
		id:      id,
		message: message,
		rc:      uint64(rc),
		fr:      fr,
	}, nil
}

func runChangeVisibilityScript(ctx context.Context, ex Executor, key, id string, deadlineMs uint64) error {
	_, err := changeMessageVisibilityScript.Run(ctx, ex, []string{key}, id, deadlineMs).Result()
	if err != nil {
		return wrapTransport(err)
	}
	return nil
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("rsmq: unexpected numeric reply %q", n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("rsmq: unexpected numeric reply type %T", v)
	}
}

// toUint64FromScriptValue handles the "fr" field, which the scripts return
// as a string: the verbatim ARGV timestamp on a first receive, or the stored
// ":fr" hash field otherwise. An integer reply is accepted as well.
func toUint64FromScriptValue(v interface{}) (uint64, error) {
	switch n := v.(type) {
	case int64:
		return uint64(n), nil
	case string:
		parsed, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("rsmq: unexpected fr reply %q", n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("rsmq: unexpected fr reply type %T", v)
	}
}
