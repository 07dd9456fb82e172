package rsmq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestEngine(t *testing.T) (*engine, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { rc.Close() })
	return newEngine(rc, "rsmq"), s
}

func TestBasicRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	if err := e.createQueue(ctx, "q1"); err != nil {
		t.Fatalf("createQueue: %v", err)
	}

	id, err := e.sendMessage(ctx, "q1", []byte("hello"))
	if err != nil {
		t.Fatalf("sendMessage: %v", err)
	}

	msg, err := e.receiveMessage(ctx, "q1")
	if err != nil {
		t.Fatalf("receiveMessage: %v", err)
	}
	if msg == nil {
		t.Fatal("receiveMessage: expected a message")
	}
	if msg.id != id || string(msg.body) != "hello" || msg.receiveCount != 1 {
		t.Fatalf("receiveMessage: unexpected message %+v", msg)
	}

	deleted, err := e.deleteMessage(ctx, "q1", id)
	if err != nil {
		t.Fatalf("deleteMessage: %v", err)
	}
	if !deleted {
		t.Fatal("deleteMessage: expected true")
	}

	again, err := e.receiveMessage(ctx, "q1")
	if err != nil {
		t.Fatalf("receiveMessage (after delete): %v", err)
	}
	if again != nil {
		t.Fatalf("receiveMessage (after delete): expected absent, got %+v", again)
	}
}

func TestSendDelay(t *testing.T) {
	e, s := newTestEngine(t)
	ctx := context.Background()
	now := time.Now()
	s.SetTime(now)

	if err := e.createQueue(ctx, "q1"); err != nil {
		t.Fatalf("createQueue: %v", err)
	}

	if _, err := e.sendMessage(ctx, "q1", []byte("x"), WithSendDelay(2*time.Second)); err != nil {
		t.Fatalf("sendMessage: %v", err)
	}

	msg, err := e.receiveMessage(ctx, "q1")
	if err != nil {
		t.Fatalf("receiveMessage: %v", err)
	}
	if msg != nil {
		t.Fatalf("receiveMessage: expected absent before delay elapses, got %+v", msg)
	}

	s.SetTime(now.Add(2100 * time.Millisecond))

	msg, err = e.receiveMessage(ctx, "q1")
	if err != nil {
		t.Fatalf("receiveMessage after delay: %v", err)
	}
	if msg == nil || string(msg.body) != "x" {
		t.Fatalf("receiveMessage after delay: expected message \"x\", got %+v", msg)
	}
}

func TestVisibilityRedelivery(t *testing.T) {
	e, s := newTestEngine(t)
	ctx := context.Background()
	now := time.Now()
	s.SetTime(now)

	if err := e.createQueue(ctx, "q1"); err != nil {
		t.Fatalf("createQueue: %v", err)
	}
	if _, err := e.sendMessage(ctx, "q1", []byte("y")); err != nil {
		t.Fatalf("sendMessage: %v", err)
	}

	first, err := e.receiveMessage(ctx, "q1")
	if err != nil {
		t.Fatalf("first receive: %v", err)
	}
	if first == nil {
		t.Fatal("first receive: expected a message")
	}

	second, err := e.receiveMessage(ctx, "q1")
	if err != nil {
		t.Fatalf("second receive: %v", err)
	}
	if second != nil {
		t.Fatalf("second receive: expected absent while hidden, got %+v", second)
	}

	if err := e.changeMessageVisibility(ctx, "q1", first.id, 0); err != nil {
		t.Fatalf("changeMessageVisibility: %v", err)
	}
	s.SetTime(now.Add(10 * time.Millisecond))

	third, err := e.receiveMessage(ctx, "q1")
	if err != nil {
		t.Fatalf("third receive: %v", err)
	}
	if third == nil || third.id != first.id {
		t.Fatalf("third receive: expected redelivery of %s, got %+v", first.id, third)
	}
	if third.receiveCount != 2 {
		t.Fatalf("third receive: expected rc=2, got %d", third.receiveCount)
	}
}

func TestDuplicateCreate(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	if err := e.createQueue(ctx, "q1"); err != nil {
		t.Fatalf("createQueue: %v", err)
	}
	err := e.createQueue(ctx, "q1")
	if !errors.Is(err, ErrQueueExists) {
		t.Fatalf("createQueue (duplicate): expected ErrQueueExists, got %v", err)
	}
}

func TestAttributeUpdate(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	if err := e.createQueue(ctx, "q1"); err != nil {
		t.Fatalf("createQueue: %v", err)
	}

	attrs, err := e.getQueueAttributes(ctx, "q1")
	if err != nil {
		t.Fatalf("getQueueAttributes: %v", err)
	}
	if attrs.VisibilityTimeout != 30*time.Second || attrs.Delay != 0 || attrs.MaxSize != 65536 {
		t.Fatalf("getQueueAttributes: unexpected defaults %+v", attrs)
	}

	updated, err := e.setQueueAttributes(ctx, "q1",
		WithVisibilityTimeout(45*time.Second),
		WithDelay(5*time.Second),
		WithMaxSize(2048))
	if err != nil {
		t.Fatalf("setQueueAttributes: %v", err)
	}
	if updated.VisibilityTimeout != 45*time.Second || updated.Delay != 5*time.Second || updated.MaxSize != 2048 {
		t.Fatalf("setQueueAttributes: unexpected result %+v", updated)
	}
	if !updated.Modified.After(attrs.Modified) && !updated.Modified.Equal(attrs.Modified) {
		t.Fatalf("setQueueAttributes: modified timestamp should not go backwards")
	}
}

func TestFIFOOrdering(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	if err := e.createQueue(ctx, "q1"); err != nil {
		t.Fatalf("createQueue: %v", err)
	}

	const n = 200
	for i := 0; i < n; i++ {
		if _, err := e.sendMessage(ctx, "q1", []byte(sprintTestMessage(i))); err != nil {
			t.Fatalf("sendMessage #%d: %v", i, err)
		}
	}

	for i := 0; i < n; i++ {
		msg, err := e.popMessage(ctx, "q1")
		if err != nil {
			t.Fatalf("popMessage #%d: %v", i, err)
		}
		if msg == nil {
			t.Fatalf("popMessage #%d: expected a message", i)
		}
		want := sprintTestMessage(i)
		if string(msg.body) != want {
			t.Fatalf("popMessage #%d: got %q, want %q", i, msg.body, want)
		}
	}

	msg, err := e.popMessage(ctx, "q1")
	if err != nil {
		t.Fatalf("popMessage (drained): %v", err)
	}
	if msg != nil {
		t.Fatalf("popMessage (drained): expected absent, got %+v", msg)
	}
}

func sprintTestMessage(i int) string {
	return "testmessage" + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}

func TestDeleteQueueRemovesFromRegistry(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	if err := e.createQueue(ctx, "q1"); err != nil {
		t.Fatalf("createQueue: %v", err)
	}
	names, err := e.listQueues(ctx)
	if err != nil || len(names) != 1 {
		t.Fatalf("listQueues: got %v, %v", names, err)
	}

	if err := e.deleteQueue(ctx, "q1"); err != nil {
		t.Fatalf("deleteQueue: %v", err)
	}
	names, err = e.listQueues(ctx)
	if err != nil || len(names) != 0 {
		t.Fatalf("listQueues (after delete): got %v, %v", names, err)
	}

	if _, err := e.getQueueAttributes(ctx, "q1"); !errors.Is(err, ErrQueueNotFound) {
		t.Fatalf("getQueueAttributes (after delete): expected ErrQueueNotFound, got %v", err)
	}

	if err := e.deleteQueue(ctx, "q1"); !errors.Is(err, ErrQueueNotFound) {
		t.Fatalf("deleteQueue (already deleted): expected ErrQueueNotFound, got %v", err)
	}

	if err := e.deleteQueue(ctx, "never-existed"); !errors.Is(err, ErrQueueNotFound) {
		t.Fatalf("deleteQueue (never existed): expected ErrQueueNotFound, got %v", err)
	}
}

func TestMessageTooLong(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	if err := e.createQueue(ctx, "q1", WithMaxSize(1024)); err != nil {
		t.Fatalf("createQueue: %v", err)
	}

	ok := make([]byte, 1024)
	if _, err := e.sendMessage(ctx, "q1", ok); err != nil {
		t.Fatalf("sendMessage (exactly maxsize): %v", err)
	}

	tooBig := make([]byte, 1025)
	if _, err := e.sendMessage(ctx, "q1", tooBig); !errors.Is(err, ErrMessageTooLong) {
		t.Fatalf("sendMessage (maxsize+1): expected ErrMessageTooLong, got %v", err)
	}
}

func TestInvalidQueueName(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	cases := []string{"", "has space", "way/too/slashy"}
	for _, name := range cases {
		if err := e.createQueue(ctx, name); err == nil {
			t.Errorf("createQueue(%q): expected error", name)
		} else {
			var fmtErr *InvalidFormatError
			if !errors.As(err, &fmtErr) {
				t.Errorf("createQueue(%q): expected InvalidFormatError, got %v", name, err)
			}
		}
	}
}
