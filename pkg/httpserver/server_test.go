package httpserver

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/julesChu12/rsmq"
)

func splitAddr(t *testing.T, addr string) (string, int) {
	t.Helper()
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("splitting miniredis addr %q: %v", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("parsing miniredis port %q: %v", portStr, err)
	}
	return host, port
}

func TestQueuesEndpoint(t *testing.T) {
	s := miniredis.RunT(t)
	ctx := context.Background()

	opts := rsmq.DefaultOptions()
	opts.Host, opts.Port = splitAddr(t, s.Addr())

	client, err := rsmq.NewPooledClient(ctx, opts, rsmq.StringCodec{})
	if err != nil {
		t.Fatalf("NewPooledClient: %v", err)
	}
	defer client.Close()

	if err := client.CreateQueue(ctx, "orders"); err != nil {
		t.Fatalf("CreateQueue: %v", err)
	}

	srv := New(client, "rsmq-admin-test", nil)

	req := httptest.NewRequest(http.MethodGet, "/queues", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /queues: status %d, body %s", rec.Code, rec.Body.String())
	}
	if !contains(rec.Body.String(), "orders") {
		t.Fatalf("GET /queues: expected body to mention %q, got %s", "orders", rec.Body.String())
	}
}

func TestQueueNotFound(t *testing.T) {
	s := miniredis.RunT(t)
	ctx := context.Background()

	opts := rsmq.DefaultOptions()
	opts.Host, opts.Port = splitAddr(t, s.Addr())

	client, err := rsmq.NewPooledClient(ctx, opts, rsmq.StringCodec{})
	if err != nil {
		t.Fatalf("NewPooledClient: %v", err)
	}
	defer client.Close()

	srv := New(client, "rsmq-admin-test", nil)

	req := httptest.NewRequest(http.MethodGet, "/queues/missing", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET /queues/missing: status %d, body %s", rec.Code, rec.Body.String())
	}
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
