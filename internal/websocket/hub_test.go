package websocket

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func registerClient(t *testing.T, h *Hub, buffer int) *Client {
	t.Helper()
	client := &Client{Hub: h, StaffID: uuid.New(), Send: make(chan []byte, buffer)}
	select {
	case h.register <- client:
	case <-time.After(time.Second):
		t.Fatal("hub did not accept registration")
	}
	return client
}

func clientCount(h *Hub) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.clients {
		n += len(clients)
	}
	return n
}

func TestBroadcastDropsSlowConsumer(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	healthy := registerClient(t, hub, 8)
	slow := registerClient(t, hub, 0)

	// Nobody reads slow.Send, so the first broadcast marks it for removal.
	hub.Broadcast("DOCUMENT_INDEXED", map[string]interface{}{"document_id": "d1"})

	select {
	case <-healthy.Send:
	case <-time.After(time.Second):
		t.Fatal("healthy client did not receive the broadcast")
	}

	require.Eventually(t, func() bool { return clientCount(hub) == 1 }, time.Second, 10*time.Millisecond,
		"slow client was not unregistered")

	// The unregister path closed the channel exactly once.
	select {
	case _, open := <-slow.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("slow client channel was not closed")
	}

	// Further broadcasts only reach the surviving client.
	hub.Broadcast("DOCUMENT_INDEXED", map[string]interface{}{"document_id": "d2"})
	select {
	case <-healthy.Send:
	case <-time.After(time.Second):
		t.Fatal("healthy client did not receive the second broadcast")
	}
}

func TestRepeatedBroadcastsToSlowConsumerDoNotPanic(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	registerClient(t, hub, 0)

	// Racing broadcasts against the pending unregister must never close the
	// client channel twice.
	for i := 0; i < 50; i++ {
		hub.Broadcast("MESSAGE_FLAGGED", map[string]interface{}{"user_id": "u1"})
	}

	require.Eventually(t, func() bool { return clientCount(hub) == 0 }, time.Second, 10*time.Millisecond)
}

func TestRedisRelayDeliversOnceLocally(t *testing.T) {
	mr := miniredis.RunT(t)

	hubA := NewHub(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), nopLogger{})
	hubB := NewHub(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), nopLogger{})
	go hubA.Run()
	go hubB.Run()

	clientA := registerClient(t, hubA, 8)
	clientB := registerClient(t, hubB, 8)

	// Give both relay subscriptions time to attach.
	time.Sleep(200 * time.Millisecond)

	hubA.Broadcast("UPDATE_PUBLISHED", map[string]interface{}{"update_id": "u1"})

	select {
	case <-clientA.Send:
	case <-time.After(time.Second):
		t.Fatal("publishing instance's client did not receive the broadcast")
	}
	select {
	case <-clientB.Send:
	case <-time.After(time.Second):
		t.Fatal("relayed instance's client did not receive the broadcast")
	}

	// The publishing instance must not re-deliver its own relayed message.
	select {
	case msg := <-clientA.Send:
		t.Fatalf("duplicate delivery on publishing instance: %s", msg)
	case <-time.After(300 * time.Millisecond):
	}
}
