package hub

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clientFake struct {
	mu       sync.Mutex
	messages [][]byte
	closed   bool
	writeErr error
}

func (c *clientFake) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.messages = append(c.messages, data)
	return nil
}

func (c *clientFake) ReadMessage() (int, []byte, error) {
	return 0, nil, errors.New("not implemented")
}

func (c *clientFake) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *clientFake) received() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func (c *clientFake) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	h := New()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})
	return h, cancel
}

func TestHub_BroadcastReachesRegisteredClients(t *testing.T) {
	h, _ := startHub(t)
	a, b := &clientFake{}, &clientFake{}
	h.Register(a)
	h.Register(b)

	h.Broadcast([]byte(`{"type":"comment.liked"}`))

	require.Eventually(t, func() bool { return a.received() == 1 && b.received() == 1 }, time.Second, 5*time.Millisecond)
}

func TestHub_UnregisterClosesClient(t *testing.T) {
	h, _ := startHub(t)
	a, b := &clientFake{}, &clientFake{}
	h.Register(a)
	h.Register(b)
	h.Unregister(a)

	h.Broadcast([]byte("update"))

	require.Eventually(t, func() bool { return b.received() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, a.isClosed())
	assert.Equal(t, 0, a.received())
}

func TestHub_DropsFailingClients(t *testing.T) {
	h, _ := startHub(t)
	bad := &clientFake{writeErr: errors.New("broken pipe")}
	h.Register(bad)

	h.Broadcast([]byte("update"))

	require.Eventually(t, bad.isClosed, time.Second, 5*time.Millisecond)
}

func TestHub_StopClosesClients(t *testing.T) {
	h, cancel := startHub(t)
	a := &clientFake{}
	h.Register(a)
	cancel()

	require.Eventually(t, a.isClosed, time.Second, 5*time.Millisecond)

	// Calls after shutdown must not block.
	late := &clientFake{}
	h.Register(late)
	h.Broadcast([]byte("ignored"))
	h.Unregister(late)
	assert.Eventually(t, late.isClosed, time.Second, 5*time.Millisecond)
}

func TestHub_BroadcastDropsWhenQueueFull(t *testing.T) {
	// Run is not started, so nothing drains the queue.
	h := New()

	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(h.broadcast)+10; i++ {
			h.Broadcast([]byte("update"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a full queue")
	}
	assert.Len(t, h.broadcast, cap(h.broadcast))
}
