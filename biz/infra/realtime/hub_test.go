package realtime

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	frames []any
	closed bool
	err    error
}

func (c *fakeConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.frames = append(c.frames, v)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func TestHubLookupAndPublish(t *testing.T) {
	ctx := context.Background()
	hub := NewHub()

	_, ok := hub.Lookup(ctx, "u1")
	assert.False(t, ok)

	conn := &fakeConn{}
	h := hub.Attach(ctx, "u1", conn)
	assert.Equal(t, "u1", h.UserId())

	got, ok := hub.Lookup(ctx, "u1")
	require.True(t, ok)
	e := NewEvent("new_message", map[string]string{"message": "hi"})
	require.NoError(t, hub.Publish(ctx, got, e))
	require.Equal(t, 1, conn.count())
	assert.Same(t, e, conn.frames[0])
	assert.Equal(t, 1, hub.Online())
}

func TestHubReplaceClosesOldSession(t *testing.T) {
	ctx := context.Background()
	hub := NewHub()
	oldConn, newConn := &fakeConn{}, &fakeConn{}

	old := hub.Attach(ctx, "u1", oldConn)
	cur := hub.Attach(ctx, "u1", newConn)
	assert.True(t, oldConn.isClosed())
	assert.False(t, newConn.isClosed())

	// 旧连接的注销不影响新连接
	assert.False(t, hub.Detach(ctx, old))
	got, ok := hub.Lookup(ctx, "u1")
	require.True(t, ok)
	assert.Same(t, cur, got)

	assert.True(t, hub.Detach(ctx, cur))
	assert.False(t, hub.Detach(ctx, cur))
	_, ok = hub.Lookup(ctx, "u1")
	assert.False(t, ok)
	assert.Equal(t, 0, hub.Online())
}

func TestHubPublishErrors(t *testing.T) {
	ctx := context.Background()
	hub := NewHub()
	broken := errors.New("broken pipe")
	h := hub.Attach(ctx, "u1", &fakeConn{err: broken})

	assert.ErrorIs(t, hub.Publish(ctx, h, NewEvent("new_message", nil)), broken)
	assert.ErrorIs(t, hub.Publish(ctx, &remote{uid: "u2"}, NewEvent("new_message", nil)), ErrUnknownHandle)
}

func TestHubConcurrentAttach(t *testing.T) {
	ctx := context.Background()
	hub := NewHub()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := hub.Attach(ctx, "u1", &fakeConn{})
			hub.Touch(ctx, h)
			_, _ = hub.Lookup(ctx, "u1")
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, hub.Online())
}

func TestHubRunReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, NewHub().Run(ctx))
}
