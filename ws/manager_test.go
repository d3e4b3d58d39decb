package ws

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_BroadcastReachesEveryConnectionOfUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewWebSocketManager()
	go m.Run(ctx)

	a := &Client{UserID: "u1", Send: make(chan []byte, 1), Manager: m}
	b := &Client{UserID: "u1", Send: make(chan []byte, 1), Manager: m}
	other := &Client{UserID: "u2", Send: make(chan []byte, 1), Manager: m}
	require.True(t, m.Register(a))
	require.True(t, m.Register(b))
	require.True(t, m.Register(other))

	require.Eventually(t, func() bool { return m.GetClientCount() == 3 }, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Broadcast(ctx, "u1", []byte(`{"type":"new_message"}`)))

	assert.JSONEq(t, `{"type":"new_message"}`, string(<-a.Send))
	assert.JSONEq(t, `{"type":"new_message"}`, string(<-b.Send))
	assert.Empty(t, other.Send)
}

func TestManager_OfflineUserIsNotAnError(t *testing.T) {
	m := NewWebSocketManager()
	assert.NoError(t, m.Broadcast(context.Background(), "nobody", []byte(`{}`)))
	assert.False(t, m.IsClientConnected("nobody"))
}

func TestManager_UnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewWebSocketManager()
	go m.Run(ctx)

	c := &Client{UserID: "u1", Send: make(chan []byte, 1), Manager: m}
	require.True(t, m.Register(c))
	m.Unregister(c)

	require.Eventually(t, func() bool { return !m.IsClientConnected("u1") }, time.Second, 5*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestManager_StoppedManagerDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	m := NewWebSocketManager()
	stopped := make(chan struct{})
	go func() {
		_ = m.Run(ctx)
		close(stopped)
	}()

	live := &Client{UserID: "u1", Send: make(chan []byte, 1), Manager: m}
	require.True(t, m.Register(live))
	require.Eventually(t, func() bool { return m.IsClientConnected("u1") }, time.Second, 5*time.Millisecond)

	cancel()
	<-stopped

	_, open := <-live.Send
	assert.False(t, open, "shutdown releases connected clients")

	done := make(chan bool)
	go func() {
		late := &Client{UserID: "u2", Send: make(chan []byte, 1), Manager: m}
		registered := m.Register(late)
		m.Unregister(live)
		m.Unregister(late)
		done <- registered
	}()

	select {
	case registered := <-done:
		assert.False(t, registered)
	case <-time.After(time.Second):
		t.Fatal("register/unregister blocked after the manager stopped")
	}
}
