package hub

import (
	"context"
	"testing"
	"time"

	"github.com/DoyleJ11/debate-timer-backend/internal/catalog"
	"github.com/DoyleJ11/debate-timer-backend/internal/clock"
	"github.com/DoyleJ11/debate-timer-backend/internal/engine"
	"github.com/DoyleJ11/debate-timer-backend/internal/room"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewHub(ctx, room.Config{
		Formats: catalog.Default(),
		Clock:   clock.NewManual(time.Time{}),
	})
}

func TestHub_Create_Get_SamePointer(t *testing.T) {
	h := newTestHub(t)
	reply := make(chan *room.Room, 1)

	h.Inbox() <- CreateRoom{Code: "ZED123", Reply: reply}
	r1 := <-reply

	h.Inbox() <- GetRoom{Code: "ZED123", Reply: reply}
	r2 := <-reply

	require.NotNil(t, r1)
	assert.Same(t, r1, r2)
	assert.Equal(t, "ZED123", r1.Code())
}

func TestHub_CreateTakenCodeRepliesNil(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	require.NotNil(t, h.Create(ctx, "ABC123", engine.Session{}))
	assert.Nil(t, h.Create(ctx, "ABC123", engine.Session{}))
}

func TestHub_IdleRoomIsForgotten(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHub(ctx, room.Config{
		Formats:     catalog.Default(),
		Clock:       clock.NewManual(time.Time{}),
		IdleTimeout: 20 * time.Millisecond,
	})

	r := h.Create(ctx, "ABC123", engine.Session{})
	require.NotNil(t, r)

	select {
	case <-r.Done():
	case <-time.After(time.Second):
		t.Fatal("idle room did not close")
	}
	assert.Eventually(t, func() bool { return h.Get(ctx, "ABC123") == nil }, time.Second, 5*time.Millisecond)

	// The code can be handed out again.
	assert.NotNil(t, h.Create(ctx, "ABC123", engine.Session{}))
}

func TestHub_CreateWithFormatKeepsSession(t *testing.T) {
	h := newTestHub(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	f, ok := catalog.Default().Get("Type A (4 v 4)")
	require.True(t, ok)
	r := h.Create(ctx, "ABC123", engine.NewSession(f))
	require.NotNil(t, r)

	v, ok := r.State(ctx)
	require.True(t, ok)
	assert.Equal(t, "Type A (4 v 4)", v.Session.Format.Name)
}

func TestHub_RemoveShutsRoomDown(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	r := h.Create(ctx, "ABC123", engine.Session{})
	require.NotNil(t, r)
	assert.True(t, h.Remove(ctx, "ABC123"))

	select {
	case <-r.Done():
	case <-time.After(time.Second):
		t.Fatal("room did not stop")
	}
	assert.Nil(t, h.Get(ctx, "ABC123"))
	assert.False(t, h.Remove(ctx, "ABC123"))
}

func TestHub_ShutdownStopsRooms(t *testing.T) {
	h := newTestHub(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	r := h.Create(ctx, "ABC123", engine.Session{})
	require.NotNil(t, r)
	require.NoError(t, h.Shutdown(ctx))

	select {
	case <-r.Done():
	case <-time.After(time.Second):
		t.Fatal("room did not stop")
	}
	assert.Nil(t, h.Get(ctx, "ABC123"))
}
