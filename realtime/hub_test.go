package realtime

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func newTestClient(h *Hub) *Client {
	return &Client{hub: h, send: make(chan []byte, sendBuffer), done: make(chan struct{})}
}

func isDone(c *Client) bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case frame := <-c.send:
		var ev Event
		require.NoError(t, json.Unmarshal(frame, &ev))
		return ev
	default:
		t.Fatal("no frame queued")
		return Event{}
	}
}

func TestEmitReachesJoinedRoom(t *testing.T) {
	h := NewHub(zap.NewNop())
	c := newTestClient(h)
	h.Join(UserRoom("u1"), c)

	h.Emit(UserRoom("u1"), "request.created", map[string]string{"id": "req-1"})

	ev := receive(t, c)
	assert.Equal(t, "request.created", ev.Event)
	assert.Equal(t, UserRoom("u1"), ev.Room)
}

func TestEmitSkipsOtherRooms(t *testing.T) {
	h := NewHub(zap.NewNop())
	c := newTestClient(h)
	h.Join(UserRoom("u1"), c)

	h.Emit(UserRoom("u2"), "request.created", nil)
	assert.Empty(t, c.send)
}

func TestEmitAfterLeave(t *testing.T) {
	h := NewHub(zap.NewNop())
	c := newTestClient(h)
	h.Join(BroadcastRoom, c)
	h.Leave(BroadcastRoom, c)

	h.Emit(BroadcastRoom, "request.created", nil)
	assert.Empty(t, c.send)
}

func TestLeaveAll(t *testing.T) {
	h := NewHub(zap.NewNop())
	c := newTestClient(h)
	h.Join(UserRoom("u1"), c)
	h.Join(MechanicRoom("m1"), c)

	h.LeaveAll(c)
	h.Emit(UserRoom("u1"), "x", nil)
	h.Emit(MechanicRoom("m1"), "x", nil)
	assert.Empty(t, c.send)
}

func TestSlowClientIsDropped(t *testing.T) {
	h := NewHub(zap.NewNop())
	c := newTestClient(h)
	h.Join(UserRoom("u1"), c)

	// Fill the buffer, then one more: the overflow emit disconnects the client.
	for i := 0; i < sendBuffer; i++ {
		h.Emit(UserRoom("u1"), "x", nil)
	}
	h.Emit(UserRoom("u1"), "x", nil)

	// Disconnect signals the pumps but leaves the send channel open; the
	// buffered frames are still there and the overflow frame was dropped.
	assert.True(t, isDone(c))
	assert.Len(t, c.send, sendBuffer)

	// And the client no longer receives anything.
	h.Emit(UserRoom("u1"), "x", nil)
	assert.Len(t, c.send, sendBuffer)
}

func TestConcurrentEmitsSurviveSlowClientDisconnect(t *testing.T) {
	h := NewHub(zap.NewNop())

	slow := newTestClient(h)
	h.Join(BroadcastRoom, slow)
	for i := 0; i < sendBuffer; i++ {
		h.Emit(BroadcastRoom, "x", nil)
	}

	healthy := make([]*Client, 50)
	for i := range healthy {
		healthy[i] = &Client{hub: h, send: make(chan []byte, 4096), done: make(chan struct{})}
		h.Join(BroadcastRoom, healthy[i])
	}

	// Several emitters race to drop the slow client. A frame sent to a client
	// another emitter just disconnected must be skipped, never panic.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				h.Emit(BroadcastRoom, "x", nil)
			}
		}()
	}
	wg.Wait()

	assert.True(t, isDone(slow))
	for _, c := range healthy {
		assert.False(t, isDone(c))
	}
}

func TestRoomHelpers(t *testing.T) {
	assert.Equal(t, "user-u1", UserRoom("u1"))
	assert.Equal(t, "mechanic-m1", MechanicRoom("m1"))
	assert.Equal(t, "unassigned-requests", BroadcastRoom)
}
