package brackets

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastToRoom(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	room := RoomForTournament(7)
	inRoom := &Client{Hub: hub, Send: make(chan []byte, 1), Room: room}
	other := &Client{Hub: hub, Send: make(chan []byte, 1), Room: RoomForTournament(8)}
	require.True(t, hub.Join(inRoom))
	require.True(t, hub.Join(other))

	require.Eventually(t, func() bool { return hub.RoomSize(room) == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom(room, WebSocketMessage{Type: MessageMatchUpdated, Payload: map[string]int{"match_id": 1}, RoomID: room})

	select {
	case raw := <-inRoom.Send:
		var msg WebSocketMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, MessageMatchUpdated, msg.Type)
		assert.Equal(t, "tournament_7", msg.RoomID)
	case <-time.After(time.Second):
		t.Fatal("message was not delivered")
	}
	assert.Empty(t, other.Send)

	hub.Leave(inRoom)
	require.Eventually(t, func() bool { return hub.RoomSize(room) == 0 }, time.Second, 10*time.Millisecond)

	inRoom.Mu.Lock()
	assert.True(t, inRoom.IsClosed)
	inRoom.Mu.Unlock()
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	room := RoomForTournament(3)
	client := &Client{Hub: hub, Send: make(chan []byte, 1), Room: room}
	require.True(t, hub.Join(client))
	require.Eventually(t, func() bool { return hub.RoomSize(room) == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	assert.Equal(t, 0, hub.RoomSize(room))

	returned := make(chan bool)
	go func() {
		hub.Leave(client)
		returned <- hub.Join(&Client{Hub: hub, Send: make(chan []byte, 1), Room: room})
	}()
	select {
	case joined := <-returned:
		assert.False(t, joined)
	case <-time.After(time.Second):
		t.Fatal("Join or Leave blocked after shutdown")
	}
}
