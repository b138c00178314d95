// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package realtime

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tienda/internal/platform/constants"
)

func newTestClient(hub *Hub) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, constants.SocketSendBuffer),
		remote: "test",
	}
}

/*
TestClient_EmitDuringUnregister verifies a client can be emitted to while the
hub drops it. Run with -race.
*/
func TestClient_EmitDuringUnregister(t *testing.T) {
	hub := NewHub(slog.New(slog.NewJSONHandler(io.Discard, nil)), nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	for range 50 {
		client := newTestClient(hub)
		hub.register <- client

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range constants.SocketSendBuffer * 2 {
				client.Emit("tick", 1)
			}
		}()
		go func() {
			defer wg.Done()
			hub.unregister <- client
		}()
		wg.Wait()

		// The hub handles one message at a time, so this returns after the unregister finished
		hub.register <- newTestClient(hub)

		assert.False(t, client.Emit("tick", 1))
	}
}

/*
TestClient_Close verifies closing is idempotent and stops further emits.
*/
func TestClient_Close(t *testing.T) {
	client := newTestClient(NewHub(slog.New(slog.NewJSONHandler(io.Discard, nil)), nil))

	assert.True(t, client.Emit("tick", 1))
	client.close()
	client.close()
	assert.False(t, client.Emit("tick", 2))

	frame, ok := <-client.send
	assert.True(t, ok)
	assert.Contains(t, string(frame), "tick")
	_, ok = <-client.send
	assert.False(t, ok)
}
