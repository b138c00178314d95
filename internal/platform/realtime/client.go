// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/taibuivan/tienda/internal/platform/constants"
	"github.com/taibuivan/tienda/internal/platform/sec"
)

// Client is one websocket connection registered with a [Hub].
type Client struct {
	hub        *Hub
	connection *websocket.Conn
	remote     string
	claims     *sec.AuthClaims

	// mu guards send and closed. send is only closed under mu.
	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// Claims returns the identity resolved when the connection was opened, or nil.
func (client *Client) Claims() *sec.AuthClaims {
	return client.claims
}

// Emit queues an event for this client only. It reports false when the
// client is gone or its queue is full.
func (client *Client) Emit(event string, data any) bool {
	frame, err := encode(event, data)
	if err != nil {
		client.hub.logger.Error("socket_emit_encode_failed", slog.String("event", event), slog.Any("error", err))
		return false
	}

	return client.enqueue(frame)
}

// enqueue queues frame without blocking. It reports false once the client
// has been closed or when its queue is full.
func (client *Client) enqueue(frame []byte) bool {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.closed {
		return false
	}

	select {
	case client.send <- frame:
		return true
	default:
		return false
	}
}

// close ends the send queue, which makes the write pump say goodbye. Safe to
// call more than once.
func (client *Client) close() {
	client.mu.Lock()
	defer client.mu.Unlock()

	if !client.closed {
		client.closed = true
		close(client.send)
	}
}

// Error emits an [EventError] frame with message.
func (client *Client) Error(message string) {
	client.Emit(EventError, ErrorPayload{Message: message})
}

// readPump dispatches inbound frames until the connection fails.
func (client *Client) readPump() {
	defer func() {
		select {
		case client.hub.unregister <- client:
		case <-client.hub.done:
		}
		_ = client.connection.Close()
	}()

	client.connection.SetReadLimit(constants.SocketMaxMessageSize)
	_ = client.connection.SetReadDeadline(time.Now().Add(constants.SocketPongWait))
	client.connection.SetPongHandler(func(string) error {
		return client.connection.SetReadDeadline(time.Now().Add(constants.SocketPongWait))
	})

	for {
		_, payload, err := client.connection.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				client.hub.logger.Debug("socket_read_failed", slog.Any("error", err))
			}
			return
		}

		var envelope Envelope
		if err := json.Unmarshal(payload, &envelope); err != nil || envelope.Event == "" {
			client.Error("malformed message")
			continue
		}

		client.hub.dispatch(client, envelope)
	}
}

// writePump drains the send queue and keeps the connection alive with pings.
func (client *Client) writePump() {
	ticker := time.NewTicker(constants.SocketPingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.connection.Close()
	}()

	for {
		select {
		case frame, ok := <-client.send:
			_ = client.connection.SetWriteDeadline(time.Now().Add(constants.SocketWriteWait))
			if !ok {
				_ = client.connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.connection.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			_ = client.connection.SetWriteDeadline(time.Now().Add(constants.SocketWriteWait))
			if err := client.connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
