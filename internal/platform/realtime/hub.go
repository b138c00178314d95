// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package realtime provides a websocket fan-out hub.

Every frame in either direction is a JSON [Envelope] of the form
{"event": "...", "data": ...}. Domain packages register handlers for inbound
events with [Hub.On] and push to all clients with [Hub.Broadcast].

Architecture:

  - One goroutine ([Hub.Run]) owns the client set.
  - Each client has a read pump (dispatching inbound events) and a write pump
    (draining a bounded queue and sending pings).
  - A client whose queue is full is dropped rather than slowing the others.
*/
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/taibuivan/tienda/internal/platform/constants"
	"github.com/taibuivan/tienda/internal/platform/ctxutil"
)

// EventError is sent to a single client when its request could not be served.
const EventError = "error"

// ErrHubStopped is returned when sending after [Hub.Run] has returned.
var ErrHubStopped = errors.New("realtime: hub stopped")

// Envelope is the wire format of every frame.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ErrorPayload is the data of an [EventError] frame.
type ErrorPayload struct {
	Message string `json:"message"`
}

// HandlerFunc serves one inbound event from client.
type HandlerFunc func(ctx context.Context, client *Client, data json.RawMessage)

// ConnectFunc runs once for every newly registered client.
type ConnectFunc func(ctx context.Context, client *Client)

// Hub tracks connected clients and fans messages out to them.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	handlers  map[string]HandlerFunc
	onConnect []ConnectFunc

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	// ctx is the Run context, handed to handlers.
	ctx context.Context
}

// NewHub creates a hub. checkOrigin decides which browser origins may connect;
// nil accepts same-origin requests only.
func NewHub(logger *slog.Logger, checkOrigin func(*http.Request) bool) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
		handlers:   make(map[string]HandlerFunc),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, constants.SocketSendBuffer),
		done:       make(chan struct{}),
		ctx:        context.Background(),
	}
}

// On registers the handler for an inbound event name. Must be called before [Hub.Run].
func (hub *Hub) On(event string, handler HandlerFunc) {
	hub.handlers[event] = handler
}

// OnConnect registers a hook that runs for each new client. Must be called before [Hub.Run].
func (hub *Hub) OnConnect(hook ConnectFunc) {
	hub.onConnect = append(hub.onConnect, hook)
}

// Run owns the client set until ctx is cancelled, then closes every connection.
func (hub *Hub) Run(ctx context.Context) {
	hub.ctx = ctx
	clients := make(map[*Client]struct{})

	defer func() {
		close(hub.done)
		for client := range clients {
			client.close()
		}
	}()

	for {
		select {
		case client := <-hub.register:
			clients[client] = struct{}{}
			hub.logger.Debug("socket_client_connected", slog.Int("clients", len(clients)))

		case client := <-hub.unregister:
			if _, ok := clients[client]; ok {
				delete(clients, client)
				client.close()
				hub.logger.Debug("socket_client_disconnected", slog.Int("clients", len(clients)))
			}

		case frame := <-hub.broadcast:
			for client := range clients {
				if !client.enqueue(frame) {
					// Slow consumer
					delete(clients, client)
					client.close()
					hub.logger.Warn("socket_client_dropped", slog.String("remote", client.remote))
				}
			}

		case <-ctx.Done():
			return
		}
	}
}

// Broadcast sends an event to every connected client.
func (hub *Hub) Broadcast(ctx context.Context, event string, data any) error {
	frame, err := encode(event, data)
	if err != nil {
		return err
	}

	select {
	case hub.broadcast <- frame:
		return nil
	case <-hub.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ServeHTTP upgrades the request to a websocket and starts the client pumps.
func (hub *Hub) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	connection, err := hub.upgrader.Upgrade(writer, request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		hub.logger.Warn("socket_upgrade_failed", slog.Any("error", err))
		return
	}

	client := &Client{
		hub:        hub,
		connection: connection,
		send:       make(chan []byte, constants.SocketSendBuffer),
		remote:     request.RemoteAddr,
		claims:     ctxutil.GetAuthUser(request.Context()),
	}

	select {
	case hub.register <- client:
	case <-hub.done:
		_ = connection.Close()
		return
	}

	// Frames queued here are flushed once the write pump starts
	for _, hook := range hub.onConnect {
		hook(hub.ctx, client)
	}

	go client.writePump()
	go client.readPump()
}

func (hub *Hub) dispatch(client *Client, envelope Envelope) {
	handler, ok := hub.handlers[envelope.Event]
	if !ok {
		client.Error(fmt.Sprintf("unknown event %q", envelope.Event))
		return
	}
	handler(hub.ctx, client, envelope.Data)
}

func encode(event string, data any) ([]byte, error) {
	envelope := Envelope{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("realtime: encode %s: %w", event, err)
		}
		envelope.Data = raw
	}

	frame, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("realtime: encode envelope: %w", err)
	}
	return frame, nil
}
