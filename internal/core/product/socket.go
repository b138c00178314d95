// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/taibuivan/tienda/internal/platform/apperr"
	"github.com/taibuivan/tienda/internal/platform/realtime"
	"github.com/taibuivan/tienda/internal/platform/sec"
	"github.com/taibuivan/tienda/pkg/uuid"
)

// SocketEvents serves the catalog over the realtime hub.
//
// New connections receive the catalog snapshot. Admin connections may send
// EventCreate and EventDelete; the resulting snapshot is broadcast by the
// service. Failures are reported to the sender only.
type SocketEvents struct {
	service *Service
	logger  *slog.Logger
}

func NewSocketEvents(service *Service, logger *slog.Logger) *SocketEvents {
	return &SocketEvents{service: service, logger: logger}
}

// Register wires the handlers into hub. Call before the hub runs.
func (events *SocketEvents) Register(hub *realtime.Hub) {
	hub.OnConnect(events.sendSnapshot)
	hub.On(EventCreate, events.create)
	hub.On(EventDelete, events.delete)
}

func (events *SocketEvents) sendSnapshot(context context.Context, client *realtime.Client) {
	products, err := events.service.All(context)
	if err != nil {
		events.logger.Error("socket_snapshot_failed", slog.Any("error", err))
		client.Error("No se pudieron cargar los productos")
		return
	}
	client.Emit(EventSnapshot, products)
}

func (events *SocketEvents) create(context context.Context, client *realtime.Client, data json.RawMessage) {
	if !isAdmin(client) {
		client.Error("Insufficient permissions")
		return
	}

	var input CreateInput
	if err := json.Unmarshal(data, &input); err != nil {
		client.Error("Invalid product payload")
		return
	}

	if _, err := events.service.Create(context, input); err != nil {
		client.Error(clientMessage(err))
	}
}

func (events *SocketEvents) delete(context context.Context, client *realtime.Client, data json.RawMessage) {
	if !isAdmin(client) {
		client.Error("Insufficient permissions")
		return
	}

	productID := decodeID(data)
	if !uuid.Valid(productID) {
		client.Error("Invalid product id")
		return
	}

	if _, err := events.service.Delete(context, productID); err != nil {
		client.Error(clientMessage(err))
	}
}

// decodeID accepts either "id" or {"id": "..."}.
func decodeID(data json.RawMessage) string {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		return id
	}

	var wrapped struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		return wrapped.ID
	}
	return ""
}

func isAdmin(client *realtime.Client) bool {
	claims := client.Claims()
	return claims != nil && sec.UserRole(claims.Role).AtLeast(sec.RoleAdmin)
}

func clientMessage(err error) string {
	if appError := apperr.As(err); appError != nil && appError.HTTPStatus < 500 {
		return appError.Message
	}
	return "An unexpected error occurred"
}
