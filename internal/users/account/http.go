// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tienda/internal/platform/middleware"
	requestutil "github.com/taibuivan/tienda/internal/platform/request"
	"github.com/taibuivan/tienda/internal/platform/respond"
	"github.com/taibuivan/tienda/internal/platform/sec"
	"github.com/taibuivan/tienda/pkg/pagination"
)

// Handler implements the HTTP layer for account administration.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

/*
RegisterRoutes mounts the administration endpoints.

# Security

Every route requires the admin role. Non-admin callers are rejected with 403
before any handler runs.
*/
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Get("/users", handler.listUsers)
		adminRoute.Get("/users/{userID}", handler.getUser)
		adminRoute.Put("/users/{userID}/role", handler.updateRole)
	})
}

type roleRequest struct {
	Role string `json:"role"`
}

/*
GET /api/admin/users.

Description: Paginated account list. Accepts ?role=admin|user.

Response:
  - 200: []User with pagination meta
  - 403: FORBIDDEN
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	paginationParams := pagination.FromQuery(query)

	users, total, err := handler.accountService.ListUsers(request.Context(), query.Get(FieldRole), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(paginationParams, total))
}

/*
GET /api/admin/users/{userID}.

Response:
  - 200: User
  - 404: UNKNOWN_USER
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.UUIDParam(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PUT /api/admin/users/{userID}/role.

Request:
  - Body: {"role": "admin" | "user"}

Response:
  - 200: User: The updated account
  - 400: VALIDATION_ERROR for a malformed ID or unknown role
  - 404: UNKNOWN_USER
*/
func (handler *Handler) updateRole(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.UUIDParam(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input roleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.ChangeRole(request.Context(), claims.UserID, userID, input.Role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
