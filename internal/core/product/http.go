// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tienda/internal/platform/middleware"
	requestutil "github.com/taibuivan/tienda/internal/platform/request"
	"github.com/taibuivan/tienda/internal/platform/respond"
	"github.com/taibuivan/tienda/internal/platform/sec"
	"github.com/taibuivan/tienda/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listProducts)
	router.Get("/{productID}", handler.getProduct)

	// Catalog management
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createProduct)
		adminRoute.Put("/{productID}", handler.updateProduct)
		adminRoute.Delete("/{productID}", handler.deleteProduct)
	})
}

func (handler *Handler) listProducts(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	paginationParams := pagination.FromQuery(query)

	filter := Filter{
		Query: query.Get("query"),
		Sort:  query.Get("sort"),
	}

	products, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, products, pagination.NewMeta(paginationParams, total))
}

func (handler *Handler) getProduct(writer http.ResponseWriter, request *http.Request) {
	productID, err := requestutil.UUIDParam(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Get(request.Context(), productID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}

func (handler *Handler) createProduct(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, product)
}

func (handler *Handler) updateProduct(writer http.ResponseWriter, request *http.Request) {
	productID, err := requestutil.UUIDParam(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Update(request.Context(), productID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}

func (handler *Handler) deleteProduct(writer http.ResponseWriter, request *http.Request) {
	productID, err := requestutil.UUIDParam(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Delete(request.Context(), productID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}
