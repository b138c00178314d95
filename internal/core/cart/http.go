// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tienda/internal/platform/middleware"
	requestutil "github.com/taibuivan/tienda/internal/platform/request"
	"github.com/taibuivan/tienda/internal/platform/respond"
	"github.com/taibuivan/tienda/pkg/convert"
	"github.com/taibuivan/tienda/pkg/pointer"
)

// # HTTP Handler

// Handler implements the HTTP layer for carts.
type Handler struct {
	service *Service
}

// NewHandler constructs a new cart [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// addRequest is the body of the add endpoints. A missing quantity means one.
type addRequest struct {
	Quantity *int `json:"quantity"`
}

func (body addRequest) quantity() int {
	if body.Quantity == nil {
		return DefaultQuantity
	}
	return pointer.Val(body.Quantity)
}

/*
RegisterRoutes mounts the cart endpoints.

Own-cart routes require a session; the others address carts by ID.
*/
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.createCart)

	// Own cart
	router.Group(func(ownRoute chi.Router) {
		ownRoute.Use(middleware.RequireAuth)

		ownRoute.Get("/my-cart", handler.getMyCart)
		ownRoute.Post("/my-cart/add/{productID}", handler.addToMyCart)
	})

	router.Get("/{cartID}", handler.getCart)
	router.Delete("/{cartID}", handler.clearCart)
	router.Post("/{cartID}/products/{productID}", handler.addProduct)
	router.Delete("/{cartID}/products/{productID}", handler.removeProduct)
}

func (handler *Handler) createCart(writer http.ResponseWriter, request *http.Request) {
	cart, err := handler.service.CreateCart(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, cart)
}

func (handler *Handler) getCart(writer http.ResponseWriter, request *http.Request) {
	cartID, err := requestutil.UUIDParam(request, FieldCartID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Populated unless ?populate=false
	populate := true
	if value, ok := convert.ToBoolOK(request.URL.Query().Get(FieldPopulate)); ok {
		populate = value
	}

	cart, err := handler.service.GetCart(request.Context(), cartID, populate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cart)
}

func (handler *Handler) addProduct(writer http.ResponseWriter, request *http.Request) {
	cartID, productID, err := lineParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body addRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	cart, err := handler.service.AddProduct(request.Context(), cartID, productID, body.quantity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cart)
}

func (handler *Handler) removeProduct(writer http.ResponseWriter, request *http.Request) {
	cartID, productID, err := lineParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cart, err := handler.service.RemoveProduct(request.Context(), cartID, productID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cart)
}

func (handler *Handler) clearCart(writer http.ResponseWriter, request *http.Request) {
	cartID, err := requestutil.UUIDParam(request, FieldCartID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cart, err := handler.service.Clear(request.Context(), cartID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cart)
}

func (handler *Handler) getMyCart(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cart, err := handler.service.MyCart(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cart)
}

func (handler *Handler) addToMyCart(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	productID, err := requestutil.UUIDParam(request, FieldProductID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body addRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	cart, err := handler.service.AddToOwnCart(request.Context(), claims.UserID, productID, body.quantity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cart)
}

func lineParams(request *http.Request) (cartID, productID string, err error) {
	if cartID, err = requestutil.UUIDParam(request, FieldCartID); err != nil {
		return "", "", err
	}
	if productID, err = requestutil.UUIDParam(request, FieldProductID); err != nil {
		return "", "", err
	}
	return cartID, productID, nil
}
