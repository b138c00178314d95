// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/tienda/pkg/uuid"
)

// # Collaborators

// Catalog reports whether a product exists.
type Catalog interface {
	Exists(context context.Context, productID string) (bool, error)
}

// OwnerLookup resolves the cart assigned to an account. It returns "" when
// the account has no cart.
type OwnerLookup interface {
	CartIDOf(context context.Context, userID string) (string, error)
}

// # Service Layer

// Service orchestrates cart operations.
type Service struct {
	repo    Repository
	catalog Catalog
	owners  OwnerLookup
	logger  *slog.Logger
	now     func() time.Time
}

// NewService constructs a new cart [Service].
func NewService(repo Repository, catalog Catalog, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
		now:     time.Now,
	}
}

// SetOwnerLookup wires the account lookup used by the own-cart operations.
// The account module depends on carts, so it is attached after both exist.
func (service *Service) SetOwnerLookup(owners OwnerLookup) {
	service.owners = owners
}

// # Cart Lifecycle

/*
CreateCart inserts an empty cart.

Returns:
  - *Cart: The new cart with no line items
  - error: Persistence failures
*/
func (service *Service) CreateCart(context context.Context) (*Cart, error) {
	now := service.now().UTC()
	cart := &Cart{
		ID:        uuid.New(),
		Products:  []LineItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repo.Create(context, cart); err != nil {
		return nil, err
	}

	service.logger.Info("cart_created", slog.String("cart_id", cart.ID))
	return cart, nil
}

/*
GetCart reads a cart, joined with product data when populate is set.

Returns:
  - *Cart: The cart
  - error: ErrCartNotFound if missing
*/
func (service *Service) GetCart(context context.Context, cartID string, populate bool) (*Cart, error) {
	if populate {
		return service.repo.FindByIDPopulated(context, cartID)
	}
	return service.repo.FindByID(context, cartID)
}

// DeleteCart removes a cart. Registration uses it to undo a cart whose
// account could not be created.
func (service *Service) DeleteCart(context context.Context, cartID string) error {
	if err := service.repo.Delete(context, cartID); err != nil {
		return err
	}

	service.logger.Warn("cart_deleted", slog.String("cart_id", cartID))
	return nil
}

// # Line Items

/*
AddProduct adds quantity units of a product to a cart.

An existing line for the product is incremented rather than duplicated.

Parameters:
  - context: context.Context
  - cartID, productID: string
  - quantity: int (1..MaxQuantity, and the merged line may not exceed MaxQuantity)

Returns:
  - *Cart: The updated cart, unpopulated
  - error: ErrInvalidQuantity, ErrCartNotFound or ErrProductNotFound
*/
func (service *Service) AddProduct(context context.Context, cartID, productID string, quantity int) (*Cart, error) {
	if quantity <= 0 || quantity > MaxQuantity {
		return nil, ErrInvalidQuantity
	}

	if _, err := service.repo.FindByID(context, cartID); err != nil {
		return nil, err
	}

	exists, err := service.catalog.Exists(context, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProductNotFound
	}

	if err := service.repo.AddLine(context, cartID, productID, quantity); err != nil {
		return nil, err
	}

	service.logger.Info("cart_product_added",
		slog.String("cart_id", cartID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return service.repo.FindByID(context, cartID)
}

/*
RemoveProduct deletes the product's line from a cart.

Returns:
  - *Cart: The updated cart, unpopulated
  - error: ErrCartNotFound or ErrProductNotInCart
*/
func (service *Service) RemoveProduct(context context.Context, cartID, productID string) (*Cart, error) {
	if err := service.repo.DeleteLine(context, cartID, productID); err != nil {
		return nil, err
	}

	service.logger.Info("cart_product_removed",
		slog.String("cart_id", cartID),
		slog.String("product_id", productID),
	)

	return service.repo.FindByID(context, cartID)
}

// Clear empties a cart. Clearing an empty cart succeeds.
func (service *Service) Clear(context context.Context, cartID string) (*Cart, error) {
	if err := service.repo.Clear(context, cartID); err != nil {
		return nil, err
	}

	service.logger.Info("cart_cleared", slog.String("cart_id", cartID))
	return service.repo.FindByID(context, cartID)
}

// # Own Cart

/*
MyCart returns the populated cart assigned to userID.

Returns:
  - *Cart: The populated cart
  - error: ErrCartNotFound if the account has no cart
*/
func (service *Service) MyCart(context context.Context, userID string) (*Cart, error) {
	cartID, err := service.ownCartID(context, userID)
	if err != nil {
		return nil, err
	}
	if cartID == "" {
		return nil, ErrCartNotFound
	}

	return service.repo.FindByIDPopulated(context, cartID)
}

/*
AddToOwnCart adds a product to the cart assigned to userID.

Returns:
  - *Cart: The updated cart, unpopulated
  - error: ErrNoCartAssigned, or any error of [Service.AddProduct]
*/
func (service *Service) AddToOwnCart(context context.Context, userID, productID string, quantity int) (*Cart, error) {
	cartID, err := service.ownCartID(context, userID)
	if err != nil {
		return nil, err
	}
	if cartID == "" {
		return nil, ErrNoCartAssigned
	}

	return service.AddProduct(context, cartID, productID, quantity)
}

func (service *Service) ownCartID(context context.Context, userID string) (string, error) {
	if service.owners == nil {
		return "", nil
	}
	return service.owners.CartIDOf(context, userID)
}
