// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import "context"

// Repository persists catalog entries. FindByID, Update and Delete return
// [ErrProductNotFound] for unknown IDs; Create and Update return
// [ErrDuplicateCode] when the code is taken.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Product, int, error)
	All(context context.Context) ([]*Product, error)
	FindByID(context context.Context, id string) (*Product, error)
	Exists(context context.Context, id string) (bool, error)
	Create(context context.Context, product *Product) error
	Update(context context.Context, product *Product) error
	Delete(context context.Context, id string) (*Product, error)
}
