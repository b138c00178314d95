// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tienda/internal/core/product"
	"github.com/taibuivan/tienda/internal/platform/database/schema"
	"github.com/taibuivan/tienda/internal/platform/dberr"
	"github.com/taibuivan/tienda/pkg/slice"
)

// Foreign keys of shop.cartitem, as named by PostgreSQL.
const (
	constraintItemProduct = "cartitem_productid_fkey"
	constraintItemCart    = "cartitem_cartid_fkey"
)

// PostgresRepository implements [Repository] using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Cart Rows

func (repository *PostgresRepository) Create(context context.Context, cart *Cart) error {
	c := schema.ShopCart
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`, c.Table, c.ID, c.CreatedAt, c.UpdatedAt)

	_, err := repository.db.Exec(context, query, cart.ID, cart.CreatedAt, cart.UpdatedAt)
	return dberr.Wrap(err, "Cart")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Cart, error) {
	cart, err := repository.findCart(context, id)
	if err != nil {
		return nil, err
	}

	i := schema.ShopCartItem
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1 ORDER BY %s`,
		i.ProductID, i.Quantity, i.Table, i.CartID, i.Position,
	)

	rows, err := repository.db.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "Cart")
	}

	cart.Products, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (LineItem, error) {
		var line LineItem
		err := row.Scan(&line.ProductID, &line.Quantity)
		return line, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Cart")
	}

	return cart, nil
}

/*
FindByIDPopulated reads the cart and joins every line with its product.

Lines whose product was deleted are removed by the cascading foreign key, so
every returned line carries a product.
*/
func (repository *PostgresRepository) FindByIDPopulated(context context.Context, id string) (*Cart, error) {
	cart, err := repository.findCart(context, id)
	if err != nil {
		return nil, err
	}

	i := schema.ShopCartItem
	p := schema.ShopProduct
	productColumns := strings.Join(slice.Map(p.Columns(), func(column string) string { return "p." + column }), ", ")

	query := fmt.Sprintf(`
		SELECT ci.%s, %s
		FROM %s ci
		JOIN %s p ON p.%s = ci.%s
		WHERE ci.%s = $1
		ORDER BY ci.%s
	`,
		i.Quantity, productColumns,
		i.Table,
		p.Table, p.ID, i.ProductID,
		i.CartID,
		i.Position,
	)

	rows, err := repository.db.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "Cart")
	}

	cart.Products, err = pgx.CollectRows(rows, scanPopulatedLine)
	if err != nil {
		return nil, dberr.Wrap(err, "Cart")
	}

	return cart, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.ShopCart.Table, schema.ShopCart.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Cart")
	}
	if tag.RowsAffected() == 0 {
		return ErrCartNotFound
	}
	return nil
}

// # Line Items

/*
AddLine upserts the line inside a transaction that first locks the cart row.

The upsert increments an existing quantity in place, so two concurrent adds
of the same product both count. A merge that would pass [MaxQuantity]
updates no row and yields [ErrInvalidQuantity].
*/
func (repository *PostgresRepository) AddLine(context context.Context, cartID, productID string, quantity int) error {
	i := schema.ShopCartItem
	upsert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = %s.%s + EXCLUDED.%s
		WHERE %s.%s + EXCLUDED.%s <= $4
	`,
		i.Table, i.CartID, i.ProductID, i.Quantity,
		i.CartID, i.ProductID, i.Quantity, i.Table, i.Quantity, i.Quantity,
		i.Table, i.Quantity, i.Quantity,
	)

	return pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		if err := touchCart(context, tx, cartID); err != nil {
			return err
		}

		tag, err := tx.Exec(context, upsert, cartID, productID, quantity, MaxQuantity)
		switch {
		case err == nil && tag.RowsAffected() == 0:
			return ErrInvalidQuantity
		case err == nil:
			return nil
		case dberr.IsForeignKeyViolation(err, constraintItemProduct):
			return ErrProductNotFound
		case dberr.IsForeignKeyViolation(err, constraintItemCart):
			return ErrCartNotFound
		default:
			return dberr.Wrap(err, "Cart")
		}
	})
}

func (repository *PostgresRepository) DeleteLine(context context.Context, cartID, productID string) error {
	i := schema.ShopCartItem
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, i.Table, i.CartID, i.ProductID)

	return pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		if err := touchCart(context, tx, cartID); err != nil {
			return err
		}

		tag, err := tx.Exec(context, query, cartID, productID)
		if err != nil {
			return dberr.Wrap(err, "Cart")
		}
		if tag.RowsAffected() == 0 {
			return ErrProductNotInCart
		}
		return nil
	})
}

func (repository *PostgresRepository) Clear(context context.Context, cartID string) error {
	i := schema.ShopCartItem
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, i.Table, i.CartID)

	return pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		if err := touchCart(context, tx, cartID); err != nil {
			return err
		}

		_, err := tx.Exec(context, query, cartID)
		return dberr.Wrap(err, "Cart")
	})
}

// # Helpers

func (repository *PostgresRepository) findCart(context context.Context, id string) (*Cart, error) {
	c := schema.ShopCart
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`, c.ID, c.CreatedAt, c.UpdatedAt, c.Table, c.ID)

	cart := &Cart{Products: []LineItem{}}
	err := repository.db.QueryRow(context, query, id).Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, dberr.Wrap(err, "Cart")
	}

	return cart, nil
}

// touchCart bumps the cart's timestamp, holding its row lock until the
// transaction ends.
func touchCart(context context.Context, tx pgx.Tx, cartID string) error {
	c := schema.ShopCart
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1`, c.Table, c.UpdatedAt, c.ID)

	tag, err := tx.Exec(context, query, cartID)
	if err != nil {
		return dberr.Wrap(err, "Cart")
	}
	if tag.RowsAffected() == 0 {
		return ErrCartNotFound
	}
	return nil
}

func scanPopulatedLine(row pgx.CollectableRow) (LineItem, error) {
	item := &product.Product{}
	line := LineItem{Product: item}

	err := row.Scan(
		&line.Quantity,
		&item.ID, &item.Title, &item.Description, &item.Code, &item.Price, &item.Stock,
		&item.Category, &item.Status, &item.Thumbnails, &item.CreatedAt, &item.UpdatedAt,
	)
	line.ProductID = item.ID

	return line, err
}
