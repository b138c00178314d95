// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tienda/internal/platform/database/schema"
	"github.com/taibuivan/tienda/internal/platform/dberr"
	"github.com/taibuivan/tienda/pkg/convert"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var productColumns = strings.Join(schema.ShopProduct.Columns(), ", ")

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Product, int, error) {
	where, args := filterClause(filter.Query)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s %s`, schema.ShopProduct.Table, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Product")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY %s LIMIT $%s OFFSET $%s`,
		productColumns, schema.ShopProduct.Table, where, orderClause(filter.Sort),
		itos(len(args)+1), itos(len(args)+2),
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Product")
	}

	products, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Product")
	}

	return products, total, nil
}

func (repository *PostgresRepository) All(context context.Context) ([]*Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC, %s ASC`,
		productColumns, schema.ShopProduct.Table, schema.ShopProduct.CreatedAt, schema.ShopProduct.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "Product")
	}

	products, err := pgx.CollectRows(rows, scanProduct)
	return products, dberr.Wrap(err, "Product")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		productColumns, schema.ShopProduct.Table, schema.ShopProduct.ID,
	)

	rows, err := repository.db.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "Product")
	}

	product, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return product, nil
}

func (repository *PostgresRepository) Exists(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.ShopProduct.Table, schema.ShopProduct.ID,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "Product")
	}
	return exists, nil
}

func (repository *PostgresRepository) Create(context context.Context, product *Product) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		schema.ShopProduct.Table, productColumns,
	)

	_, err := repository.db.Exec(context, query,
		product.ID, product.Title, product.Description, product.Code, product.Price, product.Stock,
		product.Category, product.Status, product.Thumbnails, product.CreatedAt, product.UpdatedAt,
	)
	return classifyWrite(err)
}

func (repository *PostgresRepository) Update(context context.Context, product *Product) error {
	p := schema.ShopProduct
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10
		WHERE %s = $1
	`,
		p.Table, p.Title, p.Description, p.Code, p.Price, p.Stock, p.Category, p.Status, p.Thumbnails, p.UpdatedAt,
		p.ID,
	)

	tag, err := repository.db.Exec(context, query,
		product.ID, product.Title, product.Description, product.Code, product.Price, product.Stock,
		product.Category, product.Status, product.Thumbnails, product.UpdatedAt,
	)
	if err != nil {
		return classifyWrite(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) (*Product, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING %s`,
		schema.ShopProduct.Table, schema.ShopProduct.ID, productColumns,
	)

	rows, err := repository.db.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "Product")
	}

	product, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return product, nil
}

// # Query Helpers

func filterClause(query string) (string, []any) {
	if status, ok := convert.ToBoolOK(query); ok {
		return fmt.Sprintf("WHERE %s = $1", schema.ShopProduct.Status), []any{status}
	}

	needle := strings.TrimSpace(query)
	if needle == "" {
		return "", nil
	}

	return fmt.Sprintf("WHERE (%s ILIKE $1 OR %s ILIKE $1)", schema.ShopProduct.Title, schema.ShopProduct.Category),
		[]any{"%" + escapeLike(needle) + "%"}
}

func orderClause(sort string) string {
	switch sort {
	case SortAsc:
		return fmt.Sprintf("%s ASC, %s ASC", schema.ShopProduct.Price, schema.ShopProduct.ID)
	case SortDesc:
		return fmt.Sprintf("%s DESC, %s ASC", schema.ShopProduct.Price, schema.ShopProduct.ID)
	default:
		return fmt.Sprintf("%s DESC, %s DESC", schema.ShopProduct.CreatedAt, schema.ShopProduct.ID)
	}
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

func scanProduct(row pgx.CollectableRow) (*Product, error) {
	product := &Product{}
	err := row.Scan(
		&product.ID, &product.Title, &product.Description, &product.Code, &product.Price, &product.Stock,
		&product.Category, &product.Status, &product.Thumbnails, &product.CreatedAt, &product.UpdatedAt,
	)
	return product, err
}

func classifyWrite(err error) error {
	if err == nil {
		return nil
	}
	if dberr.IsUniqueViolation(err, "product_code_key") {
		return ErrDuplicateCode
	}
	return dberr.Wrap(err, "Product")
}

func notFoundOr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrProductNotFound
	}
	return dberr.Wrap(err, "Product")
}

func itos(i int) string {
	return strconv.Itoa(i)
}
