// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tienda/internal/platform/database/schema"
	"github.com/taibuivan/tienda/internal/platform/dberr"
	"github.com/taibuivan/tienda/internal/users/auth"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL-backed [AccountRepository].
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
List retrieves a page of accounts from the users.account table.

Parameters:
  - context: context.Context
  - role: string (empty for every role)
  - limit, offset: int

Returns:
  - []*auth.User: Hydrated identity entities
  - int: Total matching count
  - error: Database execution failure
*/
func (repository *PostgresAccountRepository) List(context context.Context, role string, limit, offset int) ([]*auth.User, int, error) {
	u := schema.UserAccount

	where := ""
	var args []any
	if role != "" {
		where = fmt.Sprintf("WHERE %s = $1", u.Role)
		args = append(args, role)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s %s`, u.Table, where)
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Account")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		%s
		ORDER BY %s ASC, %s ASC
		LIMIT $%s OFFSET $%s`,
		strings.Join(u.Columns(), ", "),
		u.Table,
		where,
		u.CreatedAt, u.ID,
		strconv.Itoa(len(args)+1), strconv.Itoa(len(args)+2),
	)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Account")
	}

	users, err := pgx.CollectRows(rows, auth.ScanUser)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Account")
	}

	return users, total, nil
}
