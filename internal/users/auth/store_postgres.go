// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tienda/internal/platform/database/schema"
	"github.com/taibuivan/tienda/internal/platform/dberr"
	"github.com/taibuivan/tienda/internal/platform/sec"
)

// constraintEmail is the unique constraint on users.account(email).
const constraintEmail = "account_email_key"

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userColumns = strings.Join(schema.UserAccount.Columns(), ", ")

/*
Create persists a new account into the users.account table.

Returns:
  - error: ErrDuplicateIdentity on the email constraint, or database errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.UserAccount.Table, userColumns,
	)

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Age,
		user.Role,
		user.CartID,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if dberr.IsUniqueViolation(err, constraintEmail) {
		return ErrDuplicateIdentity
	}
	return dberr.Wrap(err, "User")
}

// FindByID retrieves an account by primary key.
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findOne(context, schema.UserAccount.ID, id)
}

// FindByEmail retrieves an account by its exact email.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findOne(context, schema.UserAccount.Email, email)
}

/*
UpdatePassword replaces only the password hash.

Returns:
  - error: ErrUnknownUser if no row matched
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, email, newHash string) error {
	u := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`, u.Table, u.Password, u.UpdatedAt, u.Email)

	tag, err := repository.pool.Exec(context, query, email, newHash, time.Now().UTC())
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return ErrUnknownUser
	}
	return nil
}

/*
UpdateRole sets the role and returns the updated row.

Returns:
  - *User: Updated entity
  - error: ErrUnknownUser if no row matched
*/
func (repository *PostgresUserRepository) UpdateRole(context context.Context, id string, role sec.UserRole) (*User, error) {
	u := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1 RETURNING %s`,
		u.Table, u.Role, u.UpdatedAt, u.ID, userColumns,
	)

	rows, err := repository.pool.Query(context, query, id, role, time.Now().UTC())
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	user, err := pgx.CollectExactlyOneRow(rows, ScanUser)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

func (repository *PostgresUserRepository) findOne(context context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns, schema.UserAccount.Table, column)

	rows, err := repository.pool.Query(context, query, value)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	user, err := pgx.CollectExactlyOneRow(rows, ScanUser)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

// ScanUser maps a row selected with [schema.UserAccountTable.Columns].
func ScanUser(row pgx.CollectableRow) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Age,
		&user.Role,
		&user.CartID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}
