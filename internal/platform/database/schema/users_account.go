// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column identifiers used by the
// PostgreSQL stores, so SQL text never repeats raw names.
package schema

import "github.com/taibuivan/tienda/internal/platform/constants"

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Age       string
	Role      string
	CartID    string
	CreatedAt string
	UpdatedAt string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:     constants.SchemaUsers + ".account",
	ID:        "id",
	Email:     "email",
	Password:  "passwordhash",
	FirstName: "firstname",
	LastName:  "lastname",
	Age:       "age",
	Role:      "role",
	CartID:    "cartid",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Password, t.FirstName, t.LastName,
		t.Age, t.Role, t.CartID, t.CreatedAt, t.UpdatedAt,
	}
}
