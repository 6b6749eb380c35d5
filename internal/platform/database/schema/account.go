// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// AccountTable represents the 'account' table
type AccountTable struct {
	Table        string
	ID           string
	Email        string
	Name         string
	PasswordHash string
	PermissionID string
	CreatedAt    string
	UpdatedAt    string
}

// Account is the schema definition for account
var Account = AccountTable{
	Table:        "account",
	ID:           "id",
	Email:        "email",
	Name:         "name",
	PasswordHash: "password_hash",
	PermissionID: "permission_id",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

// Columns returns all standard column names
func (t AccountTable) Columns() []string {
	return []string{t.ID, t.Email, t.Name, t.PasswordHash, t.PermissionID, t.CreatedAt, t.UpdatedAt}
}
