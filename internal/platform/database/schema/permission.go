// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column names used by the PostgreSQL stores.
//
// Queries are assembled from these descriptors so a rename in migrations/
// has exactly one Go counterpart.
package schema

// PermissionTable represents the 'permission' table
type PermissionTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// Permission is the schema definition for permission
var Permission = PermissionTable{
	Table:       "permission",
	ID:          "id",
	Name:        "name",
	Description: "description",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// Columns returns all standard column names
func (t PermissionTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt}
}
