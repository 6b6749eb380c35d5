// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Permissions

// Permission is the access level attached to an account and embedded in its tokens.
//
// The enumeration is ordered by decreasing privilege only by convention.
// Authorization never compares levels; it checks set membership.
type Permission string

const (
	// Full administrative access
	PermissionAdmin Permission = "ADMIN"

	// Can create, edit and publish articles
	PermissionEditor Permission = "EDITOR"

	// Can only read published articles; assigned at registration
	PermissionReader Permission = "READER"
)

// Permissions returns every known permission.
func Permissions() []Permission {
	return []Permission{PermissionAdmin, PermissionEditor, PermissionReader}
}

// ParsePermission maps a stored or transmitted name onto a known [Permission].
func ParsePermission(name string) (Permission, bool) {
	for _, permission := range Permissions() {
		if string(permission) == name {
			return permission, true
		}
	}
	return "", false
}

// In reports whether p is a member of set.
func (p Permission) In(set []Permission) bool {
	for _, candidate := range set {
		if candidate == p {
			return true
		}
	}
	return false
}

// String implements [fmt.Stringer].
func (p Permission) String() string {
	return string(p)
}
