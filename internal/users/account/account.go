// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages the registered users of Scribe.

It covers public self-registration and the administrative lifecycle of an
account (listing, lookup, partial update and removal).

# Architecture

  - Entities: User, Removed (DTO).
  - Repository: AccountRepository, implemented over PostgreSQL.
  - Security: Passwords are only ever stored as bcrypt digests and never
    serialized.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/scribe/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
type User struct {
	ID           int64          `json:"id"`
	Email        string         `json:"email"`
	Name         string         `json:"name"`
	PasswordHash string         `json:"-"` // Explicitly omitted from JSON for security.
	Permission   sec.Permission `json:"permission"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Identity projects the account onto the claims carried by an access token.
func (user *User) Identity() sec.Identity {
	return sec.Identity{
		ID:         user.ID,
		Email:      user.Email,
		Permission: user.Permission,
	}
}

// Removed is the summary returned after an account is deleted.
type Removed struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// # Field Identifiers

const (
	FieldEmail          = "email"
	FieldName           = "name"
	FieldPassword       = "password"
	FieldPermissionName = "permission_name"
)

// # Constraints

const (
	NameMinLength     = 3
	NameMaxLength     = 255
	EmailMaxLength    = 320
	PasswordMinLength = 6
	PasswordMaxLength = 30
)

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
type AccountRepository interface {
	/*
		Create inserts user with the given permission and fills ID and timestamps.

		Returns:
		  - error: CONFLICT when the email is already taken
	*/
	Create(context context.Context, user *User) error

	// FindByID returns NOT_FOUND when no account has the id.
	FindByID(context context.Context, id int64) (*User, error)

	// FindByEmail returns NOT_FOUND when no account has the email.
	FindByEmail(context context.Context, email string) (*User, error)

	// List returns one page of accounts ordered by id, plus the total count.
	List(context context.Context, limit, offset int) ([]*User, int, error)

	// Update persists email, name, password digest and permission of user.
	Update(context context.Context, user *User) error

	// Delete removes the account. NOT_FOUND if it did not exist.
	Delete(context context.Context, id int64) error

	// PermissionExists reports whether the permission table holds the name.
	PermissionExists(context context.Context, permission sec.Permission) (bool, error)
}

// PasswordHasher is the hashing side of [sec.Hasher].
type PasswordHasher interface {
	Hash(ctx context.Context, plainTextPassword string) (string, error)
}
