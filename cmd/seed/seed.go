// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taibuivan/scribe/internal/platform/apperr"
	"github.com/taibuivan/scribe/internal/platform/sec"
	"github.com/taibuivan/scribe/internal/users/account"
)

// errMissingPassword is returned when SEED_ADMIN_PASSWORD is unset.
var errMissingPassword = errors.New("seed: SEED_ADMIN_PASSWORD is required")

// adminStore is the slice of the account repository the seeder needs.
type adminStore interface {
	FindByEmail(ctx context.Context, email string) (*account.User, error)
	Create(ctx context.Context, user *account.User) error
	Update(ctx context.Context, user *account.User) error
}

type adminSeed struct {
	Email    string
	Name     string
	Password string
}

/*
seedAdmin upserts the bootstrap administrator.

Description: An existing account with the email is promoted to ADMIN and
gets the configured name and password. Otherwise a new account is created.

Returns:
  - *account.User: The stored administrator
  - bool: true when the account was created
  - error: Configuration, hashing or storage failures
*/
func seedAdmin(ctx context.Context, store adminStore, hasher account.PasswordHasher, seed adminSeed) (*account.User, bool, error) {
	email := strings.TrimSpace(seed.Email)
	if email == "" {
		return nil, false, errors.New("seed: SEED_ADMIN_EMAIL is required")
	}
	if seed.Password == "" {
		return nil, false, errMissingPassword
	}

	passwordHash, err := hasher.Hash(ctx, seed.Password)
	if err != nil {
		return nil, false, fmt.Errorf("seed: hash password: %w", err)
	}

	existing, err := store.FindByEmail(ctx, email)
	switch {
	case err == nil:
		existing.Name = seed.Name
		existing.PasswordHash = passwordHash
		existing.Permission = sec.PermissionAdmin
		if err := store.Update(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("seed: update admin: %w", err)
		}
		return existing, false, nil

	case apperr.HasCode(err, apperr.CodeNotFound):
		admin := &account.User{
			Email:        email,
			Name:         seed.Name,
			PasswordHash: passwordHash,
			Permission:   sec.PermissionAdmin,
		}
		if err := store.Create(ctx, admin); err != nil {
			return nil, false, fmt.Errorf("seed: create admin: %w", err)
		}
		return admin, true, nil

	default:
		return nil, false, fmt.Errorf("seed: lookup admin: %w", err)
	}
}
