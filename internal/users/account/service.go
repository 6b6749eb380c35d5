// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/scribe/internal/platform/apperr"
	"github.com/taibuivan/scribe/internal/platform/constants"
	"github.com/taibuivan/scribe/internal/platform/ctxutil"
	"github.com/taibuivan/scribe/internal/platform/sec"
	"github.com/taibuivan/scribe/pkg/pagination"
	"github.com/taibuivan/scribe/pkg/pointer"
)

// # Service Layer

// Service orchestrates business logic for user accounts.
//
// Input shape is validated by the HTTP layer; the service enforces the rules
// that need storage (unique email, known permission).
type Service struct {
	accountRepository AccountRepository
	hasher            PasswordHasher
}

// NewService constructs a new [Service] with its dependencies.
func NewService(accountRepo AccountRepository, hasher PasswordHasher) *Service {
	return &Service{
		accountRepository: accountRepo,
		hasher:            hasher,
	}
}

// # Registration Flow

// RegisterInput holds the fields accepted at self-registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

/*
Register creates a new account with the default READER permission.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: The created account
  - error: CONFLICT if the email is taken, VALIDATION_ERROR if the password
    cannot be hashed
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// 1. Identity Conflict Check
	if err := service.ensureEmailFree(context, input.Email, 0); err != nil {
		return nil, err
	}

	// 2. Secure Password Hashing
	passwordHash, err := service.hashPassword(context, input.Password)
	if err != nil {
		return nil, err
	}

	// 3. Persistence
	user := &User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: passwordHash,
		Permission:   sec.Permission(constants.DefaultPermission),
	}
	if err := service.accountRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("account_service_register_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("user_registered",
		slog.Int64("account_id", user.ID),
		slog.String("permission", user.Permission.String()),
	)

	return user, nil
}

// # Administration

// List returns one page of accounts and the total number of accounts.
func (service *Service) List(context context.Context, params pagination.Params) ([]*User, int, error) {
	users, total, err := service.accountRepository.List(context, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, total, nil
}

// Get returns a single account by id.
func (service *Service) Get(context context.Context, id int64) (*User, error) {
	user, err := service.accountRepository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_failed: %w", err)
	}
	return user, nil
}

// UpdateInput defines the mutable subset of account fields. Nil means unchanged.
type UpdateInput struct {
	Name           *string
	Email          *string
	Password       *string
	PermissionName *string
}

/*
Update applies a partial set of changes to an account.

Description: A new password is re-hashed. A permission name is resolved
against the permission table; an unknown name is NOT_FOUND. Permission
changes reach the caller's tokens only after the next login.

Parameters:
  - context: context.Context
  - id: int64
  - input: UpdateInput

Returns:
  - *User: The updated account
  - error: NOT_FOUND, CONFLICT or storage failures
*/
func (service *Service) Update(context context.Context, id int64, input UpdateInput) (*User, error) {
	user, err := service.accountRepository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	pointer.Apply(&user.Name, input.Name)

	if input.Email != nil && *input.Email != user.Email {
		if err := service.ensureEmailFree(context, *input.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}

	if input.Password != nil {
		passwordHash, err := service.hashPassword(context, *input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = passwordHash
	}

	if input.PermissionName != nil {
		permission, err := service.resolvePermission(context, *input.PermissionName)
		if err != nil {
			return nil, err
		}
		user.Permission = permission
	}

	// Persist changes
	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("user_updated", slog.Int64("account_id", user.ID))

	return user, nil
}

// Remove deletes an account and returns its id and email.
func (service *Service) Remove(context context.Context, id int64) (*Removed, error) {
	user, err := service.accountRepository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("account_service_remove_lookup_failed: %w", err)
	}

	if err := service.accountRepository.Delete(context, id); err != nil {
		return nil, fmt.Errorf("account_service_remove_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("user_deleted", slog.Int64("account_id", id))

	return &Removed{ID: user.ID, Email: user.Email}, nil
}

// # Internal Helpers

// ensureEmailFree fails with CONFLICT when email belongs to an account other than ownerID.
func (service *Service) ensureEmailFree(context context.Context, email string, ownerID int64) error {
	existing, err := service.accountRepository.FindByEmail(context, email)
	if err == nil && existing.ID != ownerID {
		return apperr.Conflict("Email is already registered")
	}
	if err != nil && !apperr.HasCode(err, apperr.CodeNotFound) {
		return fmt.Errorf("account_service_email_lookup_failed: %w", err)
	}
	return nil
}

func (service *Service) hashPassword(context context.Context, password string) (string, error) {
	passwordHash, err := service.hasher.Hash(context, password)
	if errors.Is(err, sec.ErrPasswordTooLong) {
		return "", apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldPassword,
			Message: fmt.Sprintf("Maximum %d bytes", sec.MaxPasswordBytes),
		})
	}
	if err != nil {
		return "", fmt.Errorf("account_service_hash_failed: %w", err)
	}
	return passwordHash, nil
}

func (service *Service) resolvePermission(context context.Context, name string) (sec.Permission, error) {
	permission, known := sec.ParsePermission(name)
	if !known {
		return "", apperr.NotFound("Permission")
	}

	exists, err := service.accountRepository.PermissionExists(context, permission)
	if err != nil {
		return "", fmt.Errorf("account_service_permission_lookup_failed: %w", err)
	}
	if !exists {
		return "", apperr.NotFound("Permission")
	}
	return permission, nil
}
