// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth exchanges credentials for a signed access token.

Architecture:

  - Service: Looks the account up by email, verifies the password digest and
    issues a token carrying the account's id, email and permission.
  - Contracts: CredentialStore, PasswordVerifier and TokenIssuer are satisfied
    by the account store, [sec.Hasher] and [sec.TokenService].

Tokens are stateless. There is no refresh, revocation or logout.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/scribe/internal/platform/apperr"
	"github.com/taibuivan/scribe/internal/platform/ctxutil"
	"github.com/taibuivan/scribe/internal/platform/sec"
	"github.com/taibuivan/scribe/internal/users/account"
)

// # Contracts & Types

// CredentialStore resolves an account by email.
type CredentialStore interface {
	FindByEmail(context context.Context, email string) (*account.User, error)
}

// PasswordVerifier compares a plain-text password with a stored digest.
type PasswordVerifier interface {
	Verify(ctx context.Context, plainTextPassword, digest string) bool

	// VerifyNothing burns the cost of a comparison and returns false.
	VerifyNothing(ctx context.Context, plainTextPassword string) bool
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(identity sec.Identity) (string, error)
}

// Service implements the login use case.
type Service struct {
	credentials CredentialStore
	passwords   PasswordVerifier
	tokens      TokenIssuer
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(credentials CredentialStore, passwords PasswordVerifier, tokens TokenIssuer) *Service {
	return &Service{
		credentials: credentials,
		passwords:   passwords,
		tokens:      tokens,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// Session is the result of a successful login.
type Session struct {
	AccessToken string `json:"access_token"`
}

/*
Login validates credentials and issues an access token.

Description: An unknown email and a wrong password produce the same
INVALID_CREDENTIALS error and cost the same bcrypt work, so callers cannot
discover which emails are registered.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: The signed access token
  - error: INVALID_CREDENTIALS, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	logger := ctxutil.GetLogger(context)

	// 1. Account lookup
	user, err := service.credentials.FindByEmail(context, input.Email)
	if err != nil {
		if !apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
		}
		service.passwords.VerifyNothing(context, input.Password)
		logger.Info("login_failed", slog.String("reason", "unknown_email"))
		return nil, apperr.InvalidCredentials()
	}

	// 2. Constant-time digest comparison
	if !service.passwords.Verify(context, input.Password, user.PasswordHash) {
		logger.Info("login_failed", slog.String("reason", "password_mismatch"), slog.Int64("account_id", user.ID))
		return nil, apperr.InvalidCredentials()
	}

	// 3. Token issuance
	accessToken, err := service.tokens.Issue(user.Identity())
	if err != nil {
		return nil, fmt.Errorf("auth_service_issue_failed: %w", err)
	}

	logger.Info("login_succeeded", slog.Int64("account_id", user.ID))

	return &Session{AccessToken: accessToken}, nil
}
