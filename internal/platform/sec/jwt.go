// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, JWT signing)
// from the domain logic. Domain packages consume it through small interfaces
// (token issuer, token verifier, password hasher) injected at startup.
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single error returned for every verification failure:
// malformed input, wrong signature, wrong algorithm, wrong issuer or expiry.
var ErrInvalidToken = errors.New("sec: invalid token")

// Identity is the authenticated caller, rebuilt from a verified token on each request.
type Identity struct {
	ID         int64      `json:"id"`
	Email      string     `json:"email"`
	Permission Permission `json:"permission"`
}

// TokenConfig is the process-wide signing configuration.
//
// It is built once at startup from [config.Config] and never mutated.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

// tokenClaims is the payload embedded inside an access token.
//
// The permission travels inside the token, so a permission change only takes
// effect when the account logs in again.
type tokenClaims struct {
	jwt.RegisteredClaims

	Email      string `json:"email"`
	Permission string `json:"permission"`

	// ExpiresAtNano is the exact expiry in Unix nanoseconds. The registered
	// "exp" claim only has whole-second precision.
	ExpiresAtNano int64 `json:"exp_nano"`
}

// TokenOption customizes a [TokenService].
type TokenOption func(*TokenService)

// WithClock replaces the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) {
		service.now = now
	}
}

// TokenService issues and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenService creates a new TokenService from an immutable [TokenConfig].
func NewTokenService(config TokenConfig, options ...TokenOption) (*TokenService, error) {
	if len(config.Secret) == 0 {
		return nil, errors.New("sec: token secret must not be empty")
	}
	if config.TTL <= 0 {
		return nil, errors.New("sec: token ttl must be positive")
	}

	service := &TokenService{
		secret: append([]byte(nil), config.Secret...),
		ttl:    config.TTL,
		issuer: config.Issuer,
		now:    time.Now,
	}
	for _, option := range options {
		option(service)
	}

	return service, nil
}

// Issue creates a signed access token for identity that expires after the configured TTL.
func (service *TokenService) Issue(identity Identity) (string, error) {
	currentTime := service.now()
	expiresAt := currentTime.Add(service.ttl)

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.ID, 10),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(ceilSecond(expiresAt)),
		},
		Email:         identity.Email,
		Permission:    string(identity.Permission),
		ExpiresAtNano: expiresAt.UnixNano(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks signature, issuer and expiry, then decodes the caller identity.
//
// Every failure is reported as [ErrInvalidToken] so callers cannot tell causes apart.
func (service *TokenService) Verify(tokenString string) (*Identity, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return service.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(service.issuer),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	// "exp" is rounded up to the second; the nanosecond claim is authoritative.
	if claims.ExpiresAtNano == 0 || !service.now().Before(time.Unix(0, claims.ExpiresAtNano)) {
		return nil, ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return nil, ErrInvalidToken
	}

	permission, ok := ParsePermission(claims.Permission)
	if !ok || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{
		ID:         id,
		Email:      claims.Email,
		Permission: permission,
	}, nil
}

// ceilSecond rounds t up to the next whole second.
func ceilSecond(t time.Time) time.Time {
	truncated := t.Truncate(time.Second)
	if truncated.Equal(t) {
		return t
	}
	return truncated.Add(time.Second)
}
