// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/scribe/internal/platform/apperr"
	"github.com/taibuivan/scribe/internal/platform/constants"
	"github.com/taibuivan/scribe/internal/platform/ctxutil"
	"github.com/taibuivan/scribe/internal/platform/respond"
	"github.com/taibuivan/scribe/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// Implemented by [sec.TokenService]; tests inject fakes.
type TokenVerifier interface {
	Verify(token string) (*sec.Identity, error)
}

// Guard builds the per-route access chain: Authenticate first, then Authorize.
//
// Routes marked public never reach either stage (see [Guard.Protect]).
type Guard struct {
	verifier TokenVerifier
	logger   *slog.Logger
}

// NewGuard creates a new Guard instance.
func NewGuard(verifier TokenVerifier, logger *slog.Logger) *Guard {
	return &Guard{verifier: verifier, logger: logger}
}

// Authenticate requires a valid bearer token and attaches the caller [sec.Identity].
//
// # Flow
//  1. Reject a missing Authorization header.
//  2. Require exactly "Bearer <token>" (scheme is case-insensitive).
//  3. Verify the token via [TokenVerifier].
//  4. Inject the identity, and a logger tagged with user_id, into the context.
func (guard *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		header := strings.TrimSpace(request.Header.Get(constants.HeaderAuthorization))

		// ── 1. Presence ──────────────────────────────────────────────────────
		if header == "" {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}

		// ── 2. Format Validation ─────────────────────────────────────────────
		scheme, token, found := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, constants.BearerScheme) || token == "" || strings.ContainsAny(token, " \t") {
			respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
			return
		}

		// ── 3. Token Verification ────────────────────────────────────────────
		identity, err := guard.verifier.Verify(token)
		if err != nil {
			respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
			return
		}

		// ── 4. Context Injection ─────────────────────────────────────────────
		ctx := ctxutil.WithIdentity(request.Context(), identity)
		ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.Int64("user_id", identity.ID)))

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// Authorize admits a caller whose permission belongs to permissions.
//
// An empty set admits any authenticated caller. A request without an
// identity is always rejected, so a misordered chain fails closed.
func Authorize(permissions ...sec.Permission) func(http.Handler) http.Handler {
	allowed := append([]sec.Permission(nil), permissions...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())

			// ── 1. Authentication Check ──────────────────────────────────────
			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ───────────────────────────────────────
			if len(allowed) > 0 && !identity.Permission.In(allowed) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// Protect wraps route.Handler with the access chain the route declares.
//
// Public routes are returned untouched: an Authorization header, valid or
// not, is never inspected for them.
func (guard *Guard) Protect(route Route) http.Handler {
	if route.Public {
		return route.Handler
	}
	return guard.Authenticate(Authorize(route.Permissions...)(route.Handler))
}
