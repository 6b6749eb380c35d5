// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/scribe/internal/platform/sec"
)

// ErrPublicWithPermissions reports a route that is public but still lists
// permissions. The permissions are never enforced.
var ErrPublicWithPermissions = errors.New("public route declares permissions")

// Route is the access declaration of a single endpoint.
//
// Every endpoint is registered through a Route, so the access table of the
// whole API can be inspected before anything is mounted.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc

	// Public skips authentication and authorization entirely.
	Public bool

	// Permissions allowed to call the route. Empty means any authenticated caller.
	Permissions []sec.Permission
}

// Validate reports declarations that cannot behave as written.
func (route Route) Validate() error {
	if route.Handler == nil {
		return fmt.Errorf("%s %s: missing handler", route.Method, route.Pattern)
	}

	for _, permission := range route.Permissions {
		if _, ok := sec.ParsePermission(string(permission)); !ok {
			return fmt.Errorf("%s %s: unknown permission %q", route.Method, route.Pattern, permission)
		}
	}

	if route.Public && len(route.Permissions) > 0 {
		return fmt.Errorf("%s %s: %w", route.Method, route.Pattern, ErrPublicWithPermissions)
	}

	return nil
}

// Register mounts routes on router behind the guard chain each one declares.
//
// A public route carrying permissions is still mounted as public and a
// warning is logged. Any other invalid declaration is a programming error
// and panics at startup.
func (guard *Guard) Register(router chi.Router, routes ...Route) {
	for _, route := range routes {
		if err := route.Validate(); err != nil {
			if !errors.Is(err, ErrPublicWithPermissions) {
				panic(err)
			}
			guard.logger.Warn("route_permissions_ignored",
				slog.String("method", route.Method),
				slog.String("pattern", route.Pattern),
				slog.Any("permissions", route.Permissions),
			)
		}

		route.Permissions = append([]sec.Permission(nil), route.Permissions...)
		router.Method(route.Method, route.Pattern, guard.Protect(route))
	}
}
