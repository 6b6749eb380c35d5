// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/scribe/internal/platform/apperr"
	"github.com/taibuivan/scribe/internal/platform/ctxutil"
	"github.com/taibuivan/scribe/internal/platform/middleware"
	"github.com/taibuivan/scribe/internal/platform/sec"
)

// fakeVerifier accepts a fixed set of tokens.
type fakeVerifier struct {
	tokens map[string]*sec.Identity
	calls  int
}

func (verifier *fakeVerifier) Verify(token string) (*sec.Identity, error) {
	verifier.calls++
	identity, ok := verifier.tokens[token]
	if !ok {
		return nil, sec.ErrInvalidToken
	}
	return identity, nil
}

func newVerifier() *fakeVerifier {
	return &fakeVerifier{tokens: map[string]*sec.Identity{
		"admin-token":  {ID: 1, Email: "admin@x.com", Permission: sec.PermissionAdmin},
		"editor-token": {ID: 2, Email: "editor@x.com", Permission: sec.PermissionEditor},
		"reader-token": {ID: 3, Email: "reader@x.com", Permission: sec.PermissionReader},
	}}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// identityEcho writes back the identity seen by the handler, or "anonymous".
func identityEcho(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		_, _ = writer.Write([]byte("anonymous"))
		return
	}
	_, _ = writer.Write([]byte(identity.Email))
}

func serve(handler http.Handler, authorization string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func errorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body.Code
}

/*
TestAuthenticate covers header parsing and token verification.
*/
func TestAuthenticate(t *testing.T) {
	guard := middleware.NewGuard(newVerifier(), discardLogger())
	handler := guard.Authenticate(http.HandlerFunc(identityEcho))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid_bearer", "Bearer editor-token", http.StatusOK, "editor@x.com"},
		{"scheme_case_insensitive", "bearer editor-token", http.StatusOK, "editor@x.com"},
		{"missing_header", "", http.StatusUnauthorized, ""},
		{"wrong_scheme", "Basic editor-token", http.StatusUnauthorized, ""},
		{"scheme_only", "Bearer", http.StatusUnauthorized, ""},
		{"extra_parts", "Bearer editor-token extra", http.StatusUnauthorized, ""},
		{"unknown_token", "Bearer forged", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(handler, tt.header)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, recorder.Body.String())
				return
			}
			assert.Equal(t, apperr.CodeUnauthorized, errorCode(t, recorder))
		})
	}
}

/*
TestAuthorize verifies set membership, the empty set, and the fail-closed case.
*/
func TestAuthorize(t *testing.T) {
	guard := middleware.NewGuard(newVerifier(), discardLogger())
	editorial := []sec.Permission{sec.PermissionAdmin, sec.PermissionEditor}

	tests := []struct {
		name        string
		permissions []sec.Permission
		header      string
		status      int
	}{
		{"admin_in_set", editorial, "Bearer admin-token", http.StatusOK},
		{"editor_in_set", editorial, "Bearer editor-token", http.StatusOK},
		{"reader_not_in_set", editorial, "Bearer reader-token", http.StatusForbidden},
		{"admin_only_rejects_editor", []sec.Permission{sec.PermissionAdmin}, "Bearer editor-token", http.StatusForbidden},
		{"empty_set_admits_reader", nil, "Bearer reader-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := guard.Authenticate(middleware.Authorize(tt.permissions...)(http.HandlerFunc(identityEcho)))
			recorder := serve(handler, tt.header)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.status == http.StatusForbidden {
				assert.Equal(t, apperr.CodeForbidden, errorCode(t, recorder))
			}
		})
	}

	t.Run("no_identity_fails_closed", func(t *testing.T) {
		for _, permissions := range [][]sec.Permission{nil, editorial} {
			recorder := serve(middleware.Authorize(permissions...)(http.HandlerFunc(identityEcho)), "")
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		}
	})
}

/*
TestProtect_PublicIgnoresToken verifies public routes never inspect credentials.
*/
func TestProtect_PublicIgnoresToken(t *testing.T) {
	verifier := newVerifier()
	guard := middleware.NewGuard(verifier, discardLogger())

	handler := guard.Protect(middleware.Route{
		Method:  http.MethodGet,
		Pattern: "/",
		Handler: identityEcho,
		Public:  true,
	})

	for _, header := range []string{"", "Bearer forged", "garbage", "Bearer admin-token"} {
		recorder := serve(handler, header)
		assert.Equal(t, http.StatusOK, recorder.Code, header)
		assert.Equal(t, "anonymous", recorder.Body.String(), header)
	}
	assert.Zero(t, verifier.calls)
}

/*
TestRoute_Validate covers declaration checks.
*/
func TestRoute_Validate(t *testing.T) {
	assert.NoError(t, middleware.Route{Method: http.MethodGet, Pattern: "/", Handler: identityEcho}.Validate())

	err := middleware.Route{Method: http.MethodGet, Pattern: "/", Handler: identityEcho, Public: true,
		Permissions: []sec.Permission{sec.PermissionAdmin}}.Validate()
	assert.True(t, errors.Is(err, middleware.ErrPublicWithPermissions))

	assert.Error(t, middleware.Route{Method: http.MethodGet, Pattern: "/"}.Validate())
	assert.Error(t, middleware.Route{Method: http.MethodGet, Pattern: "/", Handler: identityEcho,
		Permissions: []sec.Permission{"OWNER"}}.Validate())
}

/*
TestRegister mounts a small access table and checks each entry end to end.
*/
func TestRegister(t *testing.T) {
	var logs bytes.Buffer
	guard := middleware.NewGuard(newVerifier(), slog.New(slog.NewJSONHandler(&logs, nil)))
	router := chi.NewRouter()

	guard.Register(router,
		middleware.Route{Method: http.MethodGet, Pattern: "/public", Handler: identityEcho, Public: true},
		middleware.Route{Method: http.MethodGet, Pattern: "/admin", Handler: identityEcho,
			Permissions: []sec.Permission{sec.PermissionAdmin}},
		middleware.Route{Method: http.MethodGet, Pattern: "/smell", Handler: identityEcho, Public: true,
			Permissions: []sec.Permission{sec.PermissionAdmin}},
	)

	request := func(path, header string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		return recorder.Code
	}

	assert.Equal(t, http.StatusOK, request("/public", "Bearer forged"))
	assert.Equal(t, http.StatusUnauthorized, request("/admin", ""))
	assert.Equal(t, http.StatusForbidden, request("/admin", "Bearer reader-token"))
	assert.Equal(t, http.StatusOK, request("/admin", "Bearer admin-token"))

	// Public wins over the ignored permissions, and the smell is reported.
	assert.Equal(t, http.StatusOK, request("/smell", ""))
	assert.Contains(t, logs.String(), "route_permissions_ignored")

	assert.Panics(t, func() {
		guard.Register(router, middleware.Route{Method: http.MethodGet, Pattern: "/broken"})
	})
}
