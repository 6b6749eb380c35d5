// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/scribe/internal/platform/ctxutil"
	"github.com/taibuivan/scribe/internal/platform/middleware"
)

type originList []string

func (list originList) AllowedOrigin(origin string) bool {
	for _, allowed := range list {
		if allowed == origin {
			return true
		}
	}
	return false
}

/*
TestRequestID verifies generation and propagation of correlation IDs.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	// 1. Generated when absent
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))

	// 2. Propagated when provided
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "client-id")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "client-id", seen)
	assert.Equal(t, "client-id", recorder.Header().Get("X-Request-ID"))
}

/*
TestRateLimit verifies the burst is enforced per client IP.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 1, 2)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	send := func(ip string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = ip + ":40000"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)

	limited := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))

	// Another client has its own bucket
	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code)

	// Rotating proxy headers does not open a new bucket
	spoofed := httptest.NewRequest(http.MethodGet, "/", nil)
	spoofed.RemoteAddr = "10.0.0.1:40001"
	spoofed.Header.Set("X-Forwarded-For", "203.0.113.99")
	spoofed.Header.Set("X-Real-IP", "203.0.113.98")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, spoofed)
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
}

/*
TestPanicRecovery verifies a panic becomes a 500 response.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

/*
TestCORS verifies headers for allowed origins and pre-flight handling.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(originList{"https://scribe.app"})(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusTeapot)
	}))

	// 1. Allowed origin gets headers
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "https://scribe.app")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "https://scribe.app", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusTeapot, recorder.Code)

	// 2. Unknown origin gets none
	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "https://evil.example")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))

	// 3. Pre-flight short-circuits
	request = httptest.NewRequest(http.MethodOptions, "/", nil)
	request.Header.Set("Origin", "https://scribe.app")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

/*
TestRealIP verifies client-supplied proxy headers never override RemoteAddr.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	request.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))

	// A rewritten RemoteAddr without a port is returned as is.
	request.RemoteAddr = "198.51.100.7"
	assert.Equal(t, "198.51.100.7", middleware.RealIP(request))
}
