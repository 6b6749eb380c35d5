// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/scribe/internal/platform/sec"
)

const testTTL = 7 * 24 * time.Hour

// fixedClock is a controllable time source for expiry tests.
type fixedClock struct {
	now time.Time
}

func (clock *fixedClock) Now() time.Time { return clock.now }

func newTokenService(t *testing.T, secret string, clock *fixedClock) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(sec.TokenConfig{
		Secret: []byte(secret),
		TTL:    testTTL,
		Issuer: "scribe-test",
	}, sec.WithClock(clock.Now))
	require.NoError(t, err)
	return service
}

/*
TestTokenService_RoundTrip verifies that Verify(Issue(identity)) reproduces the identity.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	service := newTokenService(t, "round-trip-secret", clock)

	identities := []sec.Identity{
		{ID: 1, Email: "admin@scribe.local", Permission: sec.PermissionAdmin},
		{ID: 42, Email: "a@x.com", Permission: sec.PermissionEditor},
		{ID: 9_007_199_254_740_993, Email: "big@x.com", Permission: sec.PermissionReader},
	}

	for _, identity := range identities {
		t.Run(identity.Email, func(t *testing.T) {
			token, err := service.Issue(identity)
			require.NoError(t, err)

			decoded, err := service.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, identity, *decoded)
		})
	}
}

/*
TestTokenService_ExpiryBoundary verifies acceptance strictly before T+TTL and
rejection from T+TTL onwards.
*/
func TestTokenService_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fixedClock{now: issuedAt}
	service := newTokenService(t, "expiry-secret", clock)

	token, err := service.Issue(sec.Identity{ID: 3, Email: "e@x.com", Permission: sec.PermissionReader})
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		isValid bool
	}{
		{"at_issuance", issuedAt, true},
		{"one_day_later", issuedAt.Add(24 * time.Hour), true},
		{"just_before_expiry", issuedAt.Add(testTTL - time.Nanosecond), true},
		{"exactly_at_expiry", issuedAt.Add(testTTL), false},
		{"after_expiry", issuedAt.Add(testTTL + time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.now = tt.at
			_, err := service.Verify(token)
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, sec.ErrInvalidToken)
			}
		})
	}
}

/*
TestTokenService_ExpiryBoundary_SubSecond verifies the boundary is exact when
issuance falls between whole seconds.
*/
func TestTokenService_ExpiryBoundary_SubSecond(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 700_000_000, time.UTC)
	clock := &fixedClock{now: issuedAt}
	service := newTokenService(t, "expiry-secret", clock)

	token, err := service.Issue(sec.Identity{ID: 3, Email: "e@x.com", Permission: sec.PermissionReader})
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		isValid bool
	}{
		{"half_second_before_expiry", issuedAt.Add(testTTL - 500*time.Millisecond), true},
		{"just_before_expiry", issuedAt.Add(testTTL - time.Nanosecond), true},
		{"exactly_at_expiry", issuedAt.Add(testTTL), false},
		{"before_rounded_exp_claim", issuedAt.Add(testTTL + 200*time.Millisecond), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.now = tt.at
			_, err := service.Verify(token)
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, sec.ErrInvalidToken)
			}
		})
	}
}

/*
TestTokenService_Rejects verifies that every failure cause maps to the same opaque error.
*/
func TestTokenService_Rejects(t *testing.T) {
	clock := &fixedClock{now: time.Now()}
	service := newTokenService(t, "right-secret", clock)
	other := newTokenService(t, "wrong-secret", clock)

	foreign, err := other.Issue(sec.Identity{ID: 1, Email: "a@x.com", Permission: sec.PermissionAdmin})
	require.NoError(t, err)

	valid, err := service.Issue(sec.Identity{ID: 1, Email: "a@x.com", Permission: sec.PermissionReader})
	require.NoError(t, err)
	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)

	// Unsigned token carrying an elevated permission.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "1", "email": "a@x.com", "permission": "ADMIN", "iss": "scribe-test",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	noneToken, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	// Correctly signed token with an unknown permission.
	unknownPermission := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1", "email": "a@x.com", "permission": "ROOT", "iss": "scribe-test",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	unknownToken, err := unknownPermission.SignedString([]byte("right-secret"))
	require.NoError(t, err)

	// Correctly signed token without an expiry.
	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1", "email": "a@x.com", "permission": "READER", "iss": "scribe-test",
	})
	noExpiryToken, err := noExpiry.SignedString([]byte("right-secret"))
	require.NoError(t, err)

	// Correctly signed token with only the whole-second expiry.
	coarseExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1", "email": "a@x.com", "permission": "READER", "iss": "scribe-test",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	coarseToken, err := coarseExpiry.SignedString([]byte("right-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"coarse_expiry_only": coarseToken,
		"empty":              "",
		"garbage":            "not.a.jwt",
		"wrong_secret":       foreign,
		"tampered_signature": parts[0] + "." + parts[1] + ".AAAA",
		"alg_none":           noneToken,
		"unknown_permission": unknownToken,
		"missing_expiry":     noExpiryToken,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			identity, err := service.Verify(token)
			assert.Nil(t, identity)
			assert.Equal(t, sec.ErrInvalidToken, err)
		})
	}
}

/*
TestNewTokenService_Config verifies the constructor rejects unusable configuration.
*/
func TestNewTokenService_Config(t *testing.T) {
	_, err := sec.NewTokenService(sec.TokenConfig{TTL: time.Hour})
	assert.Error(t, err)

	_, err = sec.NewTokenService(sec.TokenConfig{Secret: []byte("s")})
	assert.Error(t, err)
}
