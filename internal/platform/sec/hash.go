// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned by [Hasher.Hash] for inputs above [MaxPasswordBytes].
var ErrPasswordTooLong = errors.New("sec: password exceeds 72 bytes")

// Hasher hashes and verifies passwords with bcrypt on a bounded pool of slots.
//
// # Concurrency
//
// bcrypt is deliberately CPU-expensive. At most `workers` hash operations run
// at once; further callers wait for a slot or for their context to end.
type Hasher struct {
	cost  int
	slots *semaphore.Weighted
	dummy []byte
}

// NewHasher creates a [Hasher] with the given bcrypt cost.
// A non-positive workers value uses one slot per CPU.
func NewHasher(cost, workers int) (*Hasher, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// The dummy digest lets unknown-account logins spend the same CPU as real ones.
	seed := make([]byte, 24)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("sec: failed to seed dummy digest: %w", err)
	}
	dummy, err := bcrypt.GenerateFromPassword(seed, cost)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid bcrypt cost %d: %w", cost, err)
	}

	return &Hasher{
		cost:  cost,
		slots: semaphore.NewWeighted(int64(workers)),
		dummy: dummy,
	}, nil
}

// Hash hashes a plain-text password. The digest encodes algorithm, cost and salt.
func (hasher *Hasher) Hash(ctx context.Context, plainTextPassword string) (string, error) {
	if len(plainTextPassword) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	if err := hasher.slots.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("sec: hash slot unavailable: %w", err)
	}
	defer hasher.slots.Release(1)

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), hasher.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Verify compares a plain-text password with a stored digest in constant time.
//
// A mismatch, a malformed digest, or a cancelled context all yield false.
func (hasher *Hasher) Verify(ctx context.Context, plainTextPassword, digest string) bool {
	return hasher.compare(ctx, []byte(digest), plainTextPassword)
}

// VerifyNothing performs a comparison against a throwaway digest and always
// returns false. Login calls it for unknown emails.
func (hasher *Hasher) VerifyNothing(ctx context.Context, plainTextPassword string) bool {
	_ = hasher.compare(ctx, hasher.dummy, plainTextPassword)
	return false
}

func (hasher *Hasher) compare(ctx context.Context, digest []byte, plainTextPassword string) bool {
	if err := hasher.slots.Acquire(ctx, 1); err != nil {
		return false
	}
	defer hasher.slots.Release(1)

	return bcrypt.CompareHashAndPassword(digest, []byte(plainTextPassword)) == nil
}
