// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/scribe/internal/platform/apperr"
	"github.com/taibuivan/scribe/internal/platform/sec"
	"github.com/taibuivan/scribe/internal/users/account"
)

// memoryRepository is an in-memory [account.AccountRepository].
type memoryRepository struct {
	mu          sync.Mutex
	nextID      int64
	users       map[int64]account.User
	permissions map[sec.Permission]bool
	authors     map[int64]bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		users: make(map[int64]account.User),
		permissions: map[sec.Permission]bool{
			sec.PermissionAdmin:  true,
			sec.PermissionEditor: true,
			sec.PermissionReader: true,
		},
		authors: make(map[int64]bool),
	}
}

func (repository *memoryRepository) Create(_ context.Context, user *account.User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, existing := range repository.users {
		if existing.Email == user.Email {
			return apperr.Conflict("User already exists")
		}
	}

	repository.nextID++
	user.ID = repository.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	repository.users[user.ID] = *user
	return nil
}

func (repository *memoryRepository) FindByID(_ context.Context, id int64) (*account.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &user, nil
}

func (repository *memoryRepository) FindByEmail(_ context.Context, email string) (*account.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, user := range repository.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *memoryRepository) List(_ context.Context, limit, offset int) ([]*account.User, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	ids := make([]int64, 0, len(repository.users))
	for id := range repository.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var page []*account.User
	for index := offset; index < len(ids) && index < offset+limit; index++ {
		user := repository.users[ids[index]]
		page = append(page, &user)
	}
	return page, len(ids), nil
}

func (repository *memoryRepository) Update(_ context.Context, user *account.User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	user.UpdatedAt = time.Now()
	repository.users[user.ID] = *user
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.users[id]; !ok {
		return apperr.NotFound("User")
	}
	if repository.authors[id] {
		return apperr.Conflict("User is referenced by other records")
	}
	delete(repository.users, id)
	return nil
}

func (repository *memoryRepository) PermissionExists(_ context.Context, permission sec.Permission) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return repository.permissions[permission], nil
}

// plainHasher prefixes passwords instead of running bcrypt.
type plainHasher struct{}

func (plainHasher) Hash(_ context.Context, password string) (string, error) {
	if len(password) > sec.MaxPasswordBytes {
		return "", sec.ErrPasswordTooLong
	}
	return "hashed:" + password, nil
}

func isHashOf(digest, password string) bool {
	return strings.TrimPrefix(digest, "hashed:") == password && strings.HasPrefix(digest, "hashed:")
}
