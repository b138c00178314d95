// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/tienda/internal/platform/sec"
	"github.com/taibuivan/tienda/pkg/slice"
)

// MemoryUserRepository keeps accounts in process memory.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
	order   []string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func (repository *MemoryUserRepository) Create(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, taken := repository.byEmail[user.Email]; taken {
		return ErrDuplicateIdentity
	}

	repository.byID[user.ID] = cloneUser(user)
	repository.byEmail[user.Email] = user.ID
	repository.order = append(repository.order, user.ID)
	return nil
}

func (repository *MemoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, ok := repository.byID[id]
	if !ok {
		return nil, ErrUnknownUser
	}
	return cloneUser(stored), nil
}

func (repository *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	id, ok := repository.byEmail[email]
	if !ok {
		return nil, ErrUnknownUser
	}
	return cloneUser(repository.byID[id]), nil
}

func (repository *MemoryUserRepository) UpdatePassword(_ context.Context, email, newHash string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	id, ok := repository.byEmail[email]
	if !ok {
		return ErrUnknownUser
	}

	stored := repository.byID[id]
	stored.PasswordHash = newHash
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (repository *MemoryUserRepository) UpdateRole(_ context.Context, id string, role sec.UserRole) (*User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.byID[id]
	if !ok {
		return nil, ErrUnknownUser
	}

	stored.Role = role
	stored.UpdatedAt = time.Now().UTC()
	return cloneUser(stored), nil
}

// List returns accounts oldest first, optionally restricted to one role.
func (repository *MemoryUserRepository) List(_ context.Context, role string, limit, offset int) ([]*User, int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	users := make([]*User, 0, len(repository.order))
	for _, id := range repository.order {
		users = append(users, repository.byID[id])
	}
	users = slice.Filter(users, func(user *User) bool {
		return role == "" || string(user.Role) == role
	})

	total := len(users)
	if offset >= total {
		return []*User{}, total, nil
	}
	page := users[offset:min(offset+limit, total)]

	return slice.Map(page, cloneUser), total, nil
}

func cloneUser(user *User) *User {
	copied := *user
	if user.CartID != nil {
		cartID := *user.CartID
		copied.CartID = &cartID
	}
	copied.Cart = nil
	return &copied
}

// # Reset Ledger

// MemoryResetLedger is a single-process [ResetLedger].
type MemoryResetLedger struct {
	mu       sync.Mutex
	consumed map[string]time.Time
	now      func() time.Time
}

func NewMemoryResetLedger() *MemoryResetLedger {
	return &MemoryResetLedger{
		consumed: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (ledger *MemoryResetLedger) Consume(_ context.Context, tokenID string, ttl time.Duration) (bool, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	now := ledger.now()
	for id, expiresAt := range ledger.consumed {
		if now.After(expiresAt) {
			delete(ledger.consumed, id)
		}
	}

	if _, used := ledger.consumed[tokenID]; used {
		return false, nil
	}

	ledger.consumed[tokenID] = now.Add(max(ttl, time.Second))
	return true, nil
}

func (ledger *MemoryResetLedger) Release(_ context.Context, tokenID string) error {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	delete(ledger.consumed, tokenID)
	return nil
}
