package db

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/satriobayu/authsvc/internal/model"
)

// Memory is a process-local store with the same semantics as Postgres,
// including collation-aware username uniqueness. Used for local runs
// (STORE_DRIVER=memory) and tests.
type Memory struct {
	mu          sync.Mutex
	users       map[uuid.UUID]model.User
	blacklisted map[string]model.BlacklistedToken
	now         func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users:       make(map[uuid.UUID]model.User),
		blacklisted: make(map[string]model.BlacklistedToken),
		now:         time.Now,
	}
}

func (m *Memory) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.FindUserByUsernameExcluding(ctx, username, uuid.Nil)
}

func (m *Memory) FindUserByUsernameExcluding(_ context.Context, username string, excludeID uuid.UUID) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.lookupUsername(username, excludeID); ok {
		return &u, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) FindUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) InsertUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.lookupUsername(user.Username, uuid.Nil); ok {
		return ErrUsernameTaken
	}
	now := m.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) UpdateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return ErrNotFound
	}
	if _, ok := m.lookupUsername(user.Username, user.ID); ok {
		return ErrUsernameTaken
	}
	user.UpdatedAt = m.now()
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) IsBlacklisted(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.blacklisted[token]
	return ok, nil
}

func (m *Memory) Blacklist(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.blacklisted[token]; ok {
		return nil
	}
	m.blacklisted[token] = model.BlacklistedToken{Token: token, CreatedAt: m.now()}
	return nil
}

// BlacklistSize reports how many distinct tokens have been revoked.
func (m *Memory) BlacklistSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blacklisted)
}

// lookupUsername must be called with mu held.
func (m *Memory) lookupUsername(username string, excludeID uuid.UUID) (model.User, bool) {
	for id, u := range m.users {
		if id == excludeID {
			continue
		}
		if model.SameUsername(u.Username, username) {
			return u, true
		}
	}
	return model.User{}, false
}
