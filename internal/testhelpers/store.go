package testhelpers

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/modular-api/internal/domain"
	"github.com/spec-kit/modular-api/internal/repository"
)

// MemoryStore is a concurrency-safe in-memory repository.Store for tests.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string]*domain.User
	items map[string]*domain.Item
	seq   int64

	// AcquireErr, when set, fails every Acquire call.
	AcquireErr error

	acquired atomic.Int64
	released atomic.Int64
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*domain.User),
		items: make(map[string]*domain.Item),
	}
}

// Acquire hands out a scope and counts it until released.
func (s *MemoryStore) Acquire(context.Context) (repository.Scope, error) {
	if s.AcquireErr != nil {
		return nil, s.AcquireErr
	}
	s.acquired.Add(1)
	return &memoryScope{store: s}, nil
}

// Outstanding reports scopes acquired but not yet released.
func (s *MemoryStore) Outstanding() int64 {
	return s.acquired.Load() - s.released.Load()
}

// UserCount reports how many users are stored.
func (s *MemoryStore) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *MemoryStore) tick() time.Time {
	s.seq++
	return time.Unix(1700000000+s.seq, 0).UTC()
}

type memoryScope struct {
	store *MemoryStore
	once  sync.Once
}

func (m *memoryScope) Users() repository.UserRepository { return (*memoryUsers)(m.store) }
func (m *memoryScope) Items() repository.ItemRepository { return (*memoryItems)(m.store) }

func (m *memoryScope) Release() {
	m.once.Do(func() { m.store.released.Add(1) })
}

type memoryUsers MemoryStore

func (u *memoryUsers) Insert(_ context.Context, email, passwordHash string) (*domain.User, error) {
	s := (*MemoryStore)(u)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		return nil, repository.ErrConflict
	}
	now := s.tick()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
		Metadata:     domain.Metadata{CreatedAt: now, UpdatedAt: now},
	}
	s.users[email] = user
	copied := *user
	return &copied, nil
}

func (u *memoryUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s := (*MemoryStore)(u)
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (u *memoryUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	s := (*MemoryStore)(u)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (u *memoryUsers) SetActive(_ context.Context, id string, active bool) error {
	s := (*MemoryStore)(u)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID == id {
			user.IsActive = active
			user.UpdatedAt = s.tick()
			return nil
		}
	}
	return repository.ErrNotFound
}

type memoryItems MemoryStore

func (i *memoryItems) Create(_ context.Context, item *domain.Item) error {
	s := (*MemoryStore)(i)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.tick()
	item.ID = uuid.NewString()
	item.CreatedAt = now
	item.UpdatedAt = now
	copied := *item
	s.items[item.ID] = &copied
	return nil
}

func (i *memoryItems) Update(_ context.Context, item *domain.Item) error {
	s := (*MemoryStore)(i)
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.items[item.ID]
	if !ok || stored.OwnerID != item.OwnerID {
		return repository.ErrNotFound
	}
	item.UpdatedAt = s.tick()
	copied := *item
	s.items[item.ID] = &copied
	return nil
}

func (i *memoryItems) Get(_ context.Context, ownerID, id string) (*domain.Item, error) {
	s := (*MemoryStore)(i)
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.items[id]
	if !ok || stored.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

func (i *memoryItems) List(_ context.Context, ownerID string, offset, limit int) ([]domain.Item, error) {
	s := (*MemoryStore)(i)
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Item, 0)
	for _, item := range s.items {
		if item.OwnerID == ownerID {
			result = append(result, *item)
		}
	}
	sort.Slice(result, func(a, b int) bool {
		return result[a].CreatedAt.Before(result[b].CreatedAt)
	})

	if offset >= len(result) {
		return []domain.Item{}, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (i *memoryItems) Delete(_ context.Context, ownerID, id string) (*domain.Item, error) {
	s := (*MemoryStore)(i)
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.items[id]
	if !ok || stored.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	delete(s.items, id)
	return stored, nil
}
