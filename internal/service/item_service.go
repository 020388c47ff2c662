package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spec-kit/modular-api/internal/domain"
	"github.com/spec-kit/modular-api/internal/repository"
	apperrors "github.com/spec-kit/modular-api/pkg/util/errorutil"
)

const (
	DefaultItemLimit = 100
	MaxItemLimit     = 100
)

// ItemService implements CRUD for items owned by the authenticated user.
type ItemService struct {
	store repository.Store
}

// NewItemService builds the service.
func NewItemService(store repository.Store) *ItemService {
	return &ItemService{store: store}
}

// Create stores a new active item for owner.
func (s *ItemService) Create(ctx context.Context, owner *domain.User, name string, description *string) (*domain.Item, error) {
	scope, err := s.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire store: %w", err)
	}
	defer scope.Release()

	item := &domain.Item{
		OwnerID:     owner.ID,
		Name:        name,
		Description: description,
		IsActive:    true,
	}
	if err := scope.Items().Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// List returns a page of owner's items.
func (s *ItemService) List(ctx context.Context, owner *domain.User, skip, limit int) ([]domain.Item, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultItemLimit
	}
	if limit > MaxItemLimit {
		limit = MaxItemLimit
	}

	scope, err := s.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire store: %w", err)
	}
	defer scope.Release()

	return scope.Items().List(ctx, owner.ID, skip, limit)
}

// Get returns one of owner's items.
func (s *ItemService) Get(ctx context.Context, owner *domain.User, id string) (*domain.Item, error) {
	if !validID(id) {
		return nil, apperrors.NewNotFound("Item")
	}

	scope, err := s.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire store: %w", err)
	}
	defer scope.Release()

	item, err := scope.Items().Get(ctx, owner.ID, id)
	return item, mapItemErr(err)
}

// Update applies a partial change to one of owner's items.
func (s *ItemService) Update(ctx context.Context, owner *domain.User, id string, patch domain.ItemPatch) (*domain.Item, error) {
	if !validID(id) {
		return nil, apperrors.NewNotFound("Item")
	}

	scope, err := s.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire store: %w", err)
	}
	defer scope.Release()

	items := scope.Items()
	item, err := items.Get(ctx, owner.ID, id)
	if err != nil {
		return nil, mapItemErr(err)
	}

	patch.Apply(item)
	if err := items.Update(ctx, item); err != nil {
		return nil, mapItemErr(err)
	}
	return item, nil
}

// Delete removes one of owner's items and returns it.
func (s *ItemService) Delete(ctx context.Context, owner *domain.User, id string) (*domain.Item, error) {
	if !validID(id) {
		return nil, apperrors.NewNotFound("Item")
	}

	scope, err := s.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire store: %w", err)
	}
	defer scope.Release()

	item, err := scope.Items().Delete(ctx, owner.ID, id)
	return item, mapItemErr(err)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func mapItemErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("Item")
	}
	return err
}
