package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/modular-api/internal/domain"
	testhelpers "github.com/spec-kit/modular-api/internal/testhelpers"
	apperrors "github.com/spec-kit/modular-api/pkg/util/errorutil"
)

func newItemFixture(t *testing.T) (*ItemService, *testhelpers.MemoryStore) {
	t.Helper()
	store := testhelpers.NewMemoryStore()
	t.Cleanup(func() {
		assert.Zero(t, store.Outstanding())
	})
	return NewItemService(store), store
}

func TestItemLifecycle(t *testing.T) {
	svc, _ := newItemFixture(t)
	ctx := context.Background()
	owner := &domain.User{ID: uuid.NewString(), Email: "a@x.com", IsActive: true}

	desc := "warm light"
	created, err := svc.Create(ctx, owner, "lamp", &desc)
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, owner.ID, created.OwnerID)

	got, err := svc.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "lamp", got.Name)

	name := "desk lamp"
	inactive := false
	updated, err := svc.Update(ctx, owner, created.ID, domain.ItemPatch{Name: &name, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "desk lamp", updated.Name)
	assert.Equal(t, "warm light", *updated.Description)
	assert.False(t, updated.IsActive)

	deleted, err := svc.Delete(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = svc.Get(ctx, owner, created.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestItemsAreScopedToOwner(t *testing.T) {
	svc, _ := newItemFixture(t)
	ctx := context.Background()
	alice := &domain.User{ID: uuid.NewString()}
	bob := &domain.User{ID: uuid.NewString()}

	item, err := svc.Create(ctx, alice, "lamp", nil)
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob, item.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = svc.Delete(ctx, bob, item.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	list, err := svc.List(ctx, bob, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestItemListPaging(t *testing.T) {
	svc, _ := newItemFixture(t)
	ctx := context.Background()
	owner := &domain.User{ID: uuid.NewString()}

	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.Create(ctx, owner, name, nil)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, owner, -5, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Name)

	page, err := svc.List(ctx, owner, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].Name)

	beyond, err := svc.List(ctx, owner, 10, 1000)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestItemMalformedIDIsNotFound(t *testing.T) {
	svc, _ := newItemFixture(t)
	owner := &domain.User{ID: uuid.NewString()}

	_, err := svc.Get(context.Background(), owner, "not-a-uuid")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "Item not found", apperrors.ToDomainError(err).Message)

	_, err = svc.Update(context.Background(), owner, "nope", domain.ItemPatch{})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
