package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhojnalaya/ordercore/internal/storage"
	"github.com/bhojnalaya/ordercore/pkg/types"
)

func setupCatalog(t *testing.T) (*Service, *storage.SQLiteStorage) {
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(store), store
}

func TestGetMenuItem(t *testing.T) {
	cat, store := setupCatalog(t)
	ctx := context.Background()

	item := &types.MenuItem{Name: "Dal Tadka", UnitPrice: 120, Category: "Curries", IsAvailable: true}
	require.NoError(t, store.UpsertMenuItem(ctx, item))

	got, err := cat.GetMenuItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dal Tadka", got.Name)
	assert.Equal(t, 120.0, got.UnitPrice)
}

func TestGetMenuItemNotFound(t *testing.T) {
	cat, _ := setupCatalog(t)

	_, err := cat.GetMenuItem(context.Background(), 9999)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestGetMenuItemCaches(t *testing.T) {
	cat, store := setupCatalog(t)
	ctx := context.Background()

	item := &types.MenuItem{Name: "Dal Tadka", UnitPrice: 120, Category: "Curries", IsAvailable: true}
	require.NoError(t, store.UpsertMenuItem(ctx, item))

	first, err := cat.GetMenuItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, first.UnitPrice)

	// Mutate storage behind the cache; the cached row is still served
	// within the TTL
	item.UnitPrice = 150
	require.NoError(t, store.UpsertMenuItem(ctx, item))

	cached, err := cat.GetMenuItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, cached.UnitPrice)

	// Invalidate forces a fresh read
	cat.Invalidate(item.ID)
	fresh, err := cat.GetMenuItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, fresh.UnitPrice)
}

func TestSeed(t *testing.T) {
	cat, store := setupCatalog(t)
	ctx := context.Background()

	require.NoError(t, cat.Seed(ctx, DefaultMenu()))

	items, err := store.ListMenuItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(DefaultMenu()))

	// Seeding a non-empty catalog is a no-op
	require.NoError(t, cat.Seed(ctx, DefaultMenu()))
	items, err = store.ListMenuItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(DefaultMenu()))
}

func TestSeedRejectsInvalidItem(t *testing.T) {
	cat, _ := setupCatalog(t)

	err := cat.Seed(context.Background(), []types.MenuItem{{Name: "", UnitPrice: 10, Category: "Snacks"}})
	assert.True(t, types.IsValidation(err))
}

func TestDefaultMenuIsValid(t *testing.T) {
	for _, item := range DefaultMenu() {
		item := item
		assert.NoError(t, item.Validate(), item.Name)
	}
}
