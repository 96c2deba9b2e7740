package catalog

import (
	"context"
	"fmt"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/bhojnalaya/ordercore/internal/storage"
	"github.com/bhojnalaya/ordercore/pkg/types"
)

// Catalog is the read-only menu collaborator consumed by the cart, ledger,
// and analytics components. Item CRUD lives outside the core.
type Catalog interface {
	GetMenuItem(ctx context.Context, id int64) (*types.MenuItem, error)
}

const (
	cacheSize  = 1000
	defaultTTL = 30 * time.Second
)

// cacheEntry represents a cached menu item with expiration time
type cacheEntry struct {
	item      *types.MenuItem
	expiresAt time.Time
}

// Service reads menu items from storage through a small LRU cache. Checkout
// and analytics resolve the same handful of items repeatedly, so misses are
// collapsed with singleflight.
type Service struct {
	store storage.Storage
	cache *lru.Cache[int64, *cacheEntry]
	sfg   singleflight.Group
	ttl   time.Duration
}

// New creates a catalog service backed by store.
func New(store storage.Storage) *Service {
	cache, err := lru.New[int64, *cacheEntry](cacheSize)
	if err != nil {
		// This should never happen with valid size parameter
		panic(fmt.Sprintf("failed to create LRU cache: %v", err))
	}
	return &Service{store: store, cache: cache, ttl: defaultTTL}
}

// GetMenuItem returns the current catalog row for id, or types.ErrNotFound.
func (s *Service) GetMenuItem(ctx context.Context, id int64) (*types.MenuItem, error) {
	if entry, ok := s.cache.Get(id); ok {
		if time.Now().Before(entry.expiresAt) {
			return entry.item, nil
		}
		s.cache.Remove(id)
	}

	v, err, _ := s.sfg.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		item, err := s.store.GetMenuItem(ctx, id)
		if err != nil {
			return nil, err
		}
		s.cache.Add(id, &cacheEntry{item: item, expiresAt: time.Now().Add(s.ttl)})
		return item, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.MenuItem), nil
}

// Invalidate drops a cached item after a catalog mutation.
func (s *Service) Invalidate(id int64) {
	s.cache.Remove(id)
}

// Seed loads items into storage when the catalog is empty. Used by the
// binary for development setups; production menus are managed elsewhere.
func (s *Service) Seed(ctx context.Context, items []types.MenuItem) error {
	existing, err := s.store.ListMenuItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to list menu items: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for i := range items {
		item := items[i]
		if err := item.Validate(); err != nil {
			return err
		}
		if err := s.store.UpsertMenuItem(ctx, &item); err != nil {
			return err
		}
	}
	return nil
}

// DefaultMenu is the development seed menu.
func DefaultMenu() []types.MenuItem {
	return []types.MenuItem{
		{Name: "Dal Tadka", UnitPrice: 120, Category: "Curries", IsAvailable: true},
		{Name: "Paneer Butter Masala", UnitPrice: 180, Category: "Curries", IsAvailable: true},
		{Name: "Tandoori Roti", UnitPrice: 15, Category: "Breads", IsAvailable: true},
		{Name: "Butter Naan", UnitPrice: 30, Category: "Breads", IsAvailable: true},
		{Name: "Jeera Rice", UnitPrice: 90, Category: "Rice", IsAvailable: true},
		{Name: "Gulab Jamun", UnitPrice: 60, Category: "Desserts", IsAvailable: true},
		{Name: "Masala Chaas", UnitPrice: 40, Category: "Beverages", IsAvailable: true},
	}
}
