// Package cart implements the per-user cart store: one mutable cart per
// user, lines unique by menu item, quantities always positive.
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/bhojnalaya/ordercore/internal/catalog"
	"github.com/bhojnalaya/ordercore/internal/storage"
	"github.com/bhojnalaya/ordercore/pkg/types"
)

// Store owns all cart mutations. It touches the catalog only to validate
// item references and to price the read model; it never writes menu or
// order state.
type Store struct {
	store   storage.Storage
	catalog catalog.Catalog
}

// NewStore creates a cart store.
func NewStore(store storage.Storage, cat catalog.Catalog) *Store {
	return &Store{store: store, catalog: cat}
}

// Get returns the user's cart with live pricing. A user with no persisted
// cart gets an empty view; the row itself is created lazily on first add.
func (s *Store) Get(ctx context.Context, userID int64) (*types.CartView, error) {
	cart, err := s.store.GetCartByUser(ctx, userID)
	if errors.Is(err, types.ErrNotFound) {
		return &types.CartView{
			Cart:  types.Cart{UserID: userID},
			Lines: []types.PricedCartLine{},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return s.price(ctx, cart)
}

// price builds the display view: each line joined with its current catalog
// item. Lines whose item vanished from the catalog are shown unavailable
// with a zero price; checkout, not Get, is where a dangling reference fails.
func (s *Store) price(ctx context.Context, cart *types.Cart) (*types.CartView, error) {
	view := &types.CartView{
		Cart:  *cart,
		Lines: make([]types.PricedCartLine, 0, len(cart.Lines)),
	}
	for _, line := range cart.Lines {
		priced := types.PricedCartLine{CartLine: line}
		item, err := s.catalog.GetMenuItem(ctx, line.MenuItemID)
		switch {
		case errors.Is(err, types.ErrNotFound):
			// keep the line visible so the user can remove it
		case err != nil:
			return nil, fmt.Errorf("failed to resolve menu item %d: %w", line.MenuItemID, err)
		default:
			priced.Name = item.Name
			priced.UnitPrice = item.UnitPrice
			priced.IsAvailable = item.IsAvailable
			priced.Amount = types.LineAmount(line.Quantity, item.UnitPrice)
		}
		view.Subtotal += priced.Amount
		view.Lines = append(view.Lines, priced)
	}
	view.Subtotal = types.Round2(view.Subtotal)
	return view, nil
}

// AddItem adds quantity of a menu item to the user's cart, incrementing the
// existing line when the item is already present.
func (s *Store) AddItem(ctx context.Context, userID, menuItemID int64, quantity int) (*types.CartView, error) {
	if quantity < 1 {
		return nil, types.NewValidationError("quantity", "must be at least 1")
	}
	if _, err := s.catalog.GetMenuItem(ctx, menuItemID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, fmt.Errorf("menu item %d: %w", menuItemID, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve menu item %d: %w", menuItemID, err)
	}

	cart, err := s.store.EnsureCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.store.AddCartLine(ctx, cart.ID, menuItemID, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// SetQuantity overwrites a line's quantity. A quantity of zero or less
// removes the line; removing an absent line is a no-op success.
func (s *Store) SetQuantity(ctx context.Context, userID, lineID int64, quantity int) (*types.CartView, error) {
	cart, err := s.store.GetCartByUser(ctx, userID)
	if errors.Is(err, types.ErrNotFound) {
		if quantity <= 0 {
			return s.Get(ctx, userID)
		}
		return nil, fmt.Errorf("cart line %d: %w", lineID, types.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		if err := s.store.DeleteCartLine(ctx, cart.ID, lineID); err != nil {
			return nil, err
		}
		return s.Get(ctx, userID)
	}

	found, err := s.store.SetCartLineQuantity(ctx, cart.ID, lineID, quantity)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("cart line %d: %w", lineID, types.ErrNotFound)
	}
	return s.Get(ctx, userID)
}

// RemoveItem deletes one line. Idempotent.
func (s *Store) RemoveItem(ctx context.Context, userID, lineID int64) (*types.CartView, error) {
	cart, err := s.store.GetCartByUser(ctx, userID)
	if errors.Is(err, types.ErrNotFound) {
		return s.Get(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteCartLine(ctx, cart.ID, lineID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// Clear removes all lines, keeping the cart row. Idempotent.
func (s *Store) Clear(ctx context.Context, userID int64) error {
	cart, err := s.store.GetCartByUser(ctx, userID)
	if errors.Is(err, types.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.store.ClearCart(ctx, cart.ID)
}
