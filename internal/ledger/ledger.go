// Package ledger owns the order collection: checkout converts a cart into
// an immutable order with price snapshots, and the state machine in
// status.go is the only path that mutates an order afterwards.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/bhojnalaya/ordercore/internal/storage"
	"github.com/bhojnalaya/ordercore/pkg/types"
)

// Ledger creates and reads orders.
type Ledger struct {
	store storage.Storage
}

// New creates an order ledger backed by store.
func New(store storage.Storage) *Ledger {
	return &Ledger{store: store}
}

// Checkout converts the user's cart into a new pending order and clears the
// cart, all inside one transaction. Prices are resolved from the catalog
// rows at transaction time and frozen onto the order lines; the stored
// total is never recomputed afterwards.
//
// A missing menu item aborts the whole checkout: partial orders are
// forbidden, so lines are never silently dropped. A concurrent second
// checkout for the same user serializes behind the first and then fails
// with ErrEmptyCart against the cleared cart.
func (l *Ledger) Checkout(ctx context.Context, userID int64, info types.DeliveryInfo) (*types.Order, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}

	tx, err := l.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin checkout: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	cart, err := tx.GetCartByUser(ctx, userID)
	if errors.Is(err, types.ErrNotFound) {
		return nil, types.ErrEmptyCart
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart.Empty() {
		return nil, types.ErrEmptyCart
	}

	lines := make([]types.OrderLine, 0, len(cart.Lines))
	total := 0.0
	for _, cl := range cart.Lines {
		// Resolve against storage inside the transaction, not the cached
		// catalog view, so every line snapshots the same consistent prices.
		item, err := tx.GetMenuItem(ctx, cl.MenuItemID)
		if errors.Is(err, types.ErrNotFound) {
			return nil, fmt.Errorf("menu item %d: %w", cl.MenuItemID, types.ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve menu item %d: %w", cl.MenuItemID, err)
		}
		lines = append(lines, types.OrderLine{
			MenuItemID: cl.MenuItemID,
			Quantity:   cl.Quantity,
			UnitPrice:  item.UnitPrice,
		})
		total += types.LineAmount(cl.Quantity, item.UnitPrice)
	}

	order := &types.Order{
		UserID:        userID,
		Status:        types.StatusPending,
		Total:         types.Round2(total),
		Address:       info.Address,
		Phone:         info.Phone,
		PaymentMethod: info.PaymentMethod,
		OrderType:     info.OrderType,
		Lines:         lines,
	}
	if err := tx.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	if err := tx.ClearCart(ctx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}
	return order, nil
}

// Get returns one order. Customers may only read their own orders;
// operators may read any.
func (l *Ledger) Get(ctx context.Context, id int64, actor types.Actor) (*types.Order, error) {
	order, err := l.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsOperator() && order.UserID != actor.UserID {
		return nil, types.ErrForbidden
	}
	return order, nil
}

// ListMine returns the user's orders, most recent first.
func (l *Ledger) ListMine(ctx context.Context, userID int64) ([]*types.Order, error) {
	return l.store.ListOrdersByUser(ctx, userID)
}

// ListAll returns every order, most recent first. Operator only.
func (l *Ledger) ListAll(ctx context.Context, actor types.Actor) ([]*types.Order, error) {
	if !actor.IsOperator() {
		return nil, types.ErrForbidden
	}
	return l.store.ListOrders(ctx)
}

// ListRecent returns the newest orders up to limit. Operator only.
func (l *Ledger) ListRecent(ctx context.Context, actor types.Actor, limit int) ([]*types.Order, error) {
	if !actor.IsOperator() {
		return nil, types.ErrForbidden
	}
	if limit <= 0 {
		limit = 10
	}
	return l.store.ListRecentOrders(ctx, limit)
}
