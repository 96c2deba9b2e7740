package storage

import (
	"context"
	"time"

	"github.com/bhojnalaya/ordercore/pkg/types"
)

// Storage defines the persistence interface for menu, cart, and order data.
// Implementations return types.ErrNotFound for missing rows so callers can
// use errors.Is without knowing the driver.
type Storage interface {
	// Menu operations. The HTTP surface exposes no menu CRUD; these exist
	// for seeding, the catalog adapter, and tests.
	UpsertMenuItem(ctx context.Context, item *types.MenuItem) error
	GetMenuItem(ctx context.Context, id int64) (*types.MenuItem, error)
	ListMenuItems(ctx context.Context) ([]*types.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id int64) error

	// Cart operations. A cart row is created lazily by EnsureCart and is
	// keyed uniquely by user.
	EnsureCart(ctx context.Context, userID int64) (*types.Cart, error)
	GetCartByUser(ctx context.Context, userID int64) (*types.Cart, error)
	AddCartLine(ctx context.Context, cartID, menuItemID int64, quantity int) error
	SetCartLineQuantity(ctx context.Context, cartID, lineID int64, quantity int) (found bool, err error)
	DeleteCartLine(ctx context.Context, cartID, lineID int64) error
	ClearCart(ctx context.Context, cartID int64) error

	// Order operations. Orders are append-mostly: header and lines are
	// written once; only status may change afterwards.
	CreateOrder(ctx context.Context, order *types.Order) error
	GetOrder(ctx context.Context, id int64) (*types.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]*types.Order, error)
	ListOrders(ctx context.Context) ([]*types.Order, error)
	ListRecentOrders(ctx context.Context, limit int) ([]*types.Order, error)
	ListOrdersBetween(ctx context.Context, from, to time.Time) ([]*types.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status types.OrderStatus) error

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction over the same operations.
type Tx interface {
	Commit() error
	Rollback() error
	Storage
}
