package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bhojnalaya/ordercore/pkg/types"
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Single writer keeps checkout serialization trivial: two concurrent
	// checkouts for one user cannot interleave cart reads and clears.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Apply migrations
	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx, storage: s}, nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// sqliteTx wraps a SQL transaction
type sqliteTx struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// querier returns the transaction querier
func (t *sqliteTx) querier() querier {
	return t.tx
}

// querier returns the DB querier
func (s *SQLiteStorage) querier() querier {
	return s.db
}

// Menu operations

// upsertMenuItemWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) upsertMenuItemWithQuerier(ctx context.Context, q querier, item *types.MenuItem) error {
	var id interface{}
	if item.ID != 0 {
		id = item.ID
	}

	query := `
		INSERT INTO menu_items (id, name, unit_price, category, is_available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			unit_price = excluded.unit_price,
			category = excluded.category,
			is_available = excluded.is_available,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`
	now := time.Now()
	err := q.QueryRowContext(ctx, query,
		id, item.Name, item.UnitPrice, item.Category, item.IsAvailable, now, now,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert menu item: %w", err)
	}
	item.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) UpsertMenuItem(ctx context.Context, item *types.MenuItem) error {
	return s.upsertMenuItemWithQuerier(ctx, s.querier(), item)
}

// getMenuItemWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getMenuItemWithQuerier(ctx context.Context, q querier, id int64) (*types.MenuItem, error) {
	query := `
		SELECT id, name, unit_price, category, is_available, created_at, updated_at
		FROM menu_items
		WHERE id = ?
	`
	var item types.MenuItem
	err := q.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.UnitPrice, &item.Category,
		&item.IsAvailable, &item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *SQLiteStorage) GetMenuItem(ctx context.Context, id int64) (*types.MenuItem, error) {
	return s.getMenuItemWithQuerier(ctx, s.querier(), id)
}

// listMenuItemsWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) listMenuItemsWithQuerier(ctx context.Context, q querier) ([]*types.MenuItem, error) {
	query := `
		SELECT id, name, unit_price, category, is_available, created_at, updated_at
		FROM menu_items
		ORDER BY category, name
	`
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := make([]*types.MenuItem, 0)
	for rows.Next() {
		var item types.MenuItem
		err := rows.Scan(
			&item.ID, &item.Name, &item.UnitPrice, &item.Category,
			&item.IsAvailable, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (s *SQLiteStorage) ListMenuItems(ctx context.Context) ([]*types.MenuItem, error) {
	return s.listMenuItemsWithQuerier(ctx, s.querier())
}

// deleteMenuItemWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) deleteMenuItemWithQuerier(ctx context.Context, q querier, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (s *SQLiteStorage) DeleteMenuItem(ctx context.Context, id int64) error {
	return s.deleteMenuItemWithQuerier(ctx, s.querier(), id)
}

// Cart operations

// ensureCartWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) ensureCartWithQuerier(ctx context.Context, q querier, userID int64) (*types.Cart, error) {
	// Atomic get-or-create keyed by user
	query := `
		INSERT INTO carts (user_id, created_at, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET updated_at = excluded.updated_at
		RETURNING id, user_id, created_at, updated_at
	`
	now := time.Now()
	var cart types.Cart
	err := q.QueryRowContext(ctx, query, userID, now, now).Scan(
		&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure cart: %w", err)
	}

	lines, err := s.listCartLinesWithQuerier(ctx, q, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Lines = lines
	return &cart, nil
}

func (s *SQLiteStorage) EnsureCart(ctx context.Context, userID int64) (*types.Cart, error) {
	return s.ensureCartWithQuerier(ctx, s.querier(), userID)
}

// getCartByUserWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getCartByUserWithQuerier(ctx context.Context, q querier, userID int64) (*types.Cart, error) {
	query := `
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE user_id = ?
	`
	var cart types.Cart
	err := q.QueryRowContext(ctx, query, userID).Scan(
		&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	lines, err := s.listCartLinesWithQuerier(ctx, q, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Lines = lines
	return &cart, nil
}

func (s *SQLiteStorage) GetCartByUser(ctx context.Context, userID int64) (*types.Cart, error) {
	return s.getCartByUserWithQuerier(ctx, s.querier(), userID)
}

// listCartLinesWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) listCartLinesWithQuerier(ctx context.Context, q querier, cartID int64) ([]types.CartLine, error) {
	query := `
		SELECT id, cart_id, menu_item_id, quantity, created_at, updated_at
		FROM cart_lines
		WHERE cart_id = ?
		ORDER BY id
	`
	rows, err := q.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	lines := make([]types.CartLine, 0)
	for rows.Next() {
		var line types.CartLine
		err := rows.Scan(
			&line.ID, &line.CartID, &line.MenuItemID, &line.Quantity,
			&line.CreatedAt, &line.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// addCartLineWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) addCartLineWithQuerier(ctx context.Context, q querier, cartID, menuItemID int64, quantity int) error {
	// Atomic increment: re-adding an item grows the existing line instead
	// of duplicating it, with no read-modify-write race.
	query := `
		INSERT INTO cart_lines (cart_id, menu_item_id, quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(cart_id, menu_item_id) DO UPDATE SET
			quantity = quantity + excluded.quantity,
			updated_at = excluded.updated_at
	`
	now := time.Now()
	_, err := q.ExecContext(ctx, query, cartID, menuItemID, quantity, now, now)
	if err != nil {
		return fmt.Errorf("failed to add cart line: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) AddCartLine(ctx context.Context, cartID, menuItemID int64, quantity int) error {
	return s.addCartLineWithQuerier(ctx, s.querier(), cartID, menuItemID, quantity)
}

// setCartLineQuantityWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) setCartLineQuantityWithQuerier(ctx context.Context, q querier, cartID, lineID int64, quantity int) (bool, error) {
	query := `UPDATE cart_lines SET quantity = ?, updated_at = ? WHERE id = ? AND cart_id = ?`
	result, err := q.ExecContext(ctx, query, quantity, time.Now(), lineID, cartID)
	if err != nil {
		return false, fmt.Errorf("failed to set cart line quantity: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *SQLiteStorage) SetCartLineQuantity(ctx context.Context, cartID, lineID int64, quantity int) (bool, error) {
	return s.setCartLineQuantityWithQuerier(ctx, s.querier(), cartID, lineID, quantity)
}

// deleteCartLineWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) deleteCartLineWithQuerier(ctx context.Context, q querier, cartID, lineID int64) error {
	query := `DELETE FROM cart_lines WHERE id = ? AND cart_id = ?`
	_, err := q.ExecContext(ctx, query, lineID, cartID)
	return err
}

func (s *SQLiteStorage) DeleteCartLine(ctx context.Context, cartID, lineID int64) error {
	return s.deleteCartLineWithQuerier(ctx, s.querier(), cartID, lineID)
}

// clearCartWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) clearCartWithQuerier(ctx context.Context, q querier, cartID int64) error {
	query := `DELETE FROM cart_lines WHERE cart_id = ?`
	_, err := q.ExecContext(ctx, query, cartID)
	return err
}

func (s *SQLiteStorage) ClearCart(ctx context.Context, cartID int64) error {
	return s.clearCartWithQuerier(ctx, s.querier(), cartID)
}

// Order operations

// createOrderWithQuerier is the internal implementation that uses a querier.
// Timestamps are stored in UTC: the driver binds time.Time as text with the
// value's own offset, and SQL compares that text lexicographically, so mixed
// offsets would break created_at range queries.
func (s *SQLiteStorage) createOrderWithQuerier(ctx context.Context, q querier, order *types.Order) error {
	query := `
		INSERT INTO orders (user_id, status, total, address, phone, payment_method, order_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.CreatedAt = order.CreatedAt.UTC()
	err := q.QueryRowContext(ctx, query,
		order.UserID, order.Status, order.Total,
		order.Address, order.Phone, order.PaymentMethod, order.OrderType,
		order.CreatedAt, now,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	order.UpdatedAt = now

	lineQuery := `
		INSERT INTO order_lines (order_id, menu_item_id, quantity, unit_price, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`
	for i := range order.Lines {
		line := &order.Lines[i]
		line.OrderID = order.ID
		err := q.QueryRowContext(ctx, lineQuery,
			order.ID, line.MenuItemID, line.Quantity, line.UnitPrice, now,
		).Scan(&line.ID)
		if err != nil {
			return fmt.Errorf("failed to insert order line for item %d: %w", line.MenuItemID, err)
		}
		line.CreatedAt = now
	}
	return nil
}

func (s *SQLiteStorage) CreateOrder(ctx context.Context, order *types.Order) error {
	return s.createOrderWithQuerier(ctx, s.querier(), order)
}

const orderColumns = `id, user_id, status, total, address, phone, payment_method, order_type, created_at, updated_at`

func scanOrder(scan func(dest ...interface{}) error) (*types.Order, error) {
	var order types.Order
	err := scan(
		&order.ID, &order.UserID, &order.Status, &order.Total,
		&order.Address, &order.Phone, &order.PaymentMethod, &order.OrderType,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// getOrderWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getOrderWithQuerier(ctx context.Context, q querier, id int64) (*types.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`
	row := q.QueryRowContext(ctx, query, id)
	order, err := scanOrder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.attachOrderLines(ctx, q, []*types.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *SQLiteStorage) GetOrder(ctx context.Context, id int64) (*types.Order, error) {
	return s.getOrderWithQuerier(ctx, s.querier(), id)
}

// listOrdersWithQuerier runs a SELECT over orders and attaches lines in one
// batched query.
func (s *SQLiteStorage) listOrdersWithQuerier(ctx context.Context, q querier, query string, args ...interface{}) ([]*types.Order, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	orders := make([]*types.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachOrderLines(ctx, q, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachOrderLines loads the lines for a batch of orders with a single
// parameterized IN query.
func (s *SQLiteStorage) attachOrderLines(ctx context.Context, q querier, orders []*types.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[int64]*types.Order, len(orders))
	placeholders := make([]string, len(orders))
	args := make([]interface{}, len(orders))
	for i, order := range orders {
		order.Lines = make([]types.OrderLine, 0)
		byID[order.ID] = order
		placeholders[i] = "?"
		args[i] = order.ID
	}

	query := `
		SELECT id, order_id, menu_item_id, quantity, unit_price, created_at
		FROM order_lines
		WHERE order_id IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY id
	`
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var line types.OrderLine
		err := rows.Scan(
			&line.ID, &line.OrderID, &line.MenuItemID,
			&line.Quantity, &line.UnitPrice, &line.CreatedAt,
		)
		if err != nil {
			return err
		}
		if order, ok := byID[line.OrderID]; ok {
			order.Lines = append(order.Lines, line)
		}
	}
	return rows.Err()
}

func (s *SQLiteStorage) ListOrdersByUser(ctx context.Context, userID int64) ([]*types.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	return s.listOrdersWithQuerier(ctx, s.querier(), query, userID)
}

func (s *SQLiteStorage) ListOrders(ctx context.Context) ([]*types.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id DESC`
	return s.listOrdersWithQuerier(ctx, s.querier(), query)
}

func (s *SQLiteStorage) ListRecentOrders(ctx context.Context, limit int) ([]*types.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id DESC LIMIT ?`
	return s.listOrdersWithQuerier(ctx, s.querier(), query, limit)
}

// listOrdersBetweenWithQuerier returns orders with created_at in [from, to],
// ascending. A zero bound is open on that side. Bounds are compared in UTC
// to match how created_at is stored.
func (s *SQLiteStorage) listOrdersBetweenWithQuerier(ctx context.Context, q querier, from, to time.Time) ([]*types.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	conds := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)
	if !from.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, to.UTC())
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at ASC, id ASC"
	return s.listOrdersWithQuerier(ctx, q, query, args...)
}

func (s *SQLiteStorage) ListOrdersBetween(ctx context.Context, from, to time.Time) ([]*types.Order, error) {
	return s.listOrdersBetweenWithQuerier(ctx, s.querier(), from, to)
}

// updateOrderStatusWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) updateOrderStatusWithQuerier(ctx context.Context, q querier, id int64, status types.OrderStatus) error {
	query := `UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`
	result, err := q.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (s *SQLiteStorage) UpdateOrderStatus(ctx context.Context, id int64, status types.OrderStatus) error {
	return s.updateOrderStatusWithQuerier(ctx, s.querier(), id, status)
}

// Transaction implementations

func (t *sqliteTx) UpsertMenuItem(ctx context.Context, item *types.MenuItem) error {
	return t.storage.upsertMenuItemWithQuerier(ctx, t.querier(), item)
}

func (t *sqliteTx) GetMenuItem(ctx context.Context, id int64) (*types.MenuItem, error) {
	return t.storage.getMenuItemWithQuerier(ctx, t.querier(), id)
}

func (t *sqliteTx) ListMenuItems(ctx context.Context) ([]*types.MenuItem, error) {
	return t.storage.listMenuItemsWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) DeleteMenuItem(ctx context.Context, id int64) error {
	return t.storage.deleteMenuItemWithQuerier(ctx, t.querier(), id)
}

func (t *sqliteTx) EnsureCart(ctx context.Context, userID int64) (*types.Cart, error) {
	return t.storage.ensureCartWithQuerier(ctx, t.querier(), userID)
}

func (t *sqliteTx) GetCartByUser(ctx context.Context, userID int64) (*types.Cart, error) {
	return t.storage.getCartByUserWithQuerier(ctx, t.querier(), userID)
}

func (t *sqliteTx) AddCartLine(ctx context.Context, cartID, menuItemID int64, quantity int) error {
	return t.storage.addCartLineWithQuerier(ctx, t.querier(), cartID, menuItemID, quantity)
}

func (t *sqliteTx) SetCartLineQuantity(ctx context.Context, cartID, lineID int64, quantity int) (bool, error) {
	return t.storage.setCartLineQuantityWithQuerier(ctx, t.querier(), cartID, lineID, quantity)
}

func (t *sqliteTx) DeleteCartLine(ctx context.Context, cartID, lineID int64) error {
	return t.storage.deleteCartLineWithQuerier(ctx, t.querier(), cartID, lineID)
}

func (t *sqliteTx) ClearCart(ctx context.Context, cartID int64) error {
	return t.storage.clearCartWithQuerier(ctx, t.querier(), cartID)
}

func (t *sqliteTx) CreateOrder(ctx context.Context, order *types.Order) error {
	return t.storage.createOrderWithQuerier(ctx, t.querier(), order)
}

func (t *sqliteTx) GetOrder(ctx context.Context, id int64) (*types.Order, error) {
	return t.storage.getOrderWithQuerier(ctx, t.querier(), id)
}

func (t *sqliteTx) ListOrdersByUser(ctx context.Context, userID int64) ([]*types.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	return t.storage.listOrdersWithQuerier(ctx, t.querier(), query, userID)
}

func (t *sqliteTx) ListOrders(ctx context.Context) ([]*types.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id DESC`
	return t.storage.listOrdersWithQuerier(ctx, t.querier(), query)
}

func (t *sqliteTx) ListRecentOrders(ctx context.Context, limit int) ([]*types.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id DESC LIMIT ?`
	return t.storage.listOrdersWithQuerier(ctx, t.querier(), query, limit)
}

func (t *sqliteTx) ListOrdersBetween(ctx context.Context, from, to time.Time) ([]*types.Order, error) {
	return t.storage.listOrdersBetweenWithQuerier(ctx, t.querier(), from, to)
}

func (t *sqliteTx) UpdateOrderStatus(ctx context.Context, id int64, status types.OrderStatus) error {
	return t.storage.updateOrderStatusWithQuerier(ctx, t.querier(), id, status)
}

func (t *sqliteTx) Close() error {
	// Transactions don't close the underlying connection
	return nil
}

func (t *sqliteTx) BeginTx(ctx context.Context) (Tx, error) {
	// SQLite does not support true nested transactions
	return nil, errors.New("nested transactions not supported")
}
