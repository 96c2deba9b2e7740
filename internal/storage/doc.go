// Package storage provides SQLite-based persistence for the ordering core.
//
// The storage layer manages:
//   - Menu items (read-mostly catalog rows)
//   - Carts and cart lines (one mutable cart per user)
//   - Orders and order lines (immutable snapshots, mutable status)
//
// # Database Schema
//
// Tables:
//   - menu_items: catalog rows (name, unit_price, category, availability)
//   - carts: one row per user, created lazily
//   - cart_lines: unique per (cart, menu item), quantity always positive
//   - orders: header with frozen total and mutable status
//   - order_lines: per-line price snapshots, written once
//
// # Transactions
//
// Checkout uses a transaction so the read-cart, write-order, clear-cart
// sequence is all-or-nothing:
//
//	tx, err := store.BeginTx(ctx)
//	if err != nil {
//	    return err
//	}
//	defer tx.Rollback()
//
//	cart, _ := tx.GetCartByUser(ctx, userID)
//	_ = tx.CreateOrder(ctx, order)
//	_ = tx.ClearCart(ctx, cart.ID)
//
//	if err := tx.Commit(); err != nil {
//	    return err
//	}
//
// The connection pool is capped at a single connection, so concurrent
// checkouts for the same user serialize instead of double-spending a cart.
//
// # Build Tags
//
// Two build configurations are supported:
//
// Pure Go build (default, purego tag):
//
//   - Uses modernc.org/sqlite driver
//
//   - No C compiler needed
//
//     CGO_ENABLED=0 go build -tags "purego"
//
// CGO build (sqlite_cgo tag):
//
//   - Uses github.com/mattn/go-sqlite3 driver
//
//   - Requires a C compiler
//
//     CGO_ENABLED=1 go build -tags "sqlite_cgo"
package storage
