// Package types defines the shared domain model for the ordering core:
// menu items, carts, orders, actors, and the typed errors every component
// reports failures with.
//
// Types carry their own validation; services call Validate before touching
// storage so a malformed quantity or delivery field never reaches a query.
package types
