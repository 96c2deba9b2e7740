package types

import "time"

// MenuItem is the catalog's view of a sellable item. The core only reads
// menu items; CRUD and image storage belong to the catalog collaborator.
//
// A unit price referenced by an existing order line is historically frozen
// there as OrderLine.UnitPrice; changing the catalog price later must never
// reprice a placed order.
type MenuItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	UnitPrice   float64   `json:"unitPrice"`
	Category    string    `json:"category"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checks catalog invariants on an item.
func (m *MenuItem) Validate() error {
	if m.Name == "" {
		return NewValidationError("name", "required")
	}
	if m.UnitPrice < 0 {
		return NewValidationError("unitPrice", "must be non-negative")
	}
	if m.Category == "" {
		return NewValidationError("category", "required")
	}
	return nil
}
