package types

import "time"

// OrderStatus is the canonical four-state order lifecycle.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	switch st {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", NewValidationError("status", "must be one of pending, processing, completed, cancelled")
}

// Terminal reports whether no further transition is legal out of the status.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the state machine permits moving from s to
// next in the normal flow: pending → processing → completed, with
// cancellation allowed from pending or processing. Re-asserting the current
// status is always a permitted no-op; nothing leaves a terminal status.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	switch s {
	case StatusPending:
		return next == StatusProcessing || next == StatusCancelled
	case StatusProcessing:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

// OrderType says how the order is fulfilled.
type OrderType string

const (
	OrderDelivery OrderType = "delivery"
	OrderTakeout  OrderType = "takeout"
	OrderDineIn   OrderType = "dine_in"
)

// PaymentMethod is the customer's declared payment choice. Processing the
// payment is out of scope; the value is recorded on the order header only.
type PaymentMethod string

const (
	PayCash PaymentMethod = "cash"
	PayCard PaymentMethod = "card"
	PayUPI  PaymentMethod = "upi"
)

// DeliveryInfo carries the checkout fields for the immutable order header.
type DeliveryInfo struct {
	Address       string
	Phone         string
	PaymentMethod PaymentMethod
	OrderType     OrderType
}

// Validate enforces the checkout field rules: phone always required, address
// required for delivery, enumerations closed.
func (d *DeliveryInfo) Validate() error {
	switch d.OrderType {
	case OrderDelivery, OrderTakeout, OrderDineIn:
	default:
		return NewValidationError("orderType", "must be one of delivery, takeout, dine_in")
	}
	switch d.PaymentMethod {
	case PayCash, PayCard, PayUPI:
	default:
		return NewValidationError("paymentMethod", "must be one of cash, card, upi")
	}
	if d.Phone == "" {
		return NewValidationError("phone", "required")
	}
	if d.OrderType == OrderDelivery && d.Address == "" {
		return NewValidationError("address", "required for delivery orders")
	}
	return nil
}

// OrderLine is an immutable snapshot of one cart line at checkout time.
// UnitPrice is a point-in-time copy of the catalog price, not a reference.
type OrderLine struct {
	ID         int64     `json:"id"`
	OrderID    int64     `json:"orderId"`
	MenuItemID int64     `json:"menuItemId"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unitPrice"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Amount returns the line's contribution to the order total.
func (l OrderLine) Amount() float64 {
	return LineAmount(l.Quantity, l.UnitPrice)
}

// Order is an immutable header plus line snapshots; only Status mutates, and
// only through the ledger's state machine. Total is computed once at
// creation and never recomputed from catalog prices.
type Order struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"userId"`
	Status        OrderStatus   `json:"status"`
	Total         float64       `json:"total"`
	Address       string        `json:"address,omitempty"`
	Phone         string        `json:"phone"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	OrderType     OrderType     `json:"orderType"`
	Lines         []OrderLine   `json:"lines"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}
