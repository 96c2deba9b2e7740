package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "completed", "cancelled"} {
		status, err := ParseOrderStatus(s)
		assert.NoError(t, err)
		assert.Equal(t, OrderStatus(s), status)
	}

	_, err := ParseOrderStatus("shipped")
	assert.True(t, IsValidation(err))
	_, err = ParseOrderStatus("")
	assert.True(t, IsValidation(err))
}

func TestTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusProcessing, StatusCompleted, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusProcessing, false},
		// Same status is always a legal no-op
		{StatusPending, StatusPending, true},
		{StatusCompleted, StatusCompleted, true},
		{StatusCancelled, StatusCancelled, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestDeliveryInfoValidate(t *testing.T) {
	valid := DeliveryInfo{
		Address:       "12 MG Road",
		Phone:         "9000000000",
		PaymentMethod: PayCard,
		OrderType:     OrderDelivery,
	}
	assert.NoError(t, valid.Validate())

	// Address only required for delivery
	takeout := DeliveryInfo{Phone: "9000000000", PaymentMethod: PayCash, OrderType: OrderTakeout}
	assert.NoError(t, takeout.Validate())
	dineIn := DeliveryInfo{Phone: "9000000000", PaymentMethod: PayUPI, OrderType: OrderDineIn}
	assert.NoError(t, dineIn.Validate())

	invalid := []DeliveryInfo{
		{Phone: "9", PaymentMethod: PayCash, OrderType: "pickup"},
		{Phone: "9", PaymentMethod: "crypto", OrderType: OrderTakeout},
		{PaymentMethod: PayCash, OrderType: OrderTakeout},
		{Phone: "9", PaymentMethod: PayCash, OrderType: OrderDelivery},
	}
	for i, info := range invalid {
		assert.True(t, IsValidation(info.Validate()), "case %d", i)
	}
}

func TestOrderLineAmount(t *testing.T) {
	line := OrderLine{Quantity: 3, UnitPrice: 33.335}
	assert.InDelta(t, 100.005, line.Amount(), 1e-9)
}
