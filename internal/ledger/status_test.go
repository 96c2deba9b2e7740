package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhojnalaya/ordercore/pkg/types"
)

func TestOperatorTransitions(t *testing.T) {
	ledger, carts, store := setupLedger(t)
	ctx := context.Background()
	item := seedItem(t, store, "Dal Tadka", 120)

	newOrder := func() *types.Order {
		_, err := carts.AddItem(ctx, 42, item.ID, 1)
		require.NoError(t, err)
		order, err := ledger.Checkout(ctx, 42, takeout())
		require.NoError(t, err)
		return order
	}

	t.Run("forward flow", func(t *testing.T) {
		order := newOrder()
		got, err := ledger.UpdateStatus(ctx, order.ID, types.StatusProcessing, operator)
		require.NoError(t, err)
		assert.Equal(t, types.StatusProcessing, got.Status)

		got, err = ledger.UpdateStatus(ctx, order.ID, types.StatusCompleted, operator)
		require.NoError(t, err)
		assert.Equal(t, types.StatusCompleted, got.Status)
	})

	t.Run("backwards move allowed for operator", func(t *testing.T) {
		order := newOrder()
		_, err := ledger.UpdateStatus(ctx, order.ID, types.StatusProcessing, operator)
		require.NoError(t, err)

		got, err := ledger.UpdateStatus(ctx, order.ID, types.StatusPending, operator)
		require.NoError(t, err)
		assert.Equal(t, types.StatusPending, got.Status)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		order := newOrder()
		got, err := ledger.UpdateStatus(ctx, order.ID, types.StatusPending, operator)
		require.NoError(t, err)
		assert.Equal(t, types.StatusPending, got.Status)
	})

	t.Run("terminal states are final", func(t *testing.T) {
		order := newOrder()
		_, err := ledger.UpdateStatus(ctx, order.ID, types.StatusCancelled, operator)
		require.NoError(t, err)

		_, err = ledger.UpdateStatus(ctx, order.ID, types.StatusPending, operator)
		assert.ErrorIs(t, err, types.ErrInvalidTransition)

		// Re-asserting a terminal status is still a no-op
		got, err := ledger.UpdateStatus(ctx, order.ID, types.StatusCancelled, operator)
		require.NoError(t, err)
		assert.Equal(t, types.StatusCancelled, got.Status)
	})

	t.Run("completed is final", func(t *testing.T) {
		order := newOrder()
		_, err := ledger.UpdateStatus(ctx, order.ID, types.StatusProcessing, operator)
		require.NoError(t, err)
		_, err = ledger.UpdateStatus(ctx, order.ID, types.StatusCompleted, operator)
		require.NoError(t, err)

		_, err = ledger.UpdateStatus(ctx, order.ID, types.StatusCancelled, operator)
		assert.ErrorIs(t, err, types.ErrInvalidTransition)
	})
}

func TestCustomerTransitions(t *testing.T) {
	ledger, carts, store := setupLedger(t)
	ctx := context.Background()
	item := seedItem(t, store, "Dal Tadka", 120)

	newOrder := func() *types.Order {
		_, err := carts.AddItem(ctx, 42, item.ID, 1)
		require.NoError(t, err)
		order, err := ledger.Checkout(ctx, 42, takeout())
		require.NoError(t, err)
		return order
	}

	t.Run("may cancel a pending order", func(t *testing.T) {
		order := newOrder()
		got, err := ledger.Cancel(ctx, order.ID, customer)
		require.NoError(t, err)
		assert.Equal(t, types.StatusCancelled, got.Status)
	})

	t.Run("may cancel a processing order", func(t *testing.T) {
		order := newOrder()
		_, err := ledger.UpdateStatus(ctx, order.ID, types.StatusProcessing, operator)
		require.NoError(t, err)

		got, err := ledger.Cancel(ctx, order.ID, customer)
		require.NoError(t, err)
		assert.Equal(t, types.StatusCancelled, got.Status)
	})

	t.Run("may not cancel a completed order", func(t *testing.T) {
		order := newOrder()
		_, err := ledger.UpdateStatus(ctx, order.ID, types.StatusProcessing, operator)
		require.NoError(t, err)
		_, err = ledger.UpdateStatus(ctx, order.ID, types.StatusCompleted, operator)
		require.NoError(t, err)

		_, err = ledger.Cancel(ctx, order.ID, customer)
		assert.ErrorIs(t, err, types.ErrInvalidTransition)
	})

	t.Run("may not request other statuses", func(t *testing.T) {
		order := newOrder()
		_, err := ledger.UpdateStatus(ctx, order.ID, types.StatusProcessing, customer)
		assert.ErrorIs(t, err, types.ErrForbidden)
		_, err = ledger.UpdateStatus(ctx, order.ID, types.StatusCompleted, customer)
		assert.ErrorIs(t, err, types.ErrForbidden)
	})

	t.Run("may not touch another user's order", func(t *testing.T) {
		order := newOrder()
		_, err := ledger.Cancel(ctx, order.ID, other)
		assert.ErrorIs(t, err, types.ErrForbidden)
	})

	t.Run("cancelling twice is a no-op", func(t *testing.T) {
		order := newOrder()
		_, err := ledger.Cancel(ctx, order.ID, customer)
		require.NoError(t, err)
		got, err := ledger.Cancel(ctx, order.ID, customer)
		require.NoError(t, err)
		assert.Equal(t, types.StatusCancelled, got.Status)
	})
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	ledger, _, _ := setupLedger(t)
	_, err := ledger.UpdateStatus(context.Background(), 9999, types.StatusProcessing, operator)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
