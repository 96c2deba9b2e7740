package ledger

import (
	"context"

	"github.com/bhojnalaya/ordercore/pkg/types"
)

// UpdateStatus applies one status transition to an order.
//
// Rules:
//   - The caller must own the order or be an operator; otherwise
//     ErrForbidden, before any transition check.
//   - A customer may only request cancellation; any other target is
//     ErrForbidden.
//   - Re-asserting the current status is an idempotent no-op, terminal
//     states included.
//   - Nothing moves out of completed or cancelled; that fails
//     ErrInvalidTransition for every role.
//   - An operator may otherwise move between any non-terminal states
//     (administrative override, backwards included); a customer's
//     cancellation must be legal per the state machine.
func (l *Ledger) UpdateStatus(ctx context.Context, orderID int64, newStatus types.OrderStatus, actor types.Actor) (*types.Order, error) {
	order, err := l.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !actor.IsOperator() && order.UserID != actor.UserID {
		return nil, types.ErrForbidden
	}
	if !actor.IsOperator() && newStatus != types.StatusCancelled {
		return nil, types.ErrForbidden
	}

	if newStatus == order.Status {
		return order, nil
	}
	if order.Status.Terminal() {
		return nil, types.ErrInvalidTransition
	}
	if !actor.IsOperator() && !order.Status.CanTransitionTo(newStatus) {
		return nil, types.ErrInvalidTransition
	}

	if err := l.store.UpdateOrderStatus(ctx, orderID, newStatus); err != nil {
		return nil, err
	}
	order.Status = newStatus
	return order, nil
}

// Cancel is the customer-facing cancellation: sugar over UpdateStatus with
// the cancelled target.
func (l *Ledger) Cancel(ctx context.Context, orderID int64, actor types.Actor) (*types.Order, error) {
	return l.UpdateStatus(ctx, orderID, types.StatusCancelled, actor)
}
