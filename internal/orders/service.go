package orders

import (
	"context"

	"github.com/dimasfh/storefront/internal/fault"
	"github.com/dimasfh/storefront/internal/logging"
	"go.uber.org/zap"
)

// StatusStore is the slice of the order store needed for status transitions.
type StatusStore interface {
	GetOrder(ctx context.Context, id string) (*Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status Status, trackingNumber string) (*Order, error)
}

// Notifier receives the updated order after a transition. Delivery is
// best-effort and must not affect the result returned to the caller.
type Notifier interface {
	OrderStatusChanged(ctx context.Context, o *Order)
}

// Service applies administrative status transitions.
type Service struct {
	Store    StatusStore
	Notifier Notifier
}

// UpdateStatus moves an order to newStatus, optionally attaching a tracking
// number. Transitions are forward-only; cancellation is allowed until the
// order ships.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, newStatus Status, trackingNumber string) (*Order, error) {
	logger := logging.FromContext(ctx).With(zap.String("order_id", orderID))

	if orderID == "" {
		return nil, fault.New(fault.KindInvalidArgument, "order id is required")
	}
	if !newStatus.Valid() {
		return nil, fault.Newf(fault.KindInvalidArgument, "unknown status %q", newStatus)
	}

	current, err := s.Store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(current.Status, newStatus) {
		return nil, fault.Newf(fault.KindInvalidArgument, "cannot transition order from %s to %s", current.Status, newStatus)
	}

	updated, err := s.Store.UpdateOrderStatus(ctx, orderID, newStatus, trackingNumber)
	if err != nil {
		return nil, err
	}

	logger.Info("order status updated",
		zap.String("from", string(current.Status)),
		zap.String("to", string(newStatus)))

	if s.Notifier != nil {
		s.Notifier.OrderStatusChanged(ctx, updated)
	}
	return updated, nil
}
