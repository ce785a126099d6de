package notify

import (
	"context"

	"github.com/dimasfh/storefront/internal/orders"
	"go.uber.org/zap"
)

// Mailer sends customer-facing messages. The production implementation is
// pending a provider decision; LogMailer stands in until then.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, p orders.OrderConfirmedPayload) error
	SendStatusUpdate(ctx context.Context, p orders.OrderStatusChangedPayload) error
}

type LogMailer struct {
	Log *zap.Logger
}

func (m *LogMailer) SendOrderConfirmation(_ context.Context, p orders.OrderConfirmedPayload) error {
	m.Log.Info("order confirmation email",
		zap.String("order_id", p.OrderID),
		zap.String("email", p.Email),
		zap.Int64("total_cents", p.TotalCents))
	return nil
}

func (m *LogMailer) SendStatusUpdate(_ context.Context, p orders.OrderStatusChangedPayload) error {
	m.Log.Info("order status email",
		zap.String("order_id", p.OrderID),
		zap.String("email", p.Email),
		zap.String("status", string(p.Status)),
		zap.String("tracking_number", p.TrackingNumber))
	return nil
}
