// Package notify delivers customer notifications for order lifecycle
// events. The API process publishes envelopes to Kafka and moves on; the
// notifier process consumes them and sends the actual messages. A broker
// outage therefore never fails a settlement or a status update.
package notify

import (
	"context"
	"time"

	"github.com/dimasfh/storefront/internal/kafkax"
	"github.com/dimasfh/storefront/internal/orders"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

type Dispatcher struct {
	Producer *kafkax.Producer
	Service  string
}

func (d *Dispatcher) OrderConfirmed(ctx context.Context, o *orders.Order) {
	d.publish(ctx, orders.EventOrderConfirmed, o.ID, orders.OrderConfirmedPayload{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Email:      o.Email,
		Items:      o.Items,
		TotalCents: o.TotalCents,
		Currency:   o.Currency,
	})
}

func (d *Dispatcher) OrderStatusChanged(ctx context.Context, o *orders.Order) {
	d.publish(ctx, orders.EventOrderStatusChanged, o.ID, orders.OrderStatusChangedPayload{
		OrderID:        o.ID,
		Email:          o.Email,
		Status:         o.Status,
		TrackingNumber: o.TrackingNumber,
	})
}

func (d *Dispatcher) publish(ctx context.Context, eventType, orderID string, payload any) {
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      d.Service,
		TraceID:       middleware.GetReqID(ctx),
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	d.Producer.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
