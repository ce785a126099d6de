package notify

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dimasfh/storefront/internal/kafkax"
	"github.com/dimasfh/storefront/internal/orders"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingMailer struct {
	confirmations []orders.OrderConfirmedPayload
	updates       []orders.OrderStatusChangedPayload
}

func (m *recordingMailer) SendOrderConfirmation(_ context.Context, p orders.OrderConfirmedPayload) error {
	m.confirmations = append(m.confirmations, p)
	return nil
}

func (m *recordingMailer) SendStatusUpdate(_ context.Context, p orders.OrderStatusChangedPayload) error {
	m.updates = append(m.updates, p)
	return nil
}

func testWorker(t *testing.T) (*Worker, *recordingMailer) {
	t.Helper()
	mr := miniredis.RunT(t)
	mailer := &recordingMailer{}
	return &Worker{
		Redis:  redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		Mailer: mailer,
		Log:    zap.NewNop(),
	}, mailer
}

func envelope(eventID, eventType string, payload any) kafkago.Message {
	ev := orders.Envelope{
		EventID:       eventID,
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      "test",
		CorrelationID: "order-1",
		Payload:       kafkax.MustMarshal(payload),
	}
	return kafkago.Message{Key: orders.PartitionKey("order-1"), Value: kafkax.MustMarshal(ev)}
}

func TestHandleOrderEvent_Confirmation(t *testing.T) {
	w, mailer := testWorker(t)

	msg := envelope("ev-1", orders.EventOrderConfirmed, orders.OrderConfirmedPayload{
		OrderID:    "order-1",
		Email:      "buyer@example.com",
		TotalCents: 1999,
	})
	require.NoError(t, w.HandleOrderEvent(context.Background(), msg))

	require.Len(t, mailer.confirmations, 1)
	assert.Equal(t, "order-1", mailer.confirmations[0].OrderID)
	assert.Equal(t, "buyer@example.com", mailer.confirmations[0].Email)
}

func TestHandleOrderEvent_StatusUpdate(t *testing.T) {
	w, mailer := testWorker(t)

	msg := envelope("ev-2", orders.EventOrderStatusChanged, orders.OrderStatusChangedPayload{
		OrderID:        "order-1",
		Status:         orders.StatusShipped,
		TrackingNumber: "TRK-5",
	})
	require.NoError(t, w.HandleOrderEvent(context.Background(), msg))

	require.Len(t, mailer.updates, 1)
	assert.Equal(t, orders.StatusShipped, mailer.updates[0].Status)
	assert.Equal(t, "TRK-5", mailer.updates[0].TrackingNumber)
}

func TestHandleOrderEvent_DedupsRedelivery(t *testing.T) {
	w, mailer := testWorker(t)

	msg := envelope("ev-dup", orders.EventOrderConfirmed, orders.OrderConfirmedPayload{OrderID: "order-1"})
	require.NoError(t, w.HandleOrderEvent(context.Background(), msg))
	require.NoError(t, w.HandleOrderEvent(context.Background(), msg))

	assert.Len(t, mailer.confirmations, 1, "redelivered event must mail once")
}

func TestHandleOrderEvent_IgnoresUnknownAndMalformed(t *testing.T) {
	w, mailer := testWorker(t)

	require.NoError(t, w.HandleOrderEvent(context.Background(),
		envelope("ev-3", "SomethingElse", map[string]string{"x": "y"})))
	require.NoError(t, w.HandleOrderEvent(context.Background(),
		kafkago.Message{Value: []byte("not json")}))

	assert.Empty(t, mailer.confirmations)
	assert.Empty(t, mailer.updates)
}
