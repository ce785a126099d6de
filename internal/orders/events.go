package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderConfirmed     = "OrderConfirmed"
	EventOrderStatusChanged = "OrderStatusChanged"
)

// All order lifecycle events share one topic, partitioned by order id so a
// single order's events keep their relative ordering.
const TopicOrderEvents = "storefront.order.events"

func PartitionKey(orderID string) []byte { return []byte(orderID) }

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type OrderConfirmedPayload struct {
	OrderID    string     `json:"order_id"`
	CustomerID string     `json:"customer_id"`
	Email      string     `json:"email,omitempty"`
	Items      []LineItem `json:"items"`
	TotalCents int64      `json:"total_cents"`
	Currency   string     `json:"currency"`
}

type OrderStatusChangedPayload struct {
	OrderID        string `json:"order_id"`
	Email          string `json:"email,omitempty"`
	Status         Status `json:"status"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}
