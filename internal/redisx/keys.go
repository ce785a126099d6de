package redisx

import "time"

const (
	// Settlement fast-path: idem:settle:{payment_intent_id} -> order_id.
	// The unique index on orders.payment_intent_id stays the source of truth.
	KeySettledIntent = "idem:settle:%s"

	// Order status cache: order_status:{order_id} -> {"status":"...","tracking_number":"..."}
	KeyOrderStatus = "order_status:%s"

	// Notifier event dedup: dedup:notifier:{event_id}
	KeyEventDedup = "dedup:notifier:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLStatusCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
)
