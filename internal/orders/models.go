package orders

import "time"

type LineItem struct {
	ProductID      string `json:"product_id" bson:"product_id"`
	Name           string `json:"name,omitempty" bson:"name,omitempty"`
	Qty            int    `json:"qty" bson:"qty"`
	UnitPriceCents int64  `json:"unit_price_cents" bson:"unit_price_cents"`
}

func (it LineItem) SubtotalCents() int64 {
	return int64(it.Qty) * it.UnitPriceCents
}

type Order struct {
	ID              string     `json:"id" bson:"_id"`
	CustomerID      string     `json:"customer_id" bson:"customer_id"`
	Email           string     `json:"email,omitempty" bson:"email,omitempty"`
	Items           []LineItem `json:"items" bson:"items"`
	TotalCents      int64      `json:"total_cents" bson:"total_cents"`
	Currency        string     `json:"currency" bson:"currency"`
	PaymentIntentID string     `json:"payment_intent_id" bson:"payment_intent_id"`
	Status          Status     `json:"status" bson:"status"`
	TrackingNumber  string     `json:"tracking_number,omitempty" bson:"tracking_number,omitempty"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" bson:"updated_at"`
}

// TotalOf sums line-item subtotals. Order totals are always computed
// server-side, never taken from the client.
func TotalOf(items []LineItem) int64 {
	var total int64
	for _, it := range items {
		total += it.SubtotalCents()
	}
	return total
}

// InventoryDelta is a relative adjustment to a product counter. Settlement
// applies negative deltas so concurrent orders never race on a read value.
type InventoryDelta struct {
	ProductID string
	Delta     int
}

type Product struct {
	ID         string    `json:"id" bson:"_id"`
	SKU        string    `json:"sku" bson:"sku"`
	Name       string    `json:"name" bson:"name"`
	PriceCents int64     `json:"price_cents" bson:"price_cents"`
	Inventory  int       `json:"inventory" bson:"inventory"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}
