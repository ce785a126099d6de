// Package analytics produces revenue summaries over confirmed orders.
// Read-only; the caller gates access to it.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/dimasfh/storefront/internal/fault"
	"github.com/dimasfh/storefront/internal/orders"
)

const topProductLimit = 10

// OrderSource yields confirmed orders created within a date range,
// bounds inclusive.
type OrderSource interface {
	ConfirmedOrdersBetween(ctx context.Context, start, end time.Time) ([]orders.Order, error)
}

type ProductSales struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name,omitempty"`
	QuantitySold int64  `json:"quantity_sold"`
}

type Summary struct {
	TotalRevenueCents      int64          `json:"total_revenue_cents"`
	TotalOrders            int            `json:"total_orders"`
	AverageOrderValueCents int64          `json:"average_order_value_cents"`
	TopProducts            []ProductSales `json:"top_products"`
}

type Service struct {
	Source OrderSource
}

// Summarize scans confirmed orders in [start, end] and aggregates revenue,
// order count, and per-product quantities. TopProducts holds at most ten
// products by descending quantity; ordering between ties is unspecified.
func (s *Service) Summarize(ctx context.Context, start, end time.Time) (*Summary, error) {
	if end.Before(start) {
		return nil, fault.New(fault.KindInvalidArgument, "end date is before start date")
	}

	matched, err := s.Source.ConfirmedOrdersBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	sum := &Summary{TopProducts: []ProductSales{}}
	sold := map[string]*ProductSales{}
	for _, o := range matched {
		sum.TotalRevenueCents += o.TotalCents
		sum.TotalOrders++
		for _, it := range o.Items {
			ps, ok := sold[it.ProductID]
			if !ok {
				ps = &ProductSales{ProductID: it.ProductID, Name: it.Name}
				sold[it.ProductID] = ps
			}
			ps.QuantitySold += int64(it.Qty)
		}
	}

	if sum.TotalOrders > 0 {
		sum.AverageOrderValueCents = sum.TotalRevenueCents / int64(sum.TotalOrders)
	}

	for _, ps := range sold {
		sum.TopProducts = append(sum.TopProducts, *ps)
	}
	sort.Slice(sum.TopProducts, func(i, j int) bool {
		return sum.TopProducts[i].QuantitySold > sum.TopProducts[j].QuantitySold
	})
	if len(sum.TopProducts) > topProductLimit {
		sum.TopProducts = sum.TopProducts[:topProductLimit]
	}
	return sum, nil
}
