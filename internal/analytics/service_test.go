package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dimasfh/storefront/internal/fault"
	"github.com/dimasfh/storefront/internal/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	orders []orders.Order
	err    error
}

func (f *fakeSource) ConfirmedOrdersBetween(context.Context, time.Time, time.Time) ([]orders.Order, error) {
	return f.orders, f.err
}

func confirmed(total int64, items ...orders.LineItem) orders.Order {
	return orders.Order{Status: orders.StatusConfirmed, TotalCents: total, Items: items}
}

func TestSummarize_Empty(t *testing.T) {
	svc := &Service{Source: &fakeSource{}}

	sum, err := svc.Summarize(context.Background(), time.Now().Add(-time.Hour), time.Now())

	require.NoError(t, err)
	assert.Zero(t, sum.TotalRevenueCents)
	assert.Zero(t, sum.TotalOrders)
	assert.Zero(t, sum.AverageOrderValueCents, "average defined as 0 with no orders")
	assert.Empty(t, sum.TopProducts)
	assert.NotNil(t, sum.TopProducts, "empty summary serializes as [] not null")
}

func TestSummarize_Aggregates(t *testing.T) {
	src := &fakeSource{orders: []orders.Order{
		confirmed(1000,
			orders.LineItem{ProductID: "A", Qty: 2, UnitPriceCents: 500}),
		confirmed(2500,
			orders.LineItem{ProductID: "A", Qty: 1, UnitPriceCents: 500},
			orders.LineItem{ProductID: "B", Qty: 4, UnitPriceCents: 500}),
	}}
	svc := &Service{Source: src}

	sum, err := svc.Summarize(context.Background(), time.Time{}, time.Now())

	require.NoError(t, err)
	assert.Equal(t, int64(3500), sum.TotalRevenueCents)
	assert.Equal(t, 2, sum.TotalOrders)
	assert.Equal(t, int64(1750), sum.AverageOrderValueCents)
	require.Len(t, sum.TopProducts, 2)
	assert.Equal(t, "B", sum.TopProducts[0].ProductID)
	assert.Equal(t, int64(4), sum.TopProducts[0].QuantitySold)
	assert.Equal(t, "A", sum.TopProducts[1].ProductID)
	assert.Equal(t, int64(3), sum.TopProducts[1].QuantitySold)
}

func TestSummarize_TopProductsCappedAtTen(t *testing.T) {
	var all []orders.Order
	for i := 0; i < 15; i++ {
		all = append(all, confirmed(100, orders.LineItem{
			ProductID: fmt.Sprintf("P%02d", i),
			Qty:       i + 1,
		}))
	}
	svc := &Service{Source: &fakeSource{orders: all}}

	sum, err := svc.Summarize(context.Background(), time.Time{}, time.Now())

	require.NoError(t, err)
	require.Len(t, sum.TopProducts, 10)
	for i := 1; i < len(sum.TopProducts); i++ {
		assert.GreaterOrEqual(t,
			sum.TopProducts[i-1].QuantitySold,
			sum.TopProducts[i].QuantitySold,
			"descending by quantity sold")
	}
	assert.Equal(t, "P14", sum.TopProducts[0].ProductID)
	assert.Equal(t, int64(15), sum.TopProducts[0].QuantitySold)
}

func TestSummarize_InvertedRange(t *testing.T) {
	svc := &Service{Source: &fakeSource{}}

	_, err := svc.Summarize(context.Background(), time.Now(), time.Now().Add(-time.Hour))

	require.Error(t, err)
	assert.Equal(t, fault.KindInvalidArgument, fault.KindOf(err))
}

func TestSummarize_SourceError(t *testing.T) {
	src := &fakeSource{err: fault.New(fault.KindStoreUnavailable, "query confirmed orders failed")}
	svc := &Service{Source: src}

	_, err := svc.Summarize(context.Background(), time.Time{}, time.Now())

	require.Error(t, err)
	assert.Equal(t, fault.KindStoreUnavailable, fault.KindOf(err))
}
