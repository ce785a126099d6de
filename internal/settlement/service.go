// Package settlement converts a succeeded payment into a persisted order
// plus an inventory adjustment, as one atomic unit.
package settlement

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dimasfh/storefront/internal/fault"
	"github.com/dimasfh/storefront/internal/logging"
	"github.com/dimasfh/storefront/internal/orders"
	"github.com/dimasfh/storefront/internal/payments"
	"github.com/dimasfh/storefront/internal/redisx"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Batcher is the transactional slice of the store: insert the order and
// apply every inventory delta, all-or-nothing.
type Batcher interface {
	SettleBatch(ctx context.Context, o *orders.Order, deltas []orders.InventoryDelta) (string, error)
	OrderIDByPaymentIntent(ctx context.Context, intentID string) (string, error)
}

// Notifier receives the finalized order. Best-effort: it must never block
// or fail the settlement result.
type Notifier interface {
	OrderConfirmed(ctx context.Context, o *orders.Order)
}

// Draft is the client-proposed order. Prices and quantities are validated
// and the total recomputed; nothing monetary is trusted from the client.
type Draft struct {
	CustomerID string            `json:"customer_id"`
	Email      string            `json:"email"`
	Items      []orders.LineItem `json:"items"`
}

type Service struct {
	Gateway  payments.Gateway
	Store    Batcher
	Redis    *redis.Client
	Notifier Notifier
}

// Settle re-verifies the payment with the gateway, then writes the order
// and decrements inventory in one batch. The client-supplied success flag
// is never trusted; the gateway is the source of truth.
func (s *Service) Settle(ctx context.Context, paymentIntentID string, draft Draft) (string, error) {
	logger := logging.FromContext(ctx).With(zap.String("payment_intent_id", paymentIntentID))

	if err := validateDraft(paymentIntentID, draft); err != nil {
		return "", err
	}

	// fast path: this payment was already settled
	idemKey := fmt.Sprintf(redisx.KeySettledIntent, paymentIntentID)
	if s.Redis != nil {
		if id, err := s.Redis.Get(ctx, idemKey).Result(); err == nil && id != "" {
			logger.Info("settlement replay served from cache", zap.String("order_id", id))
			return id, nil
		}
	}

	intent, err := s.Gateway.RetrieveIntent(ctx, paymentIntentID)
	if err != nil {
		logger.Error("intent lookup failed", zap.Error(err))
		return "", fault.New(fault.KindGatewayUnavailable, "unable to verify payment")
	}
	if intent.Status != payments.IntentSucceeded {
		return "", fault.Newf(fault.KindPaymentNotConfirmed, "payment intent is %s, not succeeded", intent.Status)
	}

	total := orders.TotalOf(draft.Items)
	if intent.AmountMinor != total {
		return "", fault.Newf(fault.KindInvalidArgument,
			"payment amount %d does not match order total %d", intent.AmountMinor, total)
	}

	now := time.Now().UTC()
	order := &orders.Order{
		ID:              uuid.NewString(),
		CustomerID:      draft.CustomerID,
		Email:           draft.Email,
		Items:           draft.Items,
		TotalCents:      total,
		Currency:        intent.Currency,
		PaymentIntentID: paymentIntentID,
		Status:          orders.StatusConfirmed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	deltas := make([]orders.InventoryDelta, 0, len(draft.Items))
	for _, it := range draft.Items {
		deltas = append(deltas, orders.InventoryDelta{ProductID: it.ProductID, Delta: -it.Qty})
	}

	orderID, err := s.Store.SettleBatch(ctx, order, deltas)
	if fault.KindOf(err) == fault.KindConflict {
		// lost the race with another settlement of the same payment;
		// resolve to the order that won
		existing, lookupErr := s.Store.OrderIDByPaymentIntent(ctx, paymentIntentID)
		if lookupErr != nil {
			return "", lookupErr
		}
		logger.Info("settlement replay resolved from store", zap.String("order_id", existing))
		s.cache(ctx, idemKey, existing)
		return existing, nil
	}
	if err != nil {
		return "", err
	}

	s.cache(ctx, idemKey, orderID)
	if s.Redis != nil {
		body, _ := json.Marshal(map[string]string{"status": string(order.Status)})
		_ = s.Redis.Set(ctx, fmt.Sprintf(redisx.KeyOrderStatus, orderID), body, redisx.TTLStatusCache).Err()
	}

	logger.Info("order settled",
		zap.String("order_id", orderID),
		zap.Int64("total_cents", total),
		zap.Int("items", len(order.Items)))

	if s.Notifier != nil {
		s.Notifier.OrderConfirmed(ctx, order)
	}
	return orderID, nil
}

func (s *Service) cache(ctx context.Context, key, orderID string) {
	if s.Redis == nil {
		return
	}
	_ = s.Redis.Set(ctx, key, orderID, redisx.TTLIdempotency).Err()
}

func validateDraft(paymentIntentID string, draft Draft) error {
	if paymentIntentID == "" {
		return fault.New(fault.KindInvalidArgument, "payment intent id is required")
	}
	if len(draft.Items) == 0 {
		return fault.New(fault.KindInvalidArgument, "order must contain at least one item")
	}
	for i, it := range draft.Items {
		if it.ProductID == "" {
			return fault.Newf(fault.KindInvalidArgument, "item %d: product id is required", i)
		}
		if it.Qty <= 0 {
			return fault.Newf(fault.KindInvalidArgument, "item %d: quantity must be positive", i)
		}
		if it.UnitPriceCents < 0 {
			return fault.Newf(fault.KindInvalidArgument, "item %d: unit price cannot be negative", i)
		}
	}
	return nil
}
