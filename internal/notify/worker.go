package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dimasfh/storefront/internal/kafkax"
	"github.com/dimasfh/storefront/internal/orders"
	"github.com/dimasfh/storefront/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Worker consumes order events and hands them to the mailer. Installed as
// the consumer handler in cmd/notifier.
type Worker struct {
	Redis  *redis.Client
	Mailer Mailer
	Log    *zap.Logger
}

func (w *Worker) HandleOrderEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		// malformed message: log and commit, retrying cannot help
		w.Log.Warn("dropping undecodable event", zap.Error(err))
		return nil
	}

	// dedup by event id so redelivered events do not mail twice
	dkey := fmt.Sprintf(redisx.KeyEventDedup, env.EventID)
	if seen, _ := redisx.Exists(ctx, w.Redis, dkey); seen {
		return nil
	}

	logger := w.Log.With(
		zap.String("event_id", env.EventID),
		zap.String("event_type", env.EventType),
		zap.String("order_id", env.CorrelationID))

	switch env.EventType {
	case orders.EventOrderConfirmed:
		p, err := kafkax.UnwrapPayload[orders.OrderConfirmedPayload](env.Payload)
		if err != nil {
			logger.Warn("dropping event with bad payload", zap.Error(err))
			return nil
		}
		if err := w.Mailer.SendOrderConfirmation(ctx, p); err != nil {
			return err
		}
	case orders.EventOrderStatusChanged:
		p, err := kafkax.UnwrapPayload[orders.OrderStatusChangedPayload](env.Payload)
		if err != nil {
			logger.Warn("dropping event with bad payload", zap.Error(err))
			return nil
		}
		if err := w.Mailer.SendStatusUpdate(ctx, p); err != nil {
			return err
		}
	default:
		logger.Debug("ignoring event type")
		return nil
	}

	_ = w.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	logger.Info("notification delivered")
	return nil
}
