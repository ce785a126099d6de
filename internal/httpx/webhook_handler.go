package httpx

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/dimasfh/storefront/internal/fault"
	"github.com/dimasfh/storefront/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"
)

const maxWebhookBody = 64 << 10

// WebhookHandler receives gateway-signed events. Signature verification
// uses the shared endpoint secret; valid events are acknowledged whether or
// not we act on them, so the gateway stops redelivering.
type WebhookHandler struct {
	SigningSecret string
}

func (h *WebhookHandler) Register(r *chi.Mux) {
	r.Post("/webhooks/stripe", h.handleStripe)
}

func (h *WebhookHandler) handleStripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, r, fault.New(fault.KindInvalidArgument, "unreadable body"))
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.SigningSecret)
	if err != nil {
		writeError(w, r, fault.Wrap(fault.KindWebhookSignatureInvalid, "webhook signature verification failed", err))
		return
	}

	logger := logging.FromContext(r.Context()).With(zap.String("event_type", string(event.Type)))
	switch string(event.Type) {
	case "payment_intent.succeeded":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err == nil {
			logger.Info("payment intent succeeded", zap.String("payment_intent_id", pi.ID))
		}
	case "payment_intent.payment_failed":
		logger.Info("payment intent failed")
	default:
		logger.Debug("unhandled event type")
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
