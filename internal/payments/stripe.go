package payments

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeGateway implements Gateway against the Stripe API. The client is an
// explicit dependency, not a package-level singleton.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripe(pi), nil
}

func (g *StripeGateway) RetrieveIntent(ctx context.Context, id string) (*Intent, error) {
	pi, err := g.api.PaymentIntents.Get(id, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, err
	}
	return fromStripe(pi), nil
}

func fromStripe(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       normalizeStatus(pi.Status),
		AmountMinor:  pi.Amount,
		Currency:     string(pi.Currency),
		Metadata:     pi.Metadata,
	}
}

func normalizeStatus(s stripe.PaymentIntentStatus) IntentStatus {
	switch s {
	case stripe.PaymentIntentStatusSucceeded:
		return IntentSucceeded
	case stripe.PaymentIntentStatusCanceled:
		return IntentFailed
	default:
		// requires_payment_method, requires_confirmation, requires_action,
		// requires_capture, processing: the charge is still in flight.
		return IntentRequiresPayment
	}
}
