package payments

import "context"

// IntentStatus collapses the gateway's intent lifecycle into the three
// states the settlement flow cares about.
type IntentStatus string

const (
	IntentRequiresPayment IntentStatus = "requires_payment"
	IntentSucceeded       IntentStatus = "succeeded"
	IntentFailed          IntentStatus = "failed"
)

// Intent is our view of a gateway payment intent. The gateway owns the
// object; orders hold only the ID.
type Intent struct {
	ID           string
	ClientSecret string
	Status       IntentStatus
	AmountMinor  int64
	Currency     string
	Metadata     map[string]string
}

// Gateway is the payment processor boundary. The Stripe implementation is
// the production one; tests substitute fakes.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
}
