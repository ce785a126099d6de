package payments

import (
	"context"

	"github.com/dimasfh/storefront/internal/fault"
	"github.com/dimasfh/storefront/internal/logging"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const DefaultCurrency = "usd"

var centsPerUnit = decimal.NewFromInt(100)

// MinorUnits converts a decimal currency amount to the gateway's integer
// minor-unit representation, rounding to the nearest cent.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(centsPerUnit).Round(0).IntPart()
}

type Service struct {
	Gateway Gateway
}

// CreateIntent submits a new payment intent and returns the client secret
// the payment UI needs to complete the charge. Gateway failures are logged
// with their cause but surfaced to the caller as a generic error.
func (s *Service) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) (string, error) {
	if amount.Sign() <= 0 {
		return "", fault.New(fault.KindInvalidArgument, "amount must be positive")
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	intent, err := s.Gateway.CreateIntent(ctx, MinorUnits(amount), currency, metadata)
	if err != nil {
		logging.FromContext(ctx).Error("payment intent creation failed",
			zap.String("currency", currency),
			zap.Error(err))
		return "", fault.New(fault.KindGatewayUnavailable, "unable to create payment intent")
	}
	return intent.ClientSecret, nil
}
