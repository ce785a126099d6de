package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dimasfh/storefront/internal/fault"
	"github.com/dimasfh/storefront/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// PaymentsService is the slice of internal/payments the handler uses.
type PaymentsService interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) (string, error)
}

type PaymentsHandler struct {
	Service PaymentsService
	Metrics *metrics.Metrics
}

type createIntentReq struct {
	Amount   json.Number       `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

type createIntentResp struct {
	ClientSecret string `json:"client_secret"`
}

func (h *PaymentsHandler) Register(r *chi.Mux) {
	r.Post("/payments/intent", h.createIntent)
}

func (h *PaymentsHandler) createIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fault.New(fault.KindInvalidArgument, "invalid json"))
		return
	}
	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil {
		writeError(w, r, fault.New(fault.KindInvalidArgument, "amount must be a decimal number"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	secret, err := h.Service.CreateIntent(ctx, amount, req.Currency, req.Metadata)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.IntentsCreatedTotal.Inc()
	}
	writeJSON(w, http.StatusOK, createIntentResp{ClientSecret: secret})
}
