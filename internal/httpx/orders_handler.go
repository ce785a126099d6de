package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dimasfh/storefront/internal/fault"
	"github.com/dimasfh/storefront/internal/metrics"
	"github.com/dimasfh/storefront/internal/orders"
	"github.com/dimasfh/storefront/internal/redisx"
	"github.com/dimasfh/storefront/internal/settlement"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type Settler interface {
	Settle(ctx context.Context, paymentIntentID string, draft settlement.Draft) (string, error)
}

// OrderReader is the read-only slice of the store the public API uses.
type OrderReader interface {
	GetOrder(ctx context.Context, id string) (*orders.Order, error)
	ListProducts(ctx context.Context) ([]orders.Product, error)
}

type OrdersHandler struct {
	Settler Settler
	Store   OrderReader
	Redis   *redis.Client
	Metrics *metrics.Metrics
}

type settleReq struct {
	PaymentIntentID string           `json:"payment_intent_id"`
	Draft           settlement.Draft `json:"order"`
}

type settleResp struct {
	OrderID string `json:"order_id"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders/settle", h.settle)
	r.Get("/orders/{id}", h.getOrder)
	r.Get("/products", h.listProducts)
}

func (h *OrdersHandler) settle(w http.ResponseWriter, r *http.Request) {
	var req settleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fault.New(fault.KindInvalidArgument, "invalid json"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID, err := h.Settler.Settle(ctx, req.PaymentIntentID, req.Draft)
	if err != nil {
		h.countSettlement("failure")
		writeError(w, r, err)
		return
	}
	h.countSettlement("success")
	writeJSON(w, http.StatusCreated, settleResp{OrderID: orderID})
}

func (h *OrdersHandler) countSettlement(outcome string) {
	if h.Metrics != nil {
		h.Metrics.SettlementsTotal.WithLabelValues(outcome).Inc()
	}
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeError(w, r, fault.New(fault.KindInvalidArgument, "missing order id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// status cache first, store as fallback
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	o, err := h.Store.GetOrder(ctx, orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	body := map[string]any{"status": o.Status}
	if o.TrackingNumber != "" {
		body["tracking_number"] = o.TrackingNumber
	}
	b, _ := json.Marshal(body)
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, key, b, redisx.TTLStatusCache).Err()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *OrdersHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Store.ListProducts(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}
