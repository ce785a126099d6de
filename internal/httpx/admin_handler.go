package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dimasfh/storefront/internal/analytics"
	"github.com/dimasfh/storefront/internal/authz"
	"github.com/dimasfh/storefront/internal/fault"
	"github.com/dimasfh/storefront/internal/orders"
	"github.com/go-chi/chi/v5"
)

type StatusUpdater interface {
	UpdateStatus(ctx context.Context, orderID string, newStatus orders.Status, trackingNumber string) (*orders.Order, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, start, end time.Time) (*analytics.Summary, error)
}

// AdminHandler serves the privileged surface: status transitions and
// analytics. Every route is gated by the admin capability check.
type AdminHandler struct {
	Orders    StatusUpdater
	Analytics Summarizer
	Authz     authz.Checker
}

type updateStatusReq struct {
	Status         orders.Status `json:"status"`
	TrackingNumber string        `json:"tracking_number"`
}

func (h *AdminHandler) Register(r *chi.Mux) {
	r.Route("/admin", func(ar chi.Router) {
		ar.Use(RequireAdmin(h.Authz))
		ar.Patch("/orders/{id}/status", h.updateStatus)
		ar.Get("/analytics", h.analytics)
	})
}

func (h *AdminHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fault.New(fault.KindInvalidArgument, "invalid json"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	updated, err := h.Orders.UpdateStatus(ctx, orderID, req.Status, req.TrackingNumber)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) analytics(w http.ResponseWriter, r *http.Request) {
	start, err := parseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, r, fault.New(fault.KindInvalidArgument, "start must be RFC3339 or YYYY-MM-DD"))
		return
	}
	end, err := parseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, r, fault.New(fault.KindInvalidArgument, "end must be RFC3339 or YYYY-MM-DD"))
		return
	}
	// a date-only end bound means "through that whole day"
	if end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sum, err := h.Analytics.Summarize(ctx, start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
