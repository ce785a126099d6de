package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dimasfh/storefront/internal/analytics"
	"github.com/dimasfh/storefront/internal/authz"
	"github.com/dimasfh/storefront/internal/orders"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUpdater struct {
	calls int
	order *orders.Order
	err   error
}

func (f *fakeUpdater) UpdateStatus(_ context.Context, _ string, status orders.Status, tracking string) (*orders.Order, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	o := *f.order
	o.Status = status
	o.TrackingNumber = tracking
	return &o, nil
}

type fakeSummarizer struct {
	summary *analytics.Summary
	start   time.Time
	end     time.Time
}

func (f *fakeSummarizer) Summarize(_ context.Context, start, end time.Time) (*analytics.Summary, error) {
	f.start, f.end = start, end
	return f.summary, nil
}

func adminRouter(u *fakeUpdater, s *fakeSummarizer) *chi.Mux {
	r := chi.NewMux()
	h := &AdminHandler{
		Orders:    u,
		Analytics: s,
		Authz:     authz.CheckerFunc(func(token string) bool { return token == "admin-token" }),
	}
	h.Register(r)
	return r
}

func TestUpdateStatus_WithoutAdminToken(t *testing.T) {
	u := &fakeUpdater{order: &orders.Order{ID: "o1", Status: orders.StatusConfirmed}}
	r := adminRouter(u, &fakeSummarizer{})

	req := httptest.NewRequest(http.MethodPatch, "/admin/orders/o1/status",
		strings.NewReader(`{"status":"shipped"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "permission_denied", body["error"])
	assert.Zero(t, u.calls, "order must be left unmodified")
}

func TestUpdateStatus_WithAdminToken(t *testing.T) {
	u := &fakeUpdater{order: &orders.Order{ID: "o1", Status: orders.StatusConfirmed}}
	r := adminRouter(u, &fakeSummarizer{})

	req := httptest.NewRequest(http.MethodPatch, "/admin/orders/o1/status",
		strings.NewReader(`{"status":"shipped","tracking_number":"TRK-9"}`))
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got orders.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, orders.StatusShipped, got.Status)
	assert.Equal(t, "TRK-9", got.TrackingNumber)
	assert.Equal(t, 1, u.calls)
}

func TestAnalytics_RequiresAdmin(t *testing.T) {
	r := adminRouter(&fakeUpdater{}, &fakeSummarizer{summary: &analytics.Summary{}})

	req := httptest.NewRequest(http.MethodGet, "/admin/analytics?start=2026-01-01&end=2026-01-31", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAnalytics_DateRange(t *testing.T) {
	s := &fakeSummarizer{summary: &analytics.Summary{
		TotalRevenueCents: 3500,
		TotalOrders:       2,
		TopProducts:       []analytics.ProductSales{},
	}}
	r := adminRouter(&fakeUpdater{}, s)

	req := httptest.NewRequest(http.MethodGet, "/admin/analytics?start=2026-01-01&end=2026-01-31", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 2026, s.start.Year())
	// a date-only end bound covers the whole day
	assert.Equal(t, 31, s.end.Day())
	assert.Equal(t, 23, s.end.Hour())

	var sum analytics.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, int64(3500), sum.TotalRevenueCents)
}

func TestAnalytics_BadDates(t *testing.T) {
	r := adminRouter(&fakeUpdater{}, &fakeSummarizer{})

	req := httptest.NewRequest(http.MethodGet, "/admin/analytics?start=yesterday&end=2026-01-31", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
