package httpx

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningSecret = "whsec_test_secret"

// signPayload builds a Stripe-Signature header the way Stripe does:
// v1 = HMAC-SHA256(secret, "<timestamp>.<payload>").
func signPayload(payload []byte, secret string, ts time.Time) string {
	signed := fmt.Sprintf("%d.%s", ts.Unix(), payload)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signed))
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func webhookRouter() *chi.Mux {
	r := chi.NewMux()
	(&WebhookHandler{SigningSecret: testSigningSecret}).Register(r)
	return r
}

func TestWebhook_ValidSignatureAcked(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(string(payload)))
	req.Header.Set("Stripe-Signature", signPayload(payload, testSigningSecret, time.Now()))
	rec := httptest.NewRecorder()

	webhookRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"received":true}`, rec.Body.String())
}

func TestWebhook_UnhandledTypeStillAcked(t *testing.T) {
	payload := []byte(`{"id":"evt_2","type":"customer.created","data":{"object":{}}}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(string(payload)))
	req.Header.Set("Stripe-Signature", signPayload(payload, testSigningSecret, time.Now()))
	rec := httptest.NewRecorder()

	webhookRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhook_TamperedPayloadRejected(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`)
	header := signPayload(payload, testSigningSecret, time.Now())

	tampered := strings.Replace(string(payload), "pi_1", "pi_2", 1)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(tampered))
	req.Header.Set("Stripe-Signature", header)
	rec := httptest.NewRecorder()

	webhookRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "webhook_signature_invalid")
}

func TestWebhook_MissingSignatureRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	webhookRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
