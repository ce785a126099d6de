package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/dimasfh/storefront/internal/fault"
	"github.com/dimasfh/storefront/internal/logging"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error   fault.Kind `json:"error"`
	Message string     `json:"message"`
}

// writeError maps a categorized failure to an HTTP status. Only the kind
// and caller-safe message go on the wire; the full chain is logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := fault.KindOf(err)
	logging.FromContext(r.Context()).Warn("request failed",
		zap.String("kind", string(kind)),
		zap.Error(err))
	writeJSON(w, statusFor(kind), errorBody{Error: kind, Message: fault.MessageOf(err)})
}

func statusFor(kind fault.Kind) int {
	switch kind {
	case fault.KindInvalidArgument:
		return http.StatusBadRequest
	case fault.KindWebhookSignatureInvalid:
		return http.StatusBadRequest
	case fault.KindPermissionDenied:
		return http.StatusForbidden
	case fault.KindNotFound:
		return http.StatusNotFound
	case fault.KindPaymentNotConfirmed:
		return http.StatusPaymentRequired
	case fault.KindConflict:
		return http.StatusConflict
	case fault.KindGatewayUnavailable:
		return http.StatusBadGateway
	case fault.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
