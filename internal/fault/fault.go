package fault

import (
	"errors"
	"fmt"
)

// Kind is a stable failure category safe to expose to callers.
type Kind string

const (
	KindPaymentNotConfirmed     Kind = "payment_not_confirmed"
	KindPermissionDenied        Kind = "permission_denied"
	KindInvalidArgument         Kind = "invalid_argument"
	KindGatewayUnavailable      Kind = "gateway_unavailable"
	KindStoreUnavailable        Kind = "store_unavailable"
	KindWebhookSignatureInvalid Kind = "webhook_signature_invalid"
	KindNotFound                Kind = "not_found"
	KindConflict                Kind = "conflict"
	KindInternal                Kind = "internal"
)

// Error carries a categorized failure. Message is safe for untrusted callers;
// the wrapped cause is for server-side logs only.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.cause.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf extracts the category from any error in the chain.
// Unknown errors map to KindInternal.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-safe message, hiding causes of unknown errors.
func MessageOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return "internal error"
}
