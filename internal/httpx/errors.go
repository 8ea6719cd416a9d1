package httpx

import (
	"errors"
	"github.com/ariefcatur/go-bbq-preorder/internal/orders"
	"github.com/ariefcatur/go-bbq-preorder/internal/payments"
	"github.com/ariefcatur/go-bbq-preorder/internal/relay"
	"github.com/ariefcatur/go-bbq-preorder/internal/session"
	"log/slog"
	"net/http"
)

type errorResp struct {
	OK    bool   `json:"ok"`
	Error any    `json:"error"`
	Field string `json:"field,omitempty"`
	Kind  string `json:"kind"`
}

// writeError maps the checkout error taxonomy onto HTTP responses. Validation and
// payment failures go back to the customer verbatim; only unknown errors are logged
// as faults.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	var (
		ve   *orders.ValidationError
		perr *payments.Error
		de   *relay.DeliveryError
	)
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResp{Error: ve.Message, Field: ve.Field, Kind: "validation"})
	case errors.Is(err, orders.ErrUnknownItem):
		writeJSON(w, http.StatusBadRequest, errorResp{Error: err.Error(), Field: "item_id", Kind: "validation"})
	case errors.Is(err, payments.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "Invalid payment request.", Kind: "validation"})
	case errors.Is(err, session.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResp{Error: "Cart not found.", Kind: "not_found"})
	case errors.Is(err, orders.ErrAlreadyCaptured), errors.Is(err, orders.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, errorResp{Error: err.Error(), Kind: "conflict"})
	case errors.Is(err, payments.ErrNotConfigured):
		writeJSON(w, http.StatusServiceUnavailable, errorResp{Error: "Square not configured.", Kind: "configuration"})
	case errors.As(err, &perr):
		writeJSON(w, http.StatusPaymentRequired, errorResp{Error: perr.Errors, Kind: "payment"})
	case errors.As(err, &de):
		writeJSON(w, http.StatusBadGateway, errorResp{Error: "Order could not be delivered. Please try again.", Kind: "delivery"})
	default:
		if log == nil {
			log = slog.Default()
		}
		log.Error("request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "Server error", Kind: "internal"})
	}
}
