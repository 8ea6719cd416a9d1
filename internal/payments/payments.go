package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured means processor credentials are missing. It is an operator
	// problem, not a payment failure.
	ErrNotConfigured  = errors.New("payment processor not configured")
	ErrInvalidRequest = errors.New("invalid payment request")
)

type CaptureRequest struct {
	SourceID    string `json:"sourceId"`
	AmountCents int64  `json:"amountCents"`
	BuyerEmail  string `json:"buyerEmail,omitempty"`
}

type Receipt struct {
	PaymentID  string `json:"paymentId"`
	ReceiptURL string `json:"receiptUrl,omitempty"`
	Status     string `json:"status"`
}

// Capturer performs one charge attempt per call.
type Capturer interface {
	Capture(ctx context.Context, req CaptureRequest) (Receipt, error)
}

// ProcessorError is one entry of the processor's structured error list.
type ProcessorError struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail,omitempty"`
	Field    string `json:"field,omitempty"`
}

// Error is returned when the processor answers with a non-success status.
type Error struct {
	HTTPStatus int              `json:"-"`
	Errors     []ProcessorError `json:"errors"`
}

func (e *Error) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("payment failed: processor status %d", e.HTTPStatus)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, pe := range e.Errors {
		s := pe.Code
		if pe.Detail != "" {
			s += ": " + pe.Detail
		}
		parts = append(parts, s)
	}
	return "payment failed: " + strings.Join(parts, "; ")
}

func validate(req CaptureRequest) error {
	if strings.TrimSpace(req.SourceID) == "" {
		return fmt.Errorf("%w: missing payment source", ErrInvalidRequest)
	}
	if req.AmountCents <= 0 {
		return fmt.Errorf("%w: amount must be a positive number of cents, got %d", ErrInvalidRequest, req.AmountCents)
	}
	return nil
}
