package orders

import (
	"encoding/json"
	"time"
)

const (
	EventPaymentCaptured = "PaymentCaptured"
	EventOrderSubmitted  = "OrderSubmitted"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // capture_id, else order_id
	Payload       json.RawMessage `json:"payload"`
}

type PaymentCapturedPayload struct {
	CaptureID   string `json:"capture_id"`
	AmountCents int64  `json:"amount_cents"`
	ReceiptURL  string `json:"receipt_url,omitempty"`
	SessionID   string `json:"session_id,omitempty"`
}

type OrderSubmittedPayload struct {
	OrderID     string `json:"order_id"`
	CaptureID   string `json:"capture_id,omitempty"`
	EventDate   string `json:"event_date"`
	PickupTime  string `json:"pickup_time"`
	SubtotalUSD string `json:"subtotal"`
	Outcome     string `json:"outcome"` // delivered | logged
}
