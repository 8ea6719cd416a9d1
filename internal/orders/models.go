package orders

import (
	"github.com/shopspring/decimal"
	"time"
)

type PaymentMethod string

const (
	MethodPayAtPickup PaymentMethod = "pay_at_pickup"
	MethodOnline      PaymentMethod = "online"
)

func (m PaymentMethod) Valid() bool {
	return m == MethodPayAtPickup || m == MethodOnline
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// CaptureReceipt is issued once per successful charge.
// AmountCents is the charged amount when known; zero means unknown.
type CaptureReceipt struct {
	CaptureID   string `json:"capture_id"`
	ReceiptURL  string `json:"receipt_url,omitempty"`
	Status      string `json:"status,omitempty"`
	AmountCents int64  `json:"amount_cents,omitempty"`
}

type CartLine struct {
	ItemID string `json:"item_id"`
	Qty    int    `json:"qty"`
}

type PricedLine struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Qty       int             `json:"qty"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Order is only built by NewOrder; treat it as immutable.
type Order struct {
	ID            string
	CustomerName  string
	Phone         string
	Email         string
	EventDate     Date
	PickupTime    string
	Notes         string
	Lines         []PricedLine
	Subtotal      decimal.Decimal
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Receipt       *CaptureReceipt
	ReceivedAt    time.Time
}

func (o Order) CaptureID() string {
	if o.Receipt == nil {
		return ""
	}
	return o.Receipt.CaptureID
}

// OrderInput is the unvalidated shape collected from a client or a session cart.
type OrderInput struct {
	CustomerName  string
	Phone         string
	Email         string
	EventDate     string
	PickupTime    string
	Notes         string
	Lines         []PricedLine
	Subtotal      *decimal.Decimal
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Receipt       *CaptureReceipt
}
