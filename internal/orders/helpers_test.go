package orders

import (
	"testing"
	"time"

	"github.com/ariefcatur/go-bbq-preorder/internal/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	today    Date = "2026-10-19"
	tomorrow Date = "2026-10-20"
)

var fixedNow = time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)

func testPolicy() Policy {
	return Policy{Now: func() time.Time { return fixedNow }, Location: time.UTC}
}

func halfChickenLine(qty int) PricedLine {
	price := decimal.RequireFromString("15.50")
	return PricedLine{
		ID:        "dinner_half_chicken",
		Name:      "Half Chicken Dinner",
		UnitPrice: price,
		Qty:       qty,
		LineTotal: price.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func validInput(date Date) OrderInput {
	return OrderInput{
		CustomerName: "Pat Doe",
		Phone:        "555-0100",
		EventDate:    date.String(),
		PickupTime:   "5:30 PM",
		Lines:        []PricedLine{halfChickenLine(1)},
	}
}

func paidInput(date Date) OrderInput {
	in := validInput(date)
	in.PaymentMethod = MethodOnline
	in.PaymentStatus = PaymentPaid
	in.Receipt = &CaptureReceipt{CaptureID: "cap_123", ReceiptURL: "https://squareup.com/receipt/preview/cap_123"}
	return in
}

func mustOrder(t *testing.T, in OrderInput) Order {
	t.Helper()
	o, err := NewOrder(in, testPolicy())
	require.NoError(t, err)
	return o
}

func menu() *catalog.Catalog { return catalog.Default() }
