package orders

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"strings"
)

// NewOrder validates in against the payment policy and builds the Order that the
// formatter and relay accept. It is the only constructor of Order.
func NewOrder(in OrderInput, p Policy) (Order, error) {
	o := Order{
		CustomerName: strings.TrimSpace(in.CustomerName),
		Phone:        strings.TrimSpace(in.Phone),
		Email:        strings.TrimSpace(in.Email),
		PickupTime:   strings.TrimSpace(in.PickupTime),
		Notes:        strings.TrimSpace(in.Notes),
	}

	if o.CustomerName == "" {
		return Order{}, invalid("customer_name", "Please enter a name.")
	}
	if o.Phone == "" {
		return Order{}, invalid("phone", "Please enter a phone number.")
	}
	if strings.TrimSpace(in.EventDate) == "" {
		return Order{}, invalid("event_date", "Please select a date.")
	}
	d, err := ParseDate(in.EventDate)
	if err != nil {
		return Order{}, invalid("event_date", "Event date must be formatted YYYY-MM-DD.")
	}
	o.EventDate = d
	if o.PickupTime == "" {
		return Order{}, invalid("pickup_time", "Please enter a pickup time (or time window).")
	}
	if len(in.Lines) == 0 {
		return Order{}, invalid("lines", "Your cart is empty.")
	}

	lines, sub, err := checkLines(in.Lines)
	if err != nil {
		return Order{}, err
	}
	if in.Subtotal != nil && !in.Subtotal.Round(2).Equal(sub.Round(2)) {
		return Order{}, invalid("subtotal", fmt.Sprintf("Subtotal %s does not match line totals %s.", in.Subtotal.StringFixed(2), sub.StringFixed(2)))
	}
	o.Lines = lines
	o.Subtotal = sub

	if d.Before(p.Today()) {
		return Order{}, invalid("event_date", "Event date is in the past.")
	}

	if in.Receipt != nil {
		r := *in.Receipt
		if strings.TrimSpace(r.CaptureID) == "" {
			return Order{}, invalid("receipt", "Capture receipt is missing its id.")
		}
		if r.AmountCents > 0 && r.AmountCents != AmountCents(sub) {
			return Order{}, invalid("subtotal", fmt.Sprintf("Order total %s does not match the captured payment of %s.",
				sub.StringFixed(2), decimal.New(r.AmountCents, -2).StringFixed(2)))
		}
		o.Receipt = &r
	}

	o.PaymentMethod = in.PaymentMethod
	if o.PaymentMethod == "" {
		o.PaymentMethod = MethodPayAtPickup
		if o.Receipt != nil {
			o.PaymentMethod = MethodOnline
		}
	}
	if !o.PaymentMethod.Valid() {
		return Order{}, invalid("payment_method", fmt.Sprintf("Unknown payment method %q.", in.PaymentMethod))
	}
	if err := p.CheckPayment(d, o.PaymentMethod, o.Receipt); err != nil {
		return Order{}, err
	}
	if o.PaymentMethod == MethodPayAtPickup && o.Receipt != nil {
		return Order{}, invalid("payment_method", "A captured payment cannot be paid at pickup.")
	}

	o.PaymentStatus = in.PaymentStatus
	if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentUnpaid
		if o.Receipt != nil {
			o.PaymentStatus = PaymentPaid
		}
	}
	switch o.PaymentStatus {
	case PaymentPaid:
		if o.Receipt == nil {
			return Order{}, invalid("payment_status", "Paid orders need a capture receipt.")
		}
	case PaymentUnpaid:
		if o.Receipt != nil {
			return Order{}, invalid("payment_status", "Order has a capture receipt but is marked unpaid.")
		}
	default:
		return Order{}, invalid("payment_status", fmt.Sprintf("Unknown payment status %q.", in.PaymentStatus))
	}

	o.ID = uuid.NewString()
	o.ReceivedAt = p.now().UTC()
	return o, nil
}

func checkLines(in []PricedLine) ([]PricedLine, decimal.Decimal, error) {
	out := make([]PricedLine, 0, len(in))
	sum := decimal.Zero
	for i, l := range in {
		field := fmt.Sprintf("lines[%d]", i)
		l.Name = strings.TrimSpace(l.Name)
		if l.Name == "" {
			return nil, decimal.Zero, invalid(field, "Line is missing an item name.")
		}
		if l.Qty < 1 {
			return nil, decimal.Zero, invalid(field, fmt.Sprintf("Quantity for %s must be at least 1.", l.Name))
		}
		if l.UnitPrice.IsNegative() {
			return nil, decimal.Zero, invalid(field, fmt.Sprintf("Price for %s cannot be negative.", l.Name))
		}
		// clients may send float-rendered totals; compare to the cent, keep the exact value
		want := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
		if !l.LineTotal.Round(2).Equal(want.Round(2)) {
			return nil, decimal.Zero, invalid(field, fmt.Sprintf("Line total for %s should be %s.", l.Name, want.StringFixed(2)))
		}
		l.LineTotal = want
		sum = sum.Add(want)
		out = append(out, l)
	}
	return out, sum, nil
}
