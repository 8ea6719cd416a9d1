package orders

import (
	"fmt"
	"strings"
	"time"
)

const (
	TicketTitle    = "NEW BBQ ORDER"
	PreorderBanner = "*** PRE-ORDER – DO NOT PREP TODAY ***"
)

// FormatTicket renders o as the plain-text ticket sent to the vendor. Line order is
// fixed; fax readers and people parse it top to bottom. The output depends only on o
// and today.
func FormatTicket(o Order, today Date) string {
	preorder := o.EventDate != today

	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line(TicketTitle)
	if preorder {
		line(PreorderBanner)
	}
	line("EVENT DATE: " + o.EventDate.String())
	line("PICKUP TIME: " + o.PickupTime)
	line("")

	line("Customer Name: " + o.CustomerName)
	line("Phone: " + o.Phone)
	if o.Email != "" {
		line("Customer Email: " + o.Email)
	}
	line("")

	line("ORDER:")
	for _, l := range o.Lines {
		line(fmt.Sprintf("%d x %s – $%s  (Line: $%s)", l.Qty, l.Name, l.UnitPrice.StringFixed(2), l.LineTotal.StringFixed(2)))
	}
	line("")

	line("SUBTOTAL: $" + o.Subtotal.StringFixed(2))
	line("PAYMENT STATUS: " + paymentLine(o, preorder))
	if o.Receipt != nil && o.Receipt.ReceiptURL != "" {
		line("Receipt: " + o.Receipt.ReceiptURL)
	}
	line("")

	line("NOTES:")
	if notes := strings.TrimSpace(o.Notes); notes != "" {
		line(notes)
	} else {
		line("(none)")
	}
	line("")

	line("—")
	b.WriteString("Received: " + o.ReceivedAt.UTC().Format(time.RFC3339))
	return b.String()
}

func paymentLine(o Order, preorder bool) string {
	if o.PaymentStatus == PaymentPaid {
		if preorder {
			return "PAID ONLINE (PRE-ORDER)"
		}
		return "PAID ONLINE (SAME DAY)"
	}
	return "PAY AT PICKUP (SAME DAY)"
}

// Subject is the relay subject line for o.
func Subject(o Order) string {
	return fmt.Sprintf("%s – %s %s", TicketTitle, o.EventDate, o.PickupTime)
}
