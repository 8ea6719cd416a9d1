package orders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTicket_SameDayPayAtPickup(t *testing.T) {
	o := mustOrder(t, validInput(today))
	got := FormatTicket(o, today)

	want := strings.Join([]string{
		"NEW BBQ ORDER",
		"EVENT DATE: 2026-10-19",
		"PICKUP TIME: 5:30 PM",
		"",
		"Customer Name: Pat Doe",
		"Phone: 555-0100",
		"",
		"ORDER:",
		"1 x Half Chicken Dinner – $15.50  (Line: $15.50)",
		"",
		"SUBTOTAL: $15.50",
		"PAYMENT STATUS: PAY AT PICKUP (SAME DAY)",
		"",
		"NOTES:",
		"(none)",
		"",
		"—",
		"Received: 2026-10-19T15:04:05Z",
	}, "\n")
	assert.Equal(t, want, got)
	assert.NotContains(t, got, PreorderBanner)
}

func TestFormatTicket_PreorderPaid(t *testing.T) {
	in := paidInput(tomorrow)
	in.Email = "pat@example.com"
	in.Notes = "Ring the bell"
	o := mustOrder(t, in)
	got := FormatTicket(o, today)

	lines := strings.Split(got, "\n")
	assert.Equal(t, TicketTitle, lines[0])
	assert.Equal(t, PreorderBanner, lines[1])
	assert.Equal(t, "EVENT DATE: 2026-10-20", lines[2])
	assert.Contains(t, lines, "Customer Email: pat@example.com")
	assert.Contains(t, lines, "PAYMENT STATUS: PAID ONLINE (PRE-ORDER)")
	assert.Contains(t, lines, "Receipt: https://squareup.com/receipt/preview/cap_123")
	assert.Contains(t, got, "NOTES:\nRing the bell\n")
}

func TestFormatTicket_SameDayPaid(t *testing.T) {
	in := paidInput(today)
	in.Receipt.ReceiptURL = ""
	got := FormatTicket(mustOrder(t, in), today)

	assert.Contains(t, got, "PAYMENT STATUS: PAID ONLINE (SAME DAY)")
	assert.NotContains(t, got, "Receipt:")
	assert.NotContains(t, got, PreorderBanner)
}

func TestFormatTicket_Deterministic(t *testing.T) {
	in := paidInput(tomorrow)
	in.Lines = append(in.Lines, halfChickenLine(3))
	o := mustOrder(t, in)

	assert.Equal(t, FormatTicket(o, today), FormatTicket(o, today))
}

func TestFormatTicket_BannerIffDateDiffers(t *testing.T) {
	o := mustOrder(t, paidInput(today))
	assert.NotContains(t, FormatTicket(o, today), PreorderBanner)
	// rendered the next day the same order is no longer same-day
	assert.Contains(t, FormatTicket(o, tomorrow), PreorderBanner)
}

func TestFormatTicket_NoEmptyOptionalLines(t *testing.T) {
	got := FormatTicket(mustOrder(t, validInput(today)), today)
	assert.NotContains(t, got, "\n\n\n")
	assert.NotContains(t, got, "Customer Email:")
}

func TestSubject(t *testing.T) {
	o := mustOrder(t, validInput(today))
	assert.Equal(t, "NEW BBQ ORDER – 2026-10-19 5:30 PM", Subject(o))
}
