package orders

import (
	"fmt"
	"github.com/ariefcatur/go-bbq-preorder/internal/catalog"
	"github.com/shopspring/decimal"
)

// Menu resolves item ids to prices; *catalog.Catalog satisfies it.
type Menu interface {
	Lookup(id string) (catalog.MenuItem, bool)
}

// Cart is one customer's in-progress order. It is owned by a single session and is
// never shared, so it carries no locking.
type Cart struct {
	Lines         []CartLine      `json:"lines"`
	EventDate     Date            `json:"event_date,omitempty"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
	Receipt       *CaptureReceipt `json:"receipt,omitempty"`
	OrderID       string          `json:"order_id,omitempty"`
}

func (c *Cart) index(itemID string) int {
	for i, l := range c.Lines {
		if l.ItemID == itemID {
			return i
		}
	}
	return -1
}

// editable refuses line edits while a receipt is held; the charge covers exactly
// the lines it was taken for. Editing a submitted cart starts a new order.
func (c *Cart) editable() error {
	if c.Receipt != nil {
		return fmt.Errorf("%w: clear the cart to change its items", ErrAlreadyCaptured)
	}
	c.OrderID = ""
	return nil
}

// Add bumps the quantity of itemID by one, inserting it at 1 if absent.
func (c *Cart) Add(menu Menu, itemID string) error {
	if _, ok := menu.Lookup(itemID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	if err := c.editable(); err != nil {
		return err
	}
	if i := c.index(itemID); i >= 0 {
		c.Lines[i].Qty++
		return nil
	}
	c.Lines = append(c.Lines, CartLine{ItemID: itemID, Qty: 1})
	return nil
}

// SetQuantity sets the quantity of itemID; qty <= 0 removes the line.
func (c *Cart) SetQuantity(menu Menu, itemID string, qty int) error {
	if qty <= 0 {
		return c.Remove(itemID)
	}
	if _, ok := menu.Lookup(itemID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	if err := c.editable(); err != nil {
		return err
	}
	if i := c.index(itemID); i >= 0 {
		c.Lines[i].Qty = qty
		return nil
	}
	c.Lines = append(c.Lines, CartLine{ItemID: itemID, Qty: qty})
	return nil
}

func (c *Cart) Remove(itemID string) error {
	if err := c.editable(); err != nil {
		return err
	}
	if i := c.index(itemID); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
	return nil
}

// Clear empties the cart, drops any captured receipt and resets the payment choice
// to the policy default for the cart's date.
func (c *Cart) Clear(p Policy) {
	c.Lines = nil
	c.Receipt = nil
	c.OrderID = ""
	c.PaymentMethod = p.DefaultMethod(c.EventDate)
}

func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

func (c *Cart) State() State {
	switch {
	case c.OrderID != "":
		return StateSubmitted
	case c.Receipt != nil:
		return StatePaymentCaptured
	default:
		return StateCartBuilt
	}
}

// MarkSubmitted empties a cart whose order was relayed and records the order id.
// A submitted cart cannot be submitted or captured again until it is edited.
func (c *Cart) MarkSubmitted(p Policy, orderID string) error {
	if !CanTransition(c.State(), StateSubmitted) {
		return ErrInvalidTransition
	}
	c.Clear(p)
	c.OrderID = orderID
	return nil
}

// SetEventDate changes the fulfillment date. A receipt is scoped to one date and
// amount, so it is discarded and the payment choice falls back to the policy default.
func (c *Cart) SetEventDate(p Policy, d Date) {
	if d == c.EventDate && c.PaymentMethod != "" {
		return
	}
	c.EventDate = d
	c.PaymentMethod = p.DefaultMethod(d)
	c.Receipt = nil
	c.OrderID = ""
}

func (c *Cart) ChoosePayment(p Policy, m PaymentMethod) error {
	if !m.Valid() {
		return invalid("payment_method", fmt.Sprintf("unknown payment method %q", m))
	}
	if m == MethodPayAtPickup && c.EventDate != "" && p.IsFuture(c.EventDate) {
		return invalid("payment_method", msgPreorderNeedsOnline)
	}
	if m == MethodPayAtPickup && c.Receipt != nil {
		return fmt.Errorf("%w: cannot switch to pay at pickup", ErrAlreadyCaptured)
	}
	c.PaymentMethod = m
	return nil
}

// AttachReceipt records a successful capture. A second capture for the same cart is
// refused, as is a capture on a cart that was already submitted.
func (c *Cart) AttachReceipt(r CaptureReceipt) error {
	if c.Receipt != nil {
		return ErrAlreadyCaptured
	}
	if !CanTransition(c.State(), StatePaymentCaptured) {
		return ErrInvalidTransition
	}
	c.Receipt = &r
	c.PaymentMethod = MethodOnline
	return nil
}

// Priced resolves every line against menu. Totals are computed on each call.
func (c *Cart) Priced(menu Menu) ([]PricedLine, error) {
	out := make([]PricedLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		it, ok := menu.Lookup(l.ItemID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownItem, l.ItemID)
		}
		out = append(out, PricedLine{
			ID:        it.ID,
			Name:      it.Name,
			UnitPrice: it.Price,
			Qty:       l.Qty,
			LineTotal: it.Price.Mul(decimal.NewFromInt(int64(l.Qty))),
		})
	}
	return out, nil
}

func (c *Cart) Subtotal(menu Menu) (decimal.Decimal, error) {
	lines, err := c.Priced(menu)
	if err != nil {
		return decimal.Zero, err
	}
	return Subtotal(lines), nil
}

func (c *Cart) AmountCents(menu Menu) (int64, error) {
	sub, err := c.Subtotal(menu)
	if err != nil {
		return 0, err
	}
	return AmountCents(sub), nil
}

func Subtotal(lines []PricedLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.LineTotal)
	}
	return sum
}

// AmountCents converts a dollar amount to minor units, rounding half-up once.
func AmountCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}
