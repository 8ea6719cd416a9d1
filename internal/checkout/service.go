package checkout

import (
	"context"
	"errors"
	"fmt"
	kafkax "github.com/ariefcatur/go-bbq-preorder/internal/kafka"
	"github.com/ariefcatur/go-bbq-preorder/internal/orders"
	"github.com/ariefcatur/go-bbq-preorder/internal/payments"
	"github.com/ariefcatur/go-bbq-preorder/internal/relay"
	"github.com/ariefcatur/go-bbq-preorder/internal/session"
	"log/slog"
	"time"
)

// Relayer delivers a formatted ticket; *relay.Relay satisfies it.
type Relayer interface {
	Deliver(ctx context.Context, subject, ticket string) (relay.Outcome, error)
}

// Service runs the checkout pipeline: cart, optional capture, validation, relay.
// Each step is awaited before the next one starts.
type Service struct {
	Menu     orders.Menu
	Policy   orders.Policy
	Payments payments.Capturer
	Relay    Relayer
	Sessions session.Store
	Events   kafkax.Publisher
	Producer string
	Log      *slog.Logger

	// CaptureTimeout bounds a processor call once issued. Client disconnects do
	// not cancel it.
	CaptureTimeout time.Duration
}

type Result struct {
	OrderID string        `json:"order_id"`
	Outcome relay.Outcome `json:"outcome"`
	Ticket  string        `json:"-"`
}

type Customer struct {
	Name       string
	Phone      string
	Email      string
	PickupTime string
	Notes      string
}

func (s *Service) log() *slog.Logger {
	if s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

// CreatePayment performs one capture. sessionID is only recorded on the event.
func (s *Service) CreatePayment(ctx context.Context, req payments.CaptureRequest, sessionID string) (payments.Receipt, error) {
	if s.Payments == nil {
		return payments.Receipt{}, payments.ErrNotConfigured
	}
	timeout := s.CaptureTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	rc, err := s.Payments.Capture(cctx, req)
	if err != nil {
		var perr *payments.Error
		switch {
		case errors.Is(err, payments.ErrNotConfigured):
			s.log().Error("payment capture attempted without processor credentials")
		case errors.As(err, &perr):
			s.log().Warn("payment declined", "status", perr.HTTPStatus, "err", perr.Error())
		}
		return payments.Receipt{}, err
	}
	s.log().Info("payment captured", "capture_id", rc.PaymentID, "amount_cents", req.AmountCents, "status", rc.Status)
	s.publishCaptured(rc, req.AmountCents, sessionID)
	return rc, nil
}

// SubmitOrder validates client-built order fields and relays the ticket.
func (s *Service) SubmitOrder(ctx context.Context, in orders.OrderInput) (Result, error) {
	o, err := orders.NewOrder(in, s.Policy)
	if err != nil {
		return Result{}, err
	}
	return s.relay(ctx, o)
}

func (s *Service) relay(ctx context.Context, o orders.Order) (Result, error) {
	ticket := orders.FormatTicket(o, s.Policy.Today())
	outcome, err := s.Relay.Deliver(ctx, orders.Subject(o), ticket)
	if err != nil {
		s.log().Error("order relay failed", "order_id", o.ID, "capture_id", o.CaptureID(), "err", err)
		return Result{}, err
	}
	s.log().Info("order submitted", "order_id", o.ID, "event_date", o.EventDate.String(),
		"payment_status", string(o.PaymentStatus), "outcome", string(outcome))
	s.publishSubmitted(o, outcome)
	return Result{OrderID: o.ID, Outcome: outcome, Ticket: ticket}, nil
}

// NewCart opens a session dated today with the default payment choice.
func (s *Service) NewCart(ctx context.Context) (string, orders.Cart, error) {
	var c orders.Cart
	c.SetEventDate(s.Policy, s.Policy.Today())
	id, err := s.Sessions.Create(ctx, c)
	if err != nil {
		return "", orders.Cart{}, err
	}
	return id, c, nil
}

func (s *Service) Cart(ctx context.Context, id string) (orders.Cart, error) {
	return s.Sessions.Get(ctx, id)
}

// UpdateCart loads the session cart, applies fn and saves it when fn succeeds.
func (s *Service) UpdateCart(ctx context.Context, id string, fn func(*orders.Cart) error) (orders.Cart, error) {
	c, err := s.Sessions.Get(ctx, id)
	if err != nil {
		return orders.Cart{}, err
	}
	if err := fn(&c); err != nil {
		return orders.Cart{}, err
	}
	if err := s.Sessions.Save(ctx, id, c); err != nil {
		return orders.Cart{}, err
	}
	return c, nil
}

func (s *Service) SetEventDate(ctx context.Context, id, date string) (orders.Cart, error) {
	d, err := orders.ParseDate(date)
	if err != nil {
		return orders.Cart{}, &orders.ValidationError{Field: "event_date", Message: "Event date must be formatted YYYY-MM-DD."}
	}
	if d.Before(s.Policy.Today()) {
		return orders.Cart{}, &orders.ValidationError{Field: "event_date", Message: "Event date is in the past."}
	}
	return s.UpdateCart(ctx, id, func(c *orders.Cart) error {
		if c.Receipt != nil && c.EventDate != d {
			s.log().Warn("date change discarded captured payment", "session_id", id, "capture_id", c.Receipt.CaptureID)
		}
		c.SetEventDate(s.Policy, d)
		return nil
	})
}

// CaptureCart charges the session cart's current subtotal once and attaches the
// receipt. A cart that already holds a receipt is refused.
func (s *Service) CaptureCart(ctx context.Context, id string, tok payments.Tokenizer, card payments.CardDetails, buyerEmail string) (orders.Cart, payments.Receipt, error) {
	c, err := s.Sessions.Get(ctx, id)
	if err != nil {
		return orders.Cart{}, payments.Receipt{}, err
	}
	if c.Receipt != nil {
		return orders.Cart{}, payments.Receipt{}, orders.ErrAlreadyCaptured
	}
	if c.IsEmpty() {
		return orders.Cart{}, payments.Receipt{}, &orders.ValidationError{Field: "lines", Message: "Your cart is empty."}
	}
	amount, err := c.AmountCents(s.Menu)
	if err != nil {
		return orders.Cart{}, payments.Receipt{}, err
	}
	source, err := tok.Tokenize(ctx, card)
	if err != nil {
		return orders.Cart{}, payments.Receipt{}, err
	}

	rc, err := s.CreatePayment(ctx, payments.CaptureRequest{SourceID: source, AmountCents: amount, BuyerEmail: buyerEmail}, id)
	if err != nil {
		return orders.Cart{}, payments.Receipt{}, err
	}

	if err := c.AttachReceipt(orders.CaptureReceipt{CaptureID: rc.PaymentID, ReceiptURL: rc.ReceiptURL, Status: rc.Status, AmountCents: amount}); err != nil {
		return orders.Cart{}, rc, err
	}
	if err := s.Sessions.Save(context.WithoutCancel(ctx), id, c); err != nil {
		// money moved but the cart lost track of it; the reconciler will report it
		s.log().Error("captured payment not saved to cart", "session_id", id, "capture_id", rc.PaymentID, "err", err)
		return orders.Cart{}, rc, fmt.Errorf("save captured cart: %w", err)
	}
	return c, rc, nil
}

// SubmitCart builds the order from the session cart and relays it. The cart is
// emptied and marked submitted only after a successful relay, so a failed delivery
// can be retried and a delivered one cannot be sent twice.
func (s *Service) SubmitCart(ctx context.Context, id string, cu Customer) (Result, error) {
	c, err := s.Sessions.Get(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if !orders.CanTransition(c.State(), orders.StateSubmitted) {
		return Result{}, orders.ErrInvalidTransition
	}
	lines, err := c.Priced(s.Menu)
	if err != nil {
		return Result{}, err
	}
	o, err := orders.NewOrder(orders.OrderInput{
		CustomerName:  cu.Name,
		Phone:         cu.Phone,
		Email:         cu.Email,
		EventDate:     c.EventDate.String(),
		PickupTime:    cu.PickupTime,
		Notes:         cu.Notes,
		Lines:         lines,
		PaymentMethod: c.PaymentMethod,
		Receipt:       c.Receipt,
	}, s.Policy)
	if err != nil {
		return Result{}, err
	}

	res, err := s.relay(ctx, o)
	if err != nil {
		return Result{}, err
	}

	if err := c.MarkSubmitted(s.Policy, res.OrderID); err != nil {
		s.log().Warn("cart not marked submitted", "session_id", id, "err", err)
		return res, nil
	}
	if err := s.Sessions.Save(context.WithoutCancel(ctx), id, c); err != nil && !errors.Is(err, session.ErrNotFound) {
		s.log().Warn("cart not cleared after submit", "session_id", id, "err", err)
	}
	return res, nil
}
