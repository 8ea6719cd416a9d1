package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeLogged    Outcome = "logged"
)

// Detail is the human-readable message returned to the customer.
func (o Outcome) Detail() string {
	switch o {
	case OutcomeDelivered:
		return "Order email sent."
	case OutcomeLogged:
		return "Preview mode: mail transport not set. Order logged to server console."
	default:
		return string(o)
	}
}

var ErrNotConfigured = errors.New("mail transport not configured")

// DeliveryError means the transport did not accept the ticket. Not retried here.
type DeliveryError struct {
	To  string
	Err error
}

func (e *DeliveryError) Error() string { return fmt.Sprintf("deliver ticket to %s: %v", e.To, e.Err) }

func (e *DeliveryError) Unwrap() error { return e.Err }

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// Relay sends tickets to the vendor. With no Mailer it only logs them.
type Relay struct {
	Mailer Mailer
	To     string
	Log    *slog.Logger
}

func New(m Mailer, to string, log *slog.Logger) *Relay {
	if log == nil {
		log = slog.Default()
	}
	return &Relay{Mailer: m, To: to, Log: log}
}

func (r *Relay) Configured() bool { return r.Mailer != nil && r.To != "" }

// Deliver reports OutcomeDelivered only after the transport acknowledged the message.
func (r *Relay) Deliver(ctx context.Context, subject, ticket string) (Outcome, error) {
	if !r.Configured() {
		// preview mode must stay visible to operators
		r.Log.Warn("order relay not configured, ticket logged only",
			"reason", ErrNotConfigured.Error(), "subject", subject, "ticket", ticket)
		return OutcomeLogged, nil
	}
	if err := r.Mailer.Send(ctx, Message{To: r.To, Subject: subject, Body: ticket}); err != nil {
		return "", &DeliveryError{To: r.To, Err: err}
	}
	r.Log.Info("order ticket delivered", "to", r.To, "subject", subject)
	return OutcomeDelivered, nil
}
