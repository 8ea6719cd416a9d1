package checkout

import (
	kafkax "github.com/ariefcatur/go-bbq-preorder/internal/kafka"
	"github.com/ariefcatur/go-bbq-preorder/internal/orders"
	"github.com/ariefcatur/go-bbq-preorder/internal/payments"
	"github.com/ariefcatur/go-bbq-preorder/internal/relay"
	"github.com/google/uuid"
	"time"
)

func (s *Service) publish(eventType, correlationID string, key []byte, payload any) {
	if s.Events == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.Producer,
		CorrelationID: correlationID,
		Payload:       kafkax.MustMarshal(payload),
	}
	s.Events.Publish(key, kafkax.MustMarshal(ev), kafkax.EventHeaders(eventType, ev.EventVersion)...)
}

func (s *Service) publishCaptured(rc payments.Receipt, amount int64, sessionID string) {
	s.publish(orders.EventPaymentCaptured, rc.PaymentID, orders.PartitionKey(rc.PaymentID, ""),
		orders.PaymentCapturedPayload{
			CaptureID:   rc.PaymentID,
			AmountCents: amount,
			ReceiptURL:  rc.ReceiptURL,
			SessionID:   sessionID,
		})
}

func (s *Service) publishSubmitted(o orders.Order, outcome relay.Outcome) {
	corr := o.CaptureID()
	if corr == "" {
		corr = o.ID
	}
	s.publish(orders.EventOrderSubmitted, corr, orders.PartitionKey(o.CaptureID(), o.ID),
		orders.OrderSubmittedPayload{
			OrderID:     o.ID,
			CaptureID:   o.CaptureID(),
			EventDate:   o.EventDate.String(),
			PickupTime:  o.PickupTime,
			SubtotalUSD: o.Subtotal.StringFixed(2),
			Outcome:     string(outcome),
		})
}
