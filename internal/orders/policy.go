package orders

import "time"

const (
	msgPreorderNeedsOnline = "Future/pre-orders require online payment."
	msgOnlineNeedsCapture  = "If paying online, please complete payment first."
)

// Policy decides when online payment is mandatory. "Today" is the wall-clock date in
// Location, never the time of day.
type Policy struct {
	Now      func() time.Time
	Location *time.Location
}

func NewPolicy(loc *time.Location) Policy {
	if loc == nil {
		loc = time.Local
	}
	return Policy{Now: time.Now, Location: loc}
}

func (p Policy) now() time.Time {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	t := now()
	if p.Location != nil {
		t = t.In(p.Location)
	}
	return t
}

func (p Policy) Today() Date { return DateOf(p.now()) }

func (p Policy) IsFuture(d Date) bool { return d.After(p.Today()) }

// AllowedMethods lists the payment methods a customer may pick for d.
func (p Policy) AllowedMethods(d Date) []PaymentMethod {
	if p.IsFuture(d) {
		return []PaymentMethod{MethodOnline}
	}
	return []PaymentMethod{MethodPayAtPickup, MethodOnline}
}

func (p Policy) DefaultMethod(d Date) PaymentMethod {
	if p.IsFuture(d) {
		return MethodOnline
	}
	return MethodPayAtPickup
}

// CheckPayment applies the payment gate: pre-orders and online payments both need a
// capture receipt before submission.
func (p Policy) CheckPayment(d Date, m PaymentMethod, r *CaptureReceipt) error {
	future := p.IsFuture(d)
	if future && (r == nil || m != MethodOnline) {
		return invalid("payment_method", msgPreorderNeedsOnline)
	}
	if m == MethodOnline && r == nil {
		return invalid("payment_method", msgOnlineNeedsCapture)
	}
	return nil
}
