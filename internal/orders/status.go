package orders

type State string

const (
	StateCartBuilt       State = "CART_BUILT"
	StatePaymentCaptured State = "PAYMENT_CAPTURED"
	StateSubmitted       State = "SUBMITTED"
)

// Date changes and Clear drop a captured payment back to CART_BUILT. A submitted
// cart reopens as CART_BUILT when it is edited.
var validNext = map[State]map[State]bool{
	StateCartBuilt:       {StatePaymentCaptured: true, StateSubmitted: true},
	StatePaymentCaptured: {StateSubmitted: true, StateCartBuilt: true},
	StateSubmitted:       {StateCartBuilt: true},
}

func CanTransition(from, to State) bool {
	return validNext[from][to]
}
