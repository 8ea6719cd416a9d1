package redisx

import "time"

const (
	// Session cart: cart:session:{session_id} -> orders.Cart JSON
	KeyCartSession = "cart:session:%s"

	// Capture awaiting its order: recon:capture:{capture_id} -> reconcile.PendingCapture JSON
	KeyPendingCapture     = "recon:capture:%s"
	PatternPendingCapture = "recon:capture:*"

	// Capture whose order was already seen: recon:submitted:{capture_id} -> order_id
	KeySubmittedCapture = "recon:submitted:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLCartSession    = 24 * time.Hour
	TTLPendingCapture = 7 * 24 * time.Hour
	TTLDedup          = 48 * time.Hour
)
