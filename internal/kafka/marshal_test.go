package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedPayload struct {
	CaptureID   string `json:"capture_id"`
	AmountCents int64  `json:"amount_cents"`
}

func TestUnwrapPayload(t *testing.T) {
	raw := json.RawMessage(MustMarshal(capturedPayload{CaptureID: "cap_1", AmountCents: 1550}))

	p, err := UnwrapPayload[capturedPayload](raw)
	require.NoError(t, err)
	assert.Equal(t, "cap_1", p.CaptureID)
	assert.Equal(t, int64(1550), p.AmountCents)

	_, err = UnwrapPayload[capturedPayload](json.RawMessage(`{"capture_id":`))
	assert.Error(t, err)
}

func TestMustMarshal_PanicsOnUnsupported(t *testing.T) {
	assert.Panics(t, func() { MustMarshal(make(chan int)) })
}

func TestEventHeaders(t *testing.T) {
	h := EventHeaders("PaymentCaptured", 1)
	require.Len(t, h, 2)
	assert.Equal(t, "x-event-type", h[0].Key)
	assert.Equal(t, "PaymentCaptured", string(h[0].Value))
	assert.Equal(t, "1", string(h[1].Value))
}
