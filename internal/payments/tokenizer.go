package payments

import (
	"context"
	"fmt"
	"strings"
)

// CardDetails is whatever the tokenizing runtime needs. In the web flow the card
// never reaches this service; the browser SDK hands over a one-time nonce instead.
type CardDetails struct {
	Nonce string
}

// Tokenizer turns card details into a one-time payment source token.
type Tokenizer interface {
	Tokenize(ctx context.Context, card CardDetails) (string, error)
}

// BrowserNonce accepts a nonce already produced by the processor's web SDK.
type BrowserNonce struct{}

func (BrowserNonce) Tokenize(_ context.Context, card CardDetails) (string, error) {
	n := strings.TrimSpace(card.Nonce)
	if n == "" {
		return "", fmt.Errorf("%w: missing card nonce", ErrInvalidRequest)
	}
	return n, nil
}
