package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSquare(t *testing.T, h http.HandlerFunc) (*Square, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	sq := NewSquare("tok_test", "LOC1", "sandbox")
	sq.BaseURL = srv.URL
	sq.HTTP = srv.Client()
	return sq, &calls
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, SandboxBaseURL, BaseURL(""))
	assert.Equal(t, SandboxBaseURL, BaseURL("sandbox"))
	assert.Equal(t, ProductionBaseURL, BaseURL("Production"))
}

func TestCapture_Success(t *testing.T) {
	var got createPaymentReq
	sq, calls := newTestSquare(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/payments", r.URL.Path)
		assert.Equal(t, "Bearer tok_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"payment":{"id":"cap_123","status":"COMPLETED","receipt_url":"https://squareup.com/receipt/preview/cap_123"}}`))
	})

	rc, err := sq.Capture(context.Background(), CaptureRequest{SourceID: "cnon:card-nonce-ok", AmountCents: 1550, BuyerEmail: "pat@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "cap_123", rc.PaymentID)
	assert.Equal(t, "COMPLETED", rc.Status)
	assert.Equal(t, "https://squareup.com/receipt/preview/cap_123", rc.ReceiptURL)

	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.NotEmpty(t, got.IdempotencyKey)
	assert.Equal(t, "cnon:card-nonce-ok", got.SourceID)
	assert.Equal(t, int64(1550), got.AmountMoney.Amount)
	assert.Equal(t, "USD", got.AmountMoney.Currency)
	assert.Equal(t, "LOC1", got.LocationID)
	assert.Equal(t, "pat@example.com", got.BuyerEmailAddress)
	assert.True(t, got.Autocomplete)
}

func TestCapture_FreshIdempotencyKeyPerCall(t *testing.T) {
	var keys []string
	sq, _ := newTestSquare(t, func(w http.ResponseWriter, r *http.Request) {
		var body createPaymentReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		keys = append(keys, body.IdempotencyKey)
		_, _ = w.Write([]byte(`{"payment":{"id":"cap_x","status":"COMPLETED"}}`))
	})

	req := CaptureRequest{SourceID: "cnon:1", AmountCents: 100}
	_, err := sq.Capture(context.Background(), req)
	require.NoError(t, err)
	_, err = sq.Capture(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
}

func TestCapture_ProcessorErrorSurfaced(t *testing.T) {
	sq, _ := newTestSquare(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"errors":[{"category":"PAYMENT_METHOD_ERROR","code":"CARD_DECLINED","detail":"Authorization error: 'CARD_DECLINED'"}]}`))
	})

	_, err := sq.Capture(context.Background(), CaptureRequest{SourceID: "cnon:card-nonce-declined", AmountCents: 1550})
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusPaymentRequired, perr.HTTPStatus)
	require.Len(t, perr.Errors, 1)
	assert.Equal(t, "CARD_DECLINED", perr.Errors[0].Code)
	assert.Equal(t, "PAYMENT_METHOD_ERROR", perr.Errors[0].Category)
	assert.Contains(t, err.Error(), "CARD_DECLINED")
}

func TestCapture_NonJSONFailure(t *testing.T) {
	sq, _ := newTestSquare(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := sq.Capture(context.Background(), CaptureRequest{SourceID: "cnon:1", AmountCents: 1})
	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Len(t, perr.Errors, 1)
	assert.Equal(t, "upstream down", perr.Errors[0].Detail)
}

func TestCapture_RejectsBeforeNetwork(t *testing.T) {
	sq, calls := newTestSquare(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("processor must not be called")
	})

	for _, amt := range []int64{0, -1, -1550} {
		_, err := sq.Capture(context.Background(), CaptureRequest{SourceID: "cnon:1", AmountCents: amt})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	}
	_, err := sq.Capture(context.Background(), CaptureRequest{SourceID: " ", AmountCents: 100})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestCapture_NotConfigured(t *testing.T) {
	sq, calls := newTestSquare(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("processor must not be called")
	})
	sq.AccessToken = ""

	_, err := sq.Capture(context.Background(), CaptureRequest{SourceID: "cnon:1", AmountCents: 100})
	assert.ErrorIs(t, err, ErrNotConfigured)

	var nilSquare *Square
	_, err = nilSquare.Capture(context.Background(), CaptureRequest{SourceID: "cnon:1", AmountCents: 100})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestBrowserNonce(t *testing.T) {
	tok, err := BrowserNonce{}.Tokenize(context.Background(), CardDetails{Nonce: " cnon:abc "})
	require.NoError(t, err)
	assert.Equal(t, "cnon:abc", tok)

	_, err = BrowserNonce{}.Tokenize(context.Background(), CardDetails{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
