package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	SandboxBaseURL    = "https://connect.squareupsandbox.com"
	ProductionBaseURL = "https://connect.squareup.com"
	squareVersion     = "2024-10-17"
	currency          = "USD"
)

// BaseURL picks the Square API host for an environment name.
func BaseURL(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), "production") {
		return ProductionBaseURL
	}
	return SandboxBaseURL
}

type Square struct {
	AccessToken string
	LocationID  string
	BaseURL     string
	HTTP        *http.Client
}

func NewSquare(token, locationID, env string) *Square {
	return &Square{
		AccessToken: token,
		LocationID:  locationID,
		BaseURL:     BaseURL(env),
		HTTP:        &http.Client{Timeout: 20 * time.Second},
	}
}

func (s *Square) Configured() bool {
	return s != nil && s.AccessToken != "" && s.LocationID != ""
}

type money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type createPaymentReq struct {
	IdempotencyKey    string `json:"idempotency_key"`
	SourceID          string `json:"source_id"`
	AmountMoney       money  `json:"amount_money"`
	LocationID        string `json:"location_id"`
	BuyerEmailAddress string `json:"buyer_email_address,omitempty"`
	Autocomplete      bool   `json:"autocomplete"`
}

type createPaymentResp struct {
	Payment *struct {
		ID         string `json:"id"`
		Status     string `json:"status"`
		ReceiptURL string `json:"receipt_url"`
	} `json:"payment"`
	Errors []ProcessorError `json:"errors"`
}

// Capture charges the source once. Every call gets a new idempotency key, so a retry
// of a failed attempt is a new charge; deduplicating intents is the caller's job.
func (s *Square) Capture(ctx context.Context, req CaptureRequest) (Receipt, error) {
	if !s.Configured() {
		return Receipt{}, ErrNotConfigured
	}
	if err := validate(req); err != nil {
		return Receipt{}, err
	}

	body, err := json.Marshal(createPaymentReq{
		IdempotencyKey:    uuid.NewString(),
		SourceID:          req.SourceID,
		AmountMoney:       money{Amount: req.AmountCents, Currency: currency},
		LocationID:        s.LocationID,
		BuyerEmailAddress: strings.TrimSpace(req.BuyerEmail),
		Autocomplete:      true,
	})
	if err != nil {
		return Receipt{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(s.BaseURL, "/")+"/v2/payments", bytes.NewReader(body))
	if err != nil {
		return Receipt{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.AccessToken)
	httpReq.Header.Set("Square-Version", squareVersion)

	client := s.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(httpReq)
	if err != nil {
		return Receipt{}, fmt.Errorf("square create payment: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return Receipt{}, fmt.Errorf("read square response: %w", err)
	}
	var out createPaymentResp
	decodeErr := json.Unmarshal(raw, &out)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		perr := &Error{HTTPStatus: res.StatusCode, Errors: out.Errors}
		if len(perr.Errors) == 0 {
			perr.Errors = []ProcessorError{{Category: "API_ERROR", Code: http.StatusText(res.StatusCode), Detail: strings.TrimSpace(string(raw))}}
		}
		return Receipt{}, perr
	}
	if decodeErr != nil {
		return Receipt{}, fmt.Errorf("decode square response: %w", decodeErr)
	}
	if out.Payment == nil || out.Payment.ID == "" {
		return Receipt{}, &Error{HTTPStatus: res.StatusCode, Errors: out.Errors}
	}
	return Receipt{
		PaymentID:  out.Payment.ID,
		ReceiptURL: out.Payment.ReceiptURL,
		Status:     out.Payment.Status,
	}, nil
}
