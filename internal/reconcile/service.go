package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	kafkax "github.com/ariefcatur/go-bbq-preorder/internal/kafka"
	"github.com/ariefcatur/go-bbq-preorder/internal/orders"
	"github.com/ariefcatur/go-bbq-preorder/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"log/slog"
	"sort"
	"time"
)

// PendingCapture is a capture with no submitted order seen yet.
type PendingCapture struct {
	CaptureID   string    `json:"capture_id"`
	AmountCents int64     `json:"amount_cents"`
	ReceiptURL  string    `json:"receipt_url,omitempty"`
	SessionID   string    `json:"session_id,omitempty"`
	CapturedAt  time.Time `json:"captured_at"`
	Reported    bool      `json:"reported,omitempty"`
}

// Service matches PaymentCaptured events to OrderSubmitted events and reports
// captures that never got an order. It only reports; refunds stay manual.
type Service struct {
	Redis       redis.Cmdable
	Grace       time.Duration
	Now         func() time.Time
	Log         *slog.Logger
	ServiceName string
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) log() *slog.Logger {
	if s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

// HandleEvent is installed as the consumer handler.
func (s *Service) HandleEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		s.log().Warn("skipping undecodable event", "offset", m.Offset, "err", err)
		return nil
	}

	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if seen, _ := redisx.Exists(ctx, s.Redis, dkey); seen {
		return nil
	}

	var err error
	switch env.EventType {
	case orders.EventPaymentCaptured:
		err = s.captured(ctx, env)
	case orders.EventOrderSubmitted:
		err = s.submitted(ctx, env)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	return nil
}

func (s *Service) captured(ctx context.Context, env orders.Envelope) error {
	p, err := kafkax.UnwrapPayload[orders.PaymentCapturedPayload](env.Payload)
	if err != nil {
		return err
	}
	if p.CaptureID == "" {
		return nil
	}
	pc := PendingCapture{
		CaptureID:   p.CaptureID,
		AmountCents: p.AmountCents,
		ReceiptURL:  p.ReceiptURL,
		SessionID:   p.SessionID,
		CapturedAt:  env.OccurredAt,
	}
	// the order can be handled before its capture
	done, err := redisx.Exists(ctx, s.Redis, fmt.Sprintf(redisx.KeySubmittedCapture, p.CaptureID))
	if err != nil {
		return err
	}
	if done {
		return nil
	}
	b, err := json.Marshal(pc)
	if err != nil {
		return err
	}
	// NX: a replayed capture must not reset the clock
	return s.Redis.SetNX(ctx, fmt.Sprintf(redisx.KeyPendingCapture, p.CaptureID), b, redisx.TTLPendingCapture).Err()
}

func (s *Service) submitted(ctx context.Context, env orders.Envelope) error {
	p, err := kafkax.UnwrapPayload[orders.OrderSubmittedPayload](env.Payload)
	if err != nil {
		return err
	}
	if p.CaptureID == "" {
		return nil
	}
	mark := fmt.Sprintf(redisx.KeySubmittedCapture, p.CaptureID)
	if err := s.Redis.Set(ctx, mark, p.OrderID, redisx.TTLPendingCapture).Err(); err != nil {
		return err
	}
	key := fmt.Sprintf(redisx.KeyPendingCapture, p.CaptureID)
	if b, err := s.Redis.Get(ctx, key).Bytes(); err == nil {
		var pc PendingCapture
		if json.Unmarshal(b, &pc) == nil && pc.Reported {
			s.log().Info("previously reported capture now has an order", "capture_id", p.CaptureID, "order_id", p.OrderID)
		}
	}
	return s.Redis.Del(ctx, key).Err()
}

// Sweep reports captures older than Grace that still have no order. Each one is
// reported once; it stays listed in Redis until its TTL runs out.
func (s *Service) Sweep(ctx context.Context) ([]PendingCapture, error) {
	cutoff := s.now().Add(-s.Grace)
	var found []PendingCapture

	iter := s.Redis.Scan(ctx, 0, redisx.PatternPendingCapture, 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		b, err := s.Redis.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return found, err
		}
		var pc PendingCapture
		if err := json.Unmarshal(b, &pc); err != nil {
			s.log().Warn("bad pending capture record", "key", key, "err", err)
			continue
		}
		if pc.Reported || pc.CapturedAt.After(cutoff) {
			continue
		}
		if done, _ := redisx.Exists(ctx, s.Redis, fmt.Sprintf(redisx.KeySubmittedCapture, pc.CaptureID)); done {
			_ = s.Redis.Del(ctx, key).Err()
			continue
		}

		s.log().Warn("captured payment has no submitted order",
			"capture_id", pc.CaptureID,
			"amount_cents", pc.AmountCents,
			"session_id", pc.SessionID,
			"captured_at", pc.CapturedAt.Format(time.RFC3339),
			"receipt_url", pc.ReceiptURL,
		)
		pc.Reported = true
		nb, _ := json.Marshal(pc)
		if err := s.Redis.SetArgs(ctx, key, nb, redis.SetArgs{KeepTTL: true, Mode: "XX"}).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return found, err
		}
		found = append(found, pc)
	}
	if err := iter.Err(); err != nil {
		return found, err
	}
	sort.Slice(found, func(i, j int) bool { return found[i].CapturedAt.Before(found[j].CapturedAt) })
	return found, nil
}

// Run sweeps every interval until ctx is done.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
				s.log().Error("reconcile sweep failed", "err", err)
			}
		}
	}
}
