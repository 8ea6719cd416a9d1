package kafka

import (
	"context"
	"github.com/segmentio/kafka-go"
	"log/slog"
	"sync"
	"time"
)

// Publisher is what the checkout flow needs from an event sink.
type Publisher interface {
	Publish(key, value []byte, headers ...kafka.Header)
}

type Producer struct {
	w       *kafka.Writer
	log     *slog.Logger
	inbox   chan kafka.Message
	closeCh chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewProducer(brokers []string, topic string, buf int, log *slog.Logger) *Producer {
	if log == nil {
		log = slog.Default()
	}
	p := &Producer{
		log:     log.With("topic", topic),
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
	p.w = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        true,
		Completion: func(msgs []kafka.Message, err error) {
			if err != nil {
				p.log.Error("kafka write failed", "messages", len(msgs), "err", err)
			}
		},
	}
	return p
}

func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for {
			select {
			case <-ctx.Done():
				// drain what is already queued
				for {
					select {
					case m, ok := <-p.inbox:
						if !ok {
							_ = p.w.Close()
							return
						}
						p.write(m)
					default:
						_ = p.w.Close()
						return
					}
				}
			case m, ok := <-p.inbox:
				if !ok {
					_ = p.w.Close()
					return
				}
				p.write(m)
			}
		}
	}()
}

func (p *Producer) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		p.log.Error("kafka enqueue failed", "key", string(m.Key), "err", err)
	}
}

// Publish queues a message; it never blocks the request path on a full inbox.
func (p *Producer) Publish(key, value []byte, headers ...kafka.Header) {
	m := kafka.Message{
		Key:     key,
		Value:   value,
		Time:    time.Now(),
		Headers: headers,
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.log.Warn("kafka producer closed, event dropped", "key", string(key))
		return
	}
	select {
	case p.inbox <- m:
	default:
		p.log.Warn("kafka inbox full, event dropped", "key", string(key))
	}
}

// Close stops accepting messages; the loop flushes the rest and exits. Publish
// after Close drops the event.
func (p *Producer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.inbox)
}

func (p *Producer) WaitClosed() { <-p.closeCh }

// Discard is used when no brokers are configured.
type Discard struct{ Log *slog.Logger }

func (d Discard) Publish(key, _ []byte, headers ...kafka.Header) {
	if d.Log != nil {
		d.Log.Debug("event stream disabled, event discarded", "key", string(key), "headers", len(headers))
	}
}
