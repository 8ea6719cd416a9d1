package kafka

import (
	"context"
	"github.com/cespare/xxhash/v2"
	"github.com/segmentio/kafka-go"
	"log/slog"
	"sync"
	"time"
)

// Handler must return nil only when the message is processed and its offset may be
// committed.
type Handler func(ctx context.Context, m kafka.Message) error

type Consumer struct {
	r       *kafka.Reader
	workers int
	log     *slog.Logger
}

func NewConsumer(brokers []string, group, topic string, workers int, log *slog.Logger) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        group,
		Topic:          topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0, // manual commit
	})
	if workers <= 0 {
		workers = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Consumer{r: r, workers: workers, log: log.With("topic", topic, "group", group)}
}

// Start fetches until ctx is done. Messages with the same key always go to the same
// worker, so per-key order from a partition is preserved.
func (c *Consumer) Start(ctx context.Context, h Handler) error {
	defer c.r.Close()

	jobs := make([]chan kafka.Message, c.workers)
	errs := make(chan error, c.workers)

	var wg sync.WaitGroup
	for i := range jobs {
		jobs[i] = make(chan kafka.Message, 1024/c.workers+1)
		wg.Add(1)
		go func(in <-chan kafka.Message) {
			defer wg.Done()
			for m := range in {
				if err := h(ctx, m); err != nil {
					select {
					case errs <- err:
					default:
					}
					continue
				}
				if err := c.r.CommitMessages(ctx, m); err != nil {
					select {
					case errs <- err:
					default:
					}
				}
			}
		}(jobs[i])
	}
	stop := func() {
		for _, ch := range jobs {
			close(ch)
		}
		wg.Wait()
	}

	for {
		m, err := c.r.FetchMessage(ctx)
		if err != nil {
			stop()
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}
		select {
		case jobs[workerFor(m.Key, c.workers)] <- m:
		case <-ctx.Done():
			stop()
			return nil
		}

		select {
		case e := <-errs:
			c.log.Error("worker error", "err", e)
			time.Sleep(200 * time.Millisecond)
		default:
		}
	}
}

func workerFor(key []byte, workers int) int {
	if workers <= 1 {
		return 0
	}
	return int(xxhash.Sum64(key) % uint64(workers))
}
