package kafka

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Handler must return nil only when processing succeeded and the offset
// may be committed.
type Handler func(ctx context.Context, m kafka.Message) error

// Consumer reads one topic as part of a group and fans messages out to a
// worker pool. Offsets are committed per message, after the handler.
type Consumer struct {
	r       *kafka.Reader
	workers int
	backoff time.Duration
}

func NewConsumer(brokers []string, group, topic string, workers int) *Consumer {
	if workers <= 0 {
		workers = 1
	}
	return &Consumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        brokers,
			GroupID:        group,
			Topic:          topic,
			MinBytes:       1,
			MaxBytes:       10e6,
			CommitInterval: 0, // manual commit
		}),
		workers: workers,
		backoff: 200 * time.Millisecond,
	}
}

// Start blocks until ctx is cancelled or the reader fails. In-flight
// handlers run to completion before it returns.
func (c *Consumer) Start(ctx context.Context, h Handler) error {
	defer c.r.Close()

	jobs := make(chan kafka.Message, 1024)
	var wg sync.WaitGroup

	wg.Add(c.workers)
	for i := 0; i < c.workers; i++ {
		go func() {
			defer wg.Done()
			for m := range jobs {
				if err := h(ctx, m); err != nil {
					log.Printf("handle %s[%d]@%d: %v", m.Topic, m.Partition, m.Offset, err)
					time.Sleep(c.backoff)
					continue
				}
				if err := c.r.CommitMessages(ctx, m); err != nil && !errors.Is(err, context.Canceled) {
					log.Printf("commit %s[%d]@%d: %v", m.Topic, m.Partition, m.Offset, err)
				}
			}
		}()
	}

	var readErr error
loop:
	for {
		m, err := c.r.ReadMessage(ctx)
		if err != nil {
			// a cancelled context is a normal shutdown, not a failure
			if !errors.Is(err, context.Canceled) {
				readErr = err
			}
			break
		}
		select {
		case jobs <- m:
		case <-ctx.Done():
			break loop
		}
	}
	close(jobs)
	wg.Wait()
	return readErr
}
