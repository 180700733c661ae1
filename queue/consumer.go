package queue

import (
	"context"
	"fmt"
	"io"
	"log"
)

// Consumer reads booking.confirmed events until its context is cancelled.
type Consumer struct {
	url    string
	queue  string
	logger *log.Logger
	dial   dialFunc
}

func NewConsumer(url, queue string, logger *log.Logger) *Consumer {
	if queue == "" {
		queue = DefaultQueue
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Consumer{url: url, queue: queue, logger: logger, dial: dialAMQP}
}

// Run hands each event to handle. Messages that fail to decode or that handle
// rejects are nacked without requeue; the rest are acked.
func (c *Consumer) Run(ctx context.Context, handle func(BookingConfirmedEvent) error) error {
	ch, conn, err := c.dial(c.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.logger.Printf("rabbitmq action=qos err=%q", err)
	}
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			event, err := ParseMessage(d.Body)
			if err == nil {
				err = handle(event)
			}
			if err != nil {
				c.logger.Printf("rabbitmq action=consume queue=%s err=%q", c.queue, err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}
