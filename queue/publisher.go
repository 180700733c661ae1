package queue

import (
	"context"
	"io"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"airplane-seating-cli/model"
)

// channel is the part of *amqp.Channel the publisher and consumer use.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

type dialFunc func(url string) (channel, io.Closer, error)

func dialAMQP(url string) (channel, io.Closer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return ch, conn, nil
}

// Publisher sends booking.confirmed events. Each publish opens its own
// connection so a broker restart never leaves it holding a dead channel.
type Publisher struct {
	url    string
	queue  string
	logger *log.Logger
	dial   dialFunc
	now    func() time.Time
}

func NewPublisher(url, queue string, logger *log.Logger) *Publisher {
	if queue == "" {
		queue = DefaultQueue
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Publisher{
		url:    url,
		queue:  queue,
		logger: logger,
		dial:   dialAMQP,
		now:    time.Now,
	}
}

// PublishBookingConfirmed declares the durable queue and publishes the
// booking to it through the default exchange.
func (p *Publisher) PublishBookingConfirmed(ctx context.Context, booking model.Booking) error {
	msg, err := NewMessage(EventFromBooking(booking), p.now())
	if err != nil {
		return err
	}

	ch, conn, err := p.dial(p.url)
	if err != nil {
		p.logger.Printf("rabbitmq action=dial err=%q", err)
		return err
	}
	defer func() { _ = conn.Close() }()
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		p.logger.Printf("rabbitmq action=declare queue=%s err=%q", p.queue, err)
		return err
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.logger.Printf("rabbitmq action=publish queue=%s err=%q", p.queue, err)
		return err
	}
	p.logger.Printf("rabbitmq action=publish queue=%s booking=%s result=ok", p.queue, booking.ID)
	return nil
}
