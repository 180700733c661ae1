// Package queue announces confirmed bookings on RabbitMQ and reads them back.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"airplane-seating-cli/model"
)

// DefaultQueue is the durable queue booking events are routed to.
const DefaultQueue = "booking.confirmed"

// BookingConfirmedEvent is the JSON body of every booking.confirmed message.
type BookingConfirmedEvent struct {
	BookingID   string          `json:"booking_id"`
	Class       model.FareClass `json:"class"`
	Seats       []string        `json:"seats"`
	Passengers  []string        `json:"passengers"`
	ConfirmedAt time.Time       `json:"confirmed_at"`
}

func EventFromBooking(b model.Booking) BookingConfirmedEvent {
	return BookingConfirmedEvent{
		BookingID:   b.ID,
		Class:       b.Class,
		Seats:       append([]string(nil), b.SeatIDs...),
		Passengers:  append([]string(nil), b.Passengers...),
		ConfirmedAt: b.CreatedAt.UTC(),
	}
}

// NewMessage builds a persistent JSON publishing for the event.
func NewMessage(event BookingConfirmedEvent, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal booking event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.BookingID,
		Timestamp:    now.UTC(),
		Body:         body,
	}, nil
}

// ParseMessage decodes a delivery body written by NewMessage.
func ParseMessage(body []byte) (BookingConfirmedEvent, error) {
	var event BookingConfirmedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return BookingConfirmedEvent{}, fmt.Errorf("decode booking event: %w", err)
	}
	if event.BookingID == "" || len(event.Seats) == 0 {
		return BookingConfirmedEvent{}, fmt.Errorf("decode booking event: missing booking id or seats")
	}
	return event, nil
}
