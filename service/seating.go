package service

import (
	"context"
	"errors"

	"airplane-seating-cli/model"
)

// Seating is the operation set shared by a local Session and a remote Client.
// The shells depend on it so either can drive them.
type Seating interface {
	Assign(ctx context.Context, req model.AssignmentRequest) (model.Booking, error)
	Seats(ctx context.Context, key model.SortKey) ([]model.SeatSummary, error)
	Availability(ctx context.Context) (model.Availability, error)
	Save(ctx context.Context) error
	Load(ctx context.Context) (bool, error)
	Reset(ctx context.Context) error
}

var (
	_ Seating = (*Session)(nil)
	_ Seating = (*Client)(nil)
)

// Wire codes shared by the HTTP service and the Client.
const (
	CodeNameCountMismatch    = "name_count_mismatch"
	CodeInsufficientSeats    = "insufficient_seats"
	CodeInvalidSeatCount     = "invalid_seat_count"
	CodeInvalidPassengerName = "invalid_passenger_name"
	CodeUnknownFareClass     = "unknown_fare_class"
	CodeUnknownSortKey       = "unknown_sort_key"
	CodeCorruptState         = "corrupt_state"
	CodeStateNotFound        = "state_not_found"
	CodeInvalidRequestBody   = "invalid_request_body"
	CodeInternal             = "internal_error"
)

var errorCodes = []struct {
	code string
	err  error
}{
	{CodeNameCountMismatch, model.ErrNameCountMismatch},
	{CodeInsufficientSeats, model.ErrInsufficientSeats},
	{CodeInvalidSeatCount, model.ErrInvalidSeatCount},
	{CodeInvalidPassengerName, model.ErrInvalidPassengerName},
	{CodeUnknownFareClass, model.ErrUnknownFareClass},
	{CodeUnknownSortKey, model.ErrUnknownSortKey},
	{CodeCorruptState, model.ErrCorruptState},
}

// ErrorCode returns the wire code of a domain error, or "" when err does not
// wrap one of the model sentinels.
func ErrorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return ""
}

func errorForCode(code string) error {
	for _, ec := range errorCodes {
		if ec.code == code {
			return ec.err
		}
	}
	return nil
}
