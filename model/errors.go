package model

import (
	"errors"
	"fmt"
)

var (
	ErrNameCountMismatch    = errors.New("passenger names do not match seat count")
	ErrInsufficientSeats    = errors.New("not enough seats available")
	ErrInvalidSeatCount     = errors.New("invalid seat count")
	ErrInvalidPassengerName = errors.New("invalid passenger name")
	ErrUnknownFareClass     = errors.New("unknown fare class")
	ErrUnknownSortKey       = errors.New("unknown sort key")
	ErrSeatNotFound         = errors.New("seat not found")
	ErrSeatOccupied         = errors.New("seat already occupied")
	ErrCorruptState         = errors.New("corrupt seating state")
)

// AllocationError describes a rejected assignment request. Kind is one of the
// sentinels above and is what errors.Is matches against.
type AllocationError struct {
	Kind      error
	Class     FareClass
	Requested int
	Available int
	Limit     int
	Names     int
}

func (e *AllocationError) Error() string {
	if e == nil || e.Kind == nil {
		return "allocation failed"
	}
	switch {
	case errors.Is(e.Kind, ErrInsufficientSeats):
		return fmt.Sprintf("not enough seats available in %s class: requested %d, available %d", e.Class, e.Requested, e.Available)
	case errors.Is(e.Kind, ErrNameCountMismatch):
		return fmt.Sprintf("please enter exactly %d passenger name(s), got %d", e.Requested, e.Names)
	case errors.Is(e.Kind, ErrInvalidSeatCount):
		return fmt.Sprintf("%s class bookings take 1 to %d seats, got %d", e.Class, e.Limit, e.Requested)
	default:
		return e.Kind.Error()
	}
}

func (e *AllocationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}
