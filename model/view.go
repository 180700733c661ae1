package model

import (
	"fmt"
	"sort"
	"strings"
)

const (
	StatusAvailable = "Available"
	StatusOccupied  = "Occupied"
)

type SortKey int

const (
	BySeatNumber SortKey = iota
	ByPassengerName
)

func (k SortKey) String() string {
	switch k {
	case BySeatNumber:
		return "seat"
	case ByPassengerName:
		return "name"
	default:
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
}

// Label is the text shown in the shells' sort selector.
func (k SortKey) Label() string {
	if k == ByPassengerName {
		return "Passenger Name"
	}
	return "Seat Number"
}

// Next cycles between the two sort orders.
func (k SortKey) Next() SortKey {
	if k == BySeatNumber {
		return ByPassengerName
	}
	return BySeatNumber
}

func ParseSortKey(value string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "seat", "seat number", "number", "seatnumber":
		return BySeatNumber, nil
	case "name", "passenger", "passenger name", "passengername":
		return ByPassengerName, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSortKey, value)
	}
}

// SeatSummary is the read-only row the shells render.
type SeatSummary struct {
	SeatID        string    `json:"seat_id"`
	Row           int       `json:"row"`
	Column        string    `json:"column"`
	Class         FareClass `json:"class"`
	Status        string    `json:"status"`
	PassengerName string    `json:"passenger_name"`
}

func summarize(seat Seat) SeatSummary {
	return SeatSummary{
		SeatID:        seat.ID(),
		Row:           seat.Row,
		Column:        string(seat.Column),
		Class:         seat.Class,
		Status:        seat.Status(),
		PassengerName: seat.PassengerName,
	}
}

// SortedView returns a fresh summary of every seat.
//
// BySeatNumber orders by row, then column. ByPassengerName orders named seats
// alphabetically (case-insensitive, then exact) and places every seat without
// a passenger after them; equal names fall back to seat number order.
func (inv *Inventory) SortedView(key SortKey) []SeatSummary {
	seats := inv.ScanOrder()
	if key == ByPassengerName {
		sort.SliceStable(seats, func(i, j int) bool {
			return passengerLess(seats[i], seats[j])
		})
	}
	out := make([]SeatSummary, len(seats))
	for i, seat := range seats {
		out[i] = summarize(seat)
	}
	return out
}

func passengerLess(a, b Seat) bool {
	aEmpty, bEmpty := a.PassengerName == "", b.PassengerName == ""
	if aEmpty != bEmpty {
		return bEmpty
	}
	al, bl := strings.ToLower(a.PassengerName), strings.ToLower(b.PassengerName)
	if al != bl {
		return al < bl
	}
	if a.PassengerName != b.PassengerName {
		return a.PassengerName < b.PassengerName
	}
	return seatLess(a, b)
}

// FilterClass keeps only the summaries of one class.
func FilterClass(rows []SeatSummary, class FareClass) []SeatSummary {
	out := make([]SeatSummary, 0, len(rows))
	for _, row := range rows {
		if row.Class == class {
			out = append(out, row)
		}
	}
	return out
}
