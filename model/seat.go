package model

import (
	"fmt"
	"strconv"
	"strings"
)

type FareClass int

const (
	First FareClass = iota + 1
	Economy
)

// FareClasses lists the classes in cabin order.
var FareClasses = []FareClass{First, Economy}

// String returns the display label used in seat views.
func (c FareClass) String() string {
	switch c {
	case First:
		return "First"
	case Economy:
		return "Economy"
	default:
		return fmt.Sprintf("FareClass(%d)", int(c))
	}
}

// Key returns the lower-case token used in documents and the HTTP API.
func (c FareClass) Key() string {
	switch c {
	case First:
		return "first"
	case Economy:
		return "economy"
	default:
		return ""
	}
}

func (c FareClass) Valid() bool {
	return c == First || c == Economy
}

func (c FareClass) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFareClass, int(c))
	}
	return []byte(c.Key()), nil
}

func (c *FareClass) UnmarshalText(text []byte) error {
	parsed, err := ParseFareClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseFareClass accepts "first", "economy", their initials and the
// "First Class" / "Economy Class" labels, case-insensitively.
func ParseFareClass(value string) (FareClass, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.TrimSuffix(v, " class")
	switch v {
	case "first", "f", "1":
		return First, nil
	case "economy", "e", "2":
		return Economy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFareClass, value)
	}
}

// Seat is a single physical seat. PassengerName is non-empty iff Occupied.
type Seat struct {
	Row           int
	Column        byte
	Class         FareClass
	Occupied      bool
	PassengerName string
}

// ID returns the seat number, e.g. "1A" or "35G".
func (s Seat) ID() string {
	return SeatID(s.Row, s.Column)
}

func SeatID(row int, column byte) string {
	return strconv.Itoa(row) + string(column)
}

// ParseSeatID splits a seat number such as "12C" into row and column.
func ParseSeatID(id string) (int, byte, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if len(id) < 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrSeatNotFound, id)
	}
	column := id[len(id)-1]
	row, err := strconv.Atoi(id[:len(id)-1])
	if err != nil || row <= 0 || column < 'A' || column > 'Z' {
		return 0, 0, fmt.Errorf("%w: %q", ErrSeatNotFound, id)
	}
	return row, column, nil
}

// Status returns "Occupied" or "Available".
func (s Seat) Status() string {
	if s.Occupied {
		return StatusOccupied
	}
	return StatusAvailable
}

func (s Seat) validate() error {
	if s.Row <= 0 {
		return fmt.Errorf("seat row must be positive, got %d", s.Row)
	}
	if s.Column < 'A' || s.Column > 'Z' {
		return fmt.Errorf("seat %d: column must be a letter, got %q", s.Row, s.Column)
	}
	if !s.Class.Valid() {
		return fmt.Errorf("seat %s: %w", s.ID(), ErrUnknownFareClass)
	}
	named := strings.TrimSpace(s.PassengerName) != ""
	if s.Occupied && !named {
		return fmt.Errorf("seat %s is occupied without a passenger name", s.ID())
	}
	if !s.Occupied && s.PassengerName != "" {
		return fmt.Errorf("seat %s is available but names passenger %q", s.ID(), s.PassengerName)
	}
	return nil
}
